// Package tagsum sums the integers of a small nested document, optionally
// dropping every object tagged with a sentinel word.
//
// # Input Grammar
//
// The scanner understands a subset of JSON:
//
//	{ }        object
//	[ ]        array
//	-12 42     integers (int64)
//	red        runs of lowercase letters
//
// Quotes, colons, commas and ASCII whitespace are skipped. Any other
// character is an error unless the scanner is lenient.
//
// # Aggregation
//
// SumAll adds every number. SumExcluding adds every number except those
// inside an object that has the sentinel as a direct entry:
//
//	[1,{"c":"red","b":2},3]            => 4
//	{"d":"red","e":[1,2,3,4],"f":5}    => 0
//	[1,"red",5]                        => 6
//
// A sentinel inside an array of the object is not a direct entry, so
// {"a":["red"],"b":1} sums to 1.
//
// # Re-scanning
//
// Both sums can be taken from one Scanner by calling Reset in between:
//
//	s := tagsum.NewScanner(input)
//	all, _ := tagsum.SumAll(s)
//	s.Reset()
//	excl, _ := tagsum.SumExcluding(s, "red")
package tagsum
