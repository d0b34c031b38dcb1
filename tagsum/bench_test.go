package tagsum

import (
	"strings"
	"testing"
)

func benchInput() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < 500; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if i%7 == 0 {
			sb.WriteString(`{"a":"red","b":[1,2,3],"c":{"d":-4}}`)
		} else {
			sb.WriteString(`{"a":"green","b":[10,20,{"x":"red","y":5}],"c":7}`)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func BenchmarkScanner_Tokenize(b *testing.B) {
	input := benchInput()
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := NewScanner(input).Tokenize(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSumAll(b *testing.B) {
	s := NewScanner(benchInput())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Reset()
		if _, err := SumAll(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSumExcluding(b *testing.B) {
	s := NewScanner(benchInput())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Reset()
		if _, err := SumExcluding(s, "red"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSumJSON(b *testing.B) {
	input := []byte(benchInput())
	opts := Options{Mode: ModeExcluding}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := SumJSON(input, opts); err != nil {
			b.Fatal(err)
		}
	}
}
