package tagsum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ============================================================
// JSON bridge
// ============================================================
//
// Applies the same aggregation rules to a document decoded with
// encoding/json. The scanner grammar has no whitespace-sensitive strings,
// escapes, booleans or null; the bridge accepts all of them. Strings are
// split into runs of lowercase letters, the words the scanner would see,
// and object keys count as direct text entries just as they do for the
// scanner.

// SumJSON decodes a JSON document and aggregates it in opts.Mode.
func SumJSON(data []byte, opts Options) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("JSON parse error: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return 0, fmt.Errorf("JSON parse error: trailing data after document")
	}

	sentinel := opts.Sentinel
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return SumValue(v, opts.Mode, sentinel)
}

// SumValue aggregates a value produced by json.Unmarshal (or a Decoder with
// UseNumber). Numbers must be integral.
func SumValue(v interface{}, mode Mode, sentinel string) (int64, error) {
	if mode == ModeExcluding && sentinel == "" {
		return 0, ErrEmptySentinel
	}
	w := valueWalker{excluding: mode == ModeExcluding, sentinel: sentinel}
	return w.walk(v)
}

type valueWalker struct {
	excluding bool
	sentinel  string
}

func (w valueWalker) walk(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil, bool, string:
		return 0, nil

	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, fmt.Errorf("non-integer number %s: %w", val, ErrNumberRange)
		}
		return n, nil

	case float64:
		n := int64(val)
		if float64(n) != val {
			return 0, fmt.Errorf("non-integer number %v: %w", val, ErrNumberRange)
		}
		return n, nil

	case []interface{}:
		var sum int64
		for _, elem := range val {
			n, err := w.walk(elem)
			if err != nil {
				return 0, err
			}
			sum += n
		}
		return sum, nil

	case map[string]interface{}:
		if w.excluding && w.holdsSentinel(val) {
			return 0, nil
		}
		var sum int64
		for _, elem := range val {
			n, err := w.walk(elem)
			if err != nil {
				return 0, err
			}
			sum += n
		}
		return sum, nil

	default:
		return 0, fmt.Errorf("unsupported JSON type: %T", v)
	}
}

func (w valueWalker) holdsSentinel(obj map[string]interface{}) bool {
	for k, v := range obj {
		if hasWord(k, w.sentinel) {
			return true
		}
		if s, ok := v.(string); ok && hasWord(s, w.sentinel) {
			return true
		}
	}
	return false
}

// hasWord reports whether word is one of the lowercase runs of s.
func hasWord(s, word string) bool {
	for i := 0; i < len(s); {
		if !isLower(s[i]) {
			i++
			continue
		}
		start := i
		for i < len(s) && isLower(s[i]) {
			i++
		}
		if s[start:i] == word {
			return true
		}
	}
	return false
}
