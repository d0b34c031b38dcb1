package tagsum

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ============================================================
// Scanner Tests
// ============================================================

func TestScanner_Kinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []Kind
	}{
		{"123", []Kind{KindNumber}},
		{"-456", []Kind{KindNumber}},
		{"red", []Kind{KindText}},
		{`"red"`, []Kind{KindText}},
		{"{}", []Kind{KindObjectOpen, KindObjectClose}},
		{"[]", []Kind{KindArrayOpen, KindArrayClose}},
		{`{"a":1}`, []Kind{KindObjectOpen, KindText, KindNumber, KindObjectClose}},
		{`[1,"x",-2]`, []Kind{KindArrayOpen, KindNumber, KindText, KindNumber, KindArrayClose}},
		{`"":,`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewScanner(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d", len(tt.expected), len(tokens))
			}
			for i, tok := range tokens {
				if tok.Kind() != tt.expected[i] {
					t.Errorf("Token %d: expected %s, got %s", i, tt.expected[i], tok.Kind())
				}
			}
		})
	}
}

func TestScanner_Payloads(t *testing.T) {
	tokens, err := NewScanner(`{"ab":[-12,"xyz",7]}`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []Token{
		Delim{K: KindObjectOpen},
		Text{Value: "ab"},
		Delim{K: KindArrayOpen},
		Number{Value: -12},
		Text{Value: "xyz"},
		Number{Value: 7},
		Delim{K: KindArrayClose},
		Delim{K: KindObjectClose},
	}
	if diff := cmp.Diff(want, tokens, cmpopts.IgnoreTypes(Position{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner_Positions(t *testing.T) {
	tokens, err := NewScanner("[1,\n\"red\"]").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(tokens))
	}

	want := []Position{
		{Line: 1, Column: 1, Offset: 0},
		{Line: 1, Column: 2, Offset: 1},
		{Line: 2, Column: 2, Offset: 5},
		{Line: 2, Column: 6, Offset: 9},
	}
	for i, tok := range tokens {
		if tok.Pos() != want[i] {
			t.Errorf("Token %d (%s): expected %s, got %s", i, tok, want[i], tok.Pos())
		}
	}
}

func TestScanner_LongestMatch(t *testing.T) {
	tokens, err := NewScanner("abc123def").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []Token{Text{Value: "abc"}, Number{Value: 123}, Text{Value: "def"}}
	if diff := cmp.Diff(want, tokens, cmpopts.IgnoreTypes(Position{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner_Reset(t *testing.T) {
	s := NewScanner(`[1,{"a":2}]`)
	first, err := s.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if _, err := s.Next(); err == nil {
		t.Fatal("expected EOF after exhausting input")
	}

	s.Reset()
	second, err := s.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize after Reset failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay mismatch (-first +second):\n%s", diff)
	}
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"uppercase", `{"A":1}`, ErrUnexpectedChar},
		{"float dot", `[1.5]`, ErrUnexpectedChar},
		{"boolean-ish", `[true]`, nil},
		{"lone minus", `[-]`, ErrMalformedNumber},
		{"minus before text", `-a`, ErrMalformedNumber},
		{"overflow", `[9223372036854775808]`, ErrNumberRange},
		{"underflow", `[-9223372036854775809]`, ErrNumberRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.input).Tokenize()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var se *ScanError
			if !errors.As(err, &se) {
				t.Fatalf("expected *ScanError, got %T", err)
			}
		})
	}
}

func TestScanner_ErrorPosition(t *testing.T) {
	_, err := NewScanner("[1,\n 2, X]").Tokenize()
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ScanError, got %v", err)
	}
	if se.Pos.Line != 2 || se.Pos.Column != 5 {
		t.Errorf("expected error at 2:5, got %s", se.Pos)
	}
}

func TestScanner_Lenient(t *testing.T) {
	tokens, err := NewScanner(`[1, X 2.5, "Red"]`, WithLenient()).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []Token{
		Delim{K: KindArrayOpen},
		Number{Value: 1},
		Number{Value: 2},
		Number{Value: 5},
		Text{Value: "ed"},
		Delim{K: KindArrayClose},
	}
	if diff := cmp.Diff(want, tokens, cmpopts.IgnoreTypes(Position{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Delim{K: KindObjectOpen}, "{"},
		{Delim{K: KindArrayClose}, "]"},
		{Number{Value: -3}, "Num: -3"},
		{Text{Value: "red"}, `Str: "red"`},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
