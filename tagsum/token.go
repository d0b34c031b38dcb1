package tagsum

import (
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	KindObjectOpen  Kind = iota // {
	KindObjectClose             // }
	KindArrayOpen               // [
	KindArrayClose              // ]
	KindNumber                  // -12, 42
	KindText                    // red
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObjectOpen:
		return "{"
	case KindObjectClose:
		return "}"
	case KindArrayOpen:
		return "["
	case KindArrayClose:
		return "]"
	case KindNumber:
		return "NUMBER"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Token is one classified unit of input. The set of implementations is
// closed: Delim, Number and Text. Use a type switch to reach the payload.
type Token interface {
	Kind() Kind
	Pos() Position
	fmt.Stringer

	token()
}

// Delim is a container boundary token.
type Delim struct {
	K  Kind
	At Position
}

// Kind returns the container kind.
func (d Delim) Kind() Kind { return d.K }

// Pos returns where the delimiter starts.
func (d Delim) Pos() Position { return d.At }

func (d Delim) String() string { return d.K.String() }

func (Delim) token() {}

// Number is a signed integer literal.
type Number struct {
	Value int64
	At    Position
}

// Kind returns KindNumber.
func (Number) Kind() Kind { return KindNumber }

// Pos returns where the literal starts.
func (n Number) Pos() Position { return n.At }

func (n Number) String() string { return fmt.Sprintf("Num: %d", n.Value) }

func (Number) token() {}

// Text is a run of lowercase letters.
type Text struct {
	Value string
	At    Position
}

// Kind returns KindText.
func (Text) Kind() Kind { return KindText }

// Pos returns where the word starts.
func (t Text) Pos() Position { return t.At }

func (t Text) String() string { return fmt.Sprintf("Str: %q", t.Value) }

func (Text) token() {}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithLenient makes the scanner skip unrecognized characters instead of
// failing with ErrUnexpectedChar.
func WithLenient() ScanOption {
	return func(s *Scanner) { s.lenient = true }
}

// Scanner classifies the characters of an in-memory input into tokens.
// It is not safe for concurrent use; create one per goroutine.
type Scanner struct {
	input   string
	pos     int // Current position in input
	line    int // Current line number (1-based)
	col     int // Current column number (1-based)
	lenient bool
}

// NewScanner creates a scanner positioned at the start of input.
func NewScanner(input string, opts ...ScanOption) *Scanner {
	s := &Scanner{input: input}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset rewinds the scanner to the beginning of its input so the same text
// can be walked again.
func (s *Scanner) Reset() {
	s.pos = 0
	s.line = 1
	s.col = 1
}

// Next returns the next token, or io.EOF once the input is exhausted.
func (s *Scanner) Next() (Token, error) {
	for s.pos < len(s.input) {
		at := s.currentPos()
		ch := s.peek()

		switch {
		case ch == '{':
			s.advance()
			return Delim{K: KindObjectOpen, At: at}, nil
		case ch == '}':
			s.advance()
			return Delim{K: KindObjectClose, At: at}, nil
		case ch == '[':
			s.advance()
			return Delim{K: KindArrayOpen, At: at}, nil
		case ch == ']':
			s.advance()
			return Delim{K: KindArrayClose, At: at}, nil
		case isLower(ch):
			return s.scanText(at), nil
		case ch == '-' || isDigit(ch):
			return s.scanNumber(at)
		case isNoise(ch):
			s.advance()
		default:
			if !s.lenient {
				return nil, &ScanError{
					Message: fmt.Sprintf("unexpected character %q", ch),
					Pos:     at,
					Err:     ErrUnexpectedChar,
				}
			}
			s.advance()
		}
	}
	return nil, io.EOF
}

// Tokenize returns every remaining token.
func (s *Scanner) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func (s *Scanner) scanText(at Position) Token {
	start := s.pos
	for s.pos < len(s.input) && isLower(s.peek()) {
		s.advance()
	}
	return Text{Value: s.input[start:s.pos], At: at}
}

func (s *Scanner) scanNumber(at Position) (Token, error) {
	start := s.pos
	if s.peek() == '-' {
		s.advance()
	}
	for s.pos < len(s.input) && isDigit(s.peek()) {
		s.advance()
	}

	lit := s.input[start:s.pos]
	if lit == "-" {
		return nil, &ScanError{Message: "sign without digits", Pos: at, Err: ErrMalformedNumber}
	}
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, &ScanError{
			Message: fmt.Sprintf("number %s out of range", lit),
			Pos:     at,
			Err:     ErrNumberRange,
		}
	}
	return Number{Value: v, At: at}, nil
}

func (s *Scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *Scanner) advance() {
	if s.pos < len(s.input) {
		if s.input[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func (s *Scanner) currentPos() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.pos}
}

// Character classification

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLower(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

func isNoise(ch byte) bool {
	switch ch {
	case '"', ':', ',', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
