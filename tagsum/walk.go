package tagsum

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ============================================================
// Unconditional sum
// ============================================================

// SumAll adds every number from the scanner's current position to the end of
// input. Container structure and text are ignored.
func SumAll(s *Scanner) (int64, error) {
	var sum int64
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return sum, nil
		}
		if err != nil {
			return 0, err
		}
		if n, ok := tok.(Number); ok {
			sum += n.Value
		}
	}
}

// ============================================================
// Sentinel-aware sum
// ============================================================

// frame is the bookkeeping for one open object. Arrays do not get a frame of
// their own; they only bump arrayDepth of the enclosing one.
type frame struct {
	sum        int64
	excluded   bool
	arrayDepth int
	open       Position
}

// SumExcluding adds every number from the scanner's current position to the
// end of input, except those inside an object that directly holds sentinel
// as a text entry. Such an object contributes nothing, including everything
// nested below it. Text inside an array of the object does not count as a
// direct entry.
func SumExcluding(s *Scanner, sentinel string) (int64, error) {
	return sumExcluding(s, sentinel, zap.NewNop())
}

func sumExcluding(s *Scanner, sentinel string, logger *zap.Logger) (int64, error) {
	if sentinel == "" {
		return 0, ErrEmptySentinel
	}

	// stack[0] is the implicit top-level body; it is never excluded.
	stack := []frame{{open: s.currentPos()}}

	for {
		tok, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		top := &stack[len(stack)-1]
		switch t := tok.(type) {
		case Number:
			top.sum += t.Value

		case Text:
			if len(stack) > 1 && top.arrayDepth == 0 && t.Value == sentinel {
				top.excluded = true
			}

		case Delim:
			switch t.K {
			case KindObjectOpen:
				stack = append(stack, frame{open: t.At})

			case KindObjectClose:
				if len(stack) == 1 {
					return 0, unbalanced(t.At, "} without matching {")
				}
				if top.arrayDepth != 0 {
					return 0, unbalanced(t.At, "} while [ is still open")
				}
				done := *top
				stack = stack[:len(stack)-1]
				if done.excluded {
					logger.Debug("object excluded",
						zap.Stringer("at", done.open),
						zap.Int64("suppressed", done.sum),
						zap.Int("depth", len(stack)))
					continue
				}
				stack[len(stack)-1].sum += done.sum

			case KindArrayOpen:
				top.arrayDepth++

			case KindArrayClose:
				if top.arrayDepth == 0 {
					return 0, unbalanced(t.At, "] without matching [")
				}
				top.arrayDepth--
			}
		}
	}

	if len(stack) > 1 {
		return 0, unbalanced(stack[len(stack)-1].open, "{ never closed")
	}
	if stack[0].arrayDepth != 0 {
		return 0, unbalanced(s.currentPos(), fmt.Sprintf("input ended with %d open [", stack[0].arrayDepth))
	}
	return stack[0].sum, nil
}

func unbalanced(pos Position, msg string) error {
	return &ScanError{Message: msg, Pos: pos, Err: ErrUnbalanced}
}

// ============================================================
// Evaluator
// ============================================================

// Options configures an Evaluator.
type Options struct {
	Mode     Mode
	Sentinel string      // Defaults to DefaultSentinel
	Lenient  bool        // Skip unrecognized characters
	Logger   *zap.Logger // Defaults to a no-op logger
}

// Result holds both aggregates of one input.
type Result struct {
	All       int64 `json:"all" yaml:"all"`
	Excluding int64 `json:"excluding" yaml:"excluding"`
}

// Evaluator runs aggregations with a fixed configuration. It holds no
// per-input state, so one Evaluator may serve many goroutines.
type Evaluator struct {
	opts   Options
	logger *zap.Logger
}

// NewEvaluator creates an evaluator, filling in defaults.
func NewEvaluator(opts Options) *Evaluator {
	if opts.Sentinel == "" {
		opts.Sentinel = DefaultSentinel
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{opts: opts, logger: logger}
}

// Sentinel returns the configured sentinel word.
func (e *Evaluator) Sentinel() string {
	return e.opts.Sentinel
}

// Scanner creates a scanner over input with the evaluator's scan options.
func (e *Evaluator) Scanner(input string) *Scanner {
	if e.opts.Lenient {
		return NewScanner(input, WithLenient())
	}
	return NewScanner(input)
}

// Evaluate aggregates input in the configured mode.
func (e *Evaluator) Evaluate(input string) (int64, error) {
	return e.EvaluateScanner(e.Scanner(input), e.opts.Mode)
}

// EvaluateScanner aggregates the remaining tokens of s in the given mode.
func (e *Evaluator) EvaluateScanner(s *Scanner, mode Mode) (int64, error) {
	switch mode {
	case ModeAll:
		return SumAll(s)
	case ModeExcluding:
		return sumExcluding(s, e.opts.Sentinel, e.logger)
	default:
		return 0, fmt.Errorf("unknown mode %d", mode)
	}
}

// Both computes the unconditional and the sentinel-aware sum over a single
// scanner, rewinding it between the two walks.
func (e *Evaluator) Both(input string) (Result, error) {
	s := e.Scanner(input)

	all, err := SumAll(s)
	if err != nil {
		return Result{}, err
	}
	s.Reset()
	excl, err := sumExcluding(s, e.opts.Sentinel, e.logger)
	if err != nil {
		return Result{}, err
	}

	e.logger.Debug("evaluated",
		zap.Int("bytes", len(input)),
		zap.Int64("all", all),
		zap.Int64("excluding", excl),
		zap.String("sentinel", e.opts.Sentinel))
	return Result{All: all, Excluding: excl}, nil
}

// Evaluate is a one-shot helper for NewEvaluator(opts).Evaluate(input).
func Evaluate(input string, opts Options) (int64, error) {
	return NewEvaluator(opts).Evaluate(input)
}
