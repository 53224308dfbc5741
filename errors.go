package cascade

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvaluator is returned when no row-matching evaluator can be built.
	ErrNoEvaluator = errors.New("cascade: evaluator not configured")
	// ErrNonBoolResult is returned when a match expression yields a non-boolean.
	ErrNonBoolResult = errors.New("cascade: match expression did not return a boolean")
)

// ValidationError describes one structural problem found in a catalog.
type ValidationError struct {
	Path   Path
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Path) == 0 {
		return fmt.Sprintf("cascade: node #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("cascade: node %q (#%d): %s", e.Path.String(), e.Index, e.Reason)
}

// MatchError captures evaluator metadata alongside the originating error.
type MatchError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *MatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("cascade: %s matcher %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *MatchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "cascade:") {
		return err
	}
	return fmt.Errorf("cascade: %s evaluator: %w", engine, err)
}

func wrapMatchError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		if matchErr.Engine == "" {
			matchErr.Engine = engine
		}
		if matchErr.Expr == "" {
			matchErr.Expr = expr
		}
		return matchErr
	}

	return &MatchError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
