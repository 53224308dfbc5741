package cascade

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapMatchErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapMatchError("expr", `row["type"] == "a"`, base)

	var matchErr *MatchError
	if !errors.As(err, &matchErr) {
		t.Fatalf("expected MatchError, got %T", err)
	}
	if matchErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", matchErr.Engine)
	}
	if matchErr.Expr != `row["type"] == "a"` {
		t.Fatalf("expected expression metadata, got %q", matchErr.Expr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapMatchErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &MatchError{Engine: "cel", Err: base}

	err := wrapMatchError("expr", "rule", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "cel" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
}

func TestWrapEvaluatorErrorKeepsPrefixedErrors(t *testing.T) {
	prefixed := errors.New("cascade: already wrapped")
	if got := wrapEvaluatorError("cel", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error to pass through, got %v", got)
	}
	got := wrapEvaluatorError("cel", errors.New("raw"))
	if !strings.HasPrefix(got.Error(), "cascade: cel evaluator:") {
		t.Fatalf("unexpected message %q", got.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Path: NewPath("type", "x"), Index: 2, Reason: "duplicate sibling value"}
	if got := err.Error(); got != `cascade: node "type/x" (#2): duplicate sibling value` {
		t.Fatalf("unexpected message %q", got)
	}
}
