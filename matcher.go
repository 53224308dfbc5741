package cascade

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect identifies the expression language an Evaluator speaks.
type Dialect string

const (
	DialectExpr Dialect = "expr"
	DialectCEL  Dialect = "cel"
	DialectJS   Dialect = "js"
)

// MatchContext carries the row under test and optional arguments. Rows are
// exposed to expressions as `row`, arguments as `args`.
type MatchContext struct {
	Row  map[string]any
	Args map[string]any
}

func (ctx MatchContext) withDefaults() MatchContext {
	if ctx.Row == nil {
		ctx.Row = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

// Evaluator runs match expressions against rows.
type Evaluator interface {
	Evaluate(ctx MatchContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
	Dialect() Dialect
}

// CompiledRule is a reusable match program.
type CompiledRule interface {
	Evaluate(ctx MatchContext) (any, error)
}

// RecordExpression renders record as a boolean predicate over `row` in the
// given dialect. Keys are emitted in sorted order; an empty record matches
// every row.
func RecordExpression(record FilterRecord, dialect Dialect) string {
	keys := record.Keys()
	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		entry := record[key]
		if len(entry.values) == 0 {
			continue
		}
		clauses = append(clauses, recordClause(dialect, key, entry))
	}
	if len(clauses) == 0 {
		return "true"
	}
	return strings.Join(clauses, " && ")
}

func recordClause(dialect Dialect, key string, entry FilterValue) string {
	field := fmt.Sprintf("row[%s]", strconv.Quote(key))
	literals := make([]string, len(entry.values))
	for i, v := range entry.values {
		literals[i] = literal(v)
	}
	list := "[" + strings.Join(literals, ", ") + "]"
	single := len(literals) == 1

	switch dialect {
	case DialectCEL:
		guard := fmt.Sprintf("%s in row", strconv.Quote(key))
		if single {
			return fmt.Sprintf("(%s && %s == %s)", guard, field, literals[0])
		}
		return fmt.Sprintf("(%s && %s in %s)", guard, field, list)
	case DialectJS:
		if single {
			return fmt.Sprintf("(%s === %s)", field, literals[0])
		}
		return fmt.Sprintf("(%s.indexOf(%s) >= 0)", list, field)
	default:
		if single {
			return fmt.Sprintf("(%s == %s)", field, literals[0])
		}
		return fmt.Sprintf("(%s in %s)", field, list)
	}
}

func literal(v Value) string {
	switch v.Kind() {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber, KindBool:
		return v.String()
	default:
		return "null"
	}
}

// Matcher applies one FilterRecord, plus optional extra clauses, to rows.
type Matcher struct {
	evaluator Evaluator
	rule      CompiledRule
	expr      string
	logger    Logger
}

// NewMatcher compiles record and clauses into a single predicate. Clauses are
// written in the evaluator's dialect and ANDed with the record.
func NewMatcher(record FilterRecord, evaluator Evaluator, clauses ...string) (*Matcher, error) {
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	parts := []string{RecordExpression(record, evaluator.Dialect())}
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		parts = append(parts, "("+clause+")")
	}
	expr := strings.Join(parts, " && ")
	rule, err := evaluator.Compile(expr)
	if err != nil {
		return nil, wrapMatchError(string(evaluator.Dialect()), expr, err)
	}
	return &Matcher{
		evaluator: evaluator,
		rule:      rule,
		expr:      expr,
		logger:    noopLogger{},
	}, nil
}

func (m *Matcher) withLogger(logger Logger) *Matcher {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Expression returns the compiled predicate source.
func (m *Matcher) Expression() string {
	return m.expr
}

// Match evaluates the predicate for one row.
func (m *Matcher) Match(row map[string]any) (bool, error) {
	return m.MatchWith(MatchContext{Row: row})
}

// MatchWith evaluates the predicate with explicit arguments.
func (m *Matcher) MatchWith(ctx MatchContext) (bool, error) {
	engine := string(m.evaluator.Dialect())
	out, err := m.rule.Evaluate(ctx.withDefaults())
	if err != nil {
		return false, wrapMatchError(engine, m.expr, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, wrapMatchError(engine, m.expr, fmt.Errorf("%w: got %T", ErrNonBoolResult, out))
	}
	return ok, nil
}

// Filter keeps the rows that match, stopping at the first evaluation error.
func (m *Matcher) Filter(rows []map[string]any) ([]map[string]any, error) {
	return m.filter(rows, nil)
}

// FilterWith is Filter with arguments shared by every row.
func (m *Matcher) FilterWith(rows []map[string]any, args map[string]any) ([]map[string]any, error) {
	return m.filter(rows, args)
}

func (m *Matcher) filter(rows []map[string]any, args map[string]any) ([]map[string]any, error) {
	start := time.Now()
	out, err := m.filterRows(rows, args)
	m.logger.LogEvent(LogEvent{
		Op:       "match.filter",
		Engine:   string(m.evaluator.Dialect()),
		Expr:     m.expr,
		Before:   len(rows),
		After:    len(out),
		Duration: time.Since(start),
		Err:      err,
	})
	return out, err
}

func (m *Matcher) filterRows(rows []map[string]any, args map[string]any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		ok, err := m.MatchWith(MatchContext{Row: row, Args: args})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}
