package cascade

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-cascade/pkg/activity"
)

// Engine binds a catalog to a selection mode and reports every user intent to
// the configured logger and activity hooks. It keeps no selection state: each
// call takes the host's current value and returns the next one.
type Engine struct {
	tree    Tree
	cfg     config
	emitter *activity.Emitter

	mu    sync.Mutex
	index *Index
}

// New constructs an Engine for tree.
func New(tree Tree, opts ...Option) *Engine {
	cfg := applyOptions(opts)
	return &Engine{
		tree:    tree,
		cfg:     cfg,
		emitter: cfg.emitter(),
	}
}

// Load is New preceded by catalog validation.
func Load(tree Tree, opts ...Option) (*Engine, error) {
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return New(tree, opts...), nil
}

// Tree returns the catalog.
func (e *Engine) Tree() Tree {
	return e.tree
}

// Mode returns the selection mode.
func (e *Engine) Mode() Mode {
	return e.cfg.mode
}

// Store builds the query view over current.
func (e *Engine) Store(current Selection) Store {
	return NewStore(e.tree, e.cfg.mode, current)
}

// IsSelected reports whether path is part of current.
func (e *Engine) IsSelected(current Selection, path Path) bool {
	return e.Store(current).IsSelected(path)
}

// Select applies a leaf click.
func (e *Engine) Select(ctx context.Context, current Selection, path Path, checked bool) Selection {
	start := time.Now()
	next := e.Store(current).Select(path, checked)
	verb := activity.VerbSelect
	if e.cfg.mode == ModeMultiple && !checked {
		verb = activity.VerbDeselect
	}
	e.observe(ctx, intent{op: "select", verb: verb, target: path.String(), start: start}, current, next, nil)
	return next
}

// ToggleCategory checks or clears a whole category.
func (e *Engine) ToggleCategory(ctx context.Context, current Selection, value Value, checked bool) Selection {
	start := time.Now()
	next := e.Store(current).ToggleCategory(value, checked)
	e.observe(ctx, intent{op: "toggle_category", verb: activity.VerbToggleCategory, target: value.String(), start: start}, current, next, nil)
	return next
}

// RemoveTags drops every selected path whose tag label is in removed.
func (e *Engine) RemoveTags(ctx context.Context, current Selection, removed ...string) Selection {
	start := time.Now()
	paths := e.Store(current).Normalize()
	next := Selection{paths: RemoveTags(ToTags(paths, e.tree), removed, paths, e.tree)}
	target := ""
	if len(removed) == 1 {
		target = removed[0]
	}
	e.observe(ctx, intent{op: "remove_tags", verb: activity.VerbRemoveTag, target: target, start: start}, current, next, nil)
	return next
}

// RemoveTag drops exactly one path, the unambiguous form of RemoveTags.
func (e *Engine) RemoveTag(ctx context.Context, current Selection, path Path) Selection {
	start := time.Now()
	next := Selection{paths: RemoveTag(e.Store(current).Normalize(), path)}
	e.observe(ctx, intent{op: "remove_tag", verb: activity.VerbRemoveTag, target: path.String(), start: start}, current, next, nil)
	return next
}

// ApplyRecord replaces the selection with the paths record resolves to. In
// single mode only the first resolved path is kept.
func (e *Engine) ApplyRecord(ctx context.Context, current Selection, record FilterRecord) Selection {
	start := time.Now()
	paths, dropped := recordToPaths(record, e.tree)
	next := Selection{paths: normalize(e.cfg.mode, paths)}
	e.observe(ctx, intent{op: "apply_record", verb: activity.VerbApplyRecord, start: start, dropped: dropped}, current, next, record)
	return next
}

// Record converts current into its FilterRecord form.
func (e *Engine) Record(current Selection) FilterRecord {
	return PathsToRecord(e.Store(current).Normalize())
}

// ActiveFilters counts the paths record resolves to.
func (e *Engine) ActiveFilters(record FilterRecord) int {
	return ActiveFilters(record, e.tree)
}

// Categories reports full/partial/none for every category.
func (e *Engine) Categories(current Selection) []CategoryStatus {
	return e.Store(current).Categories()
}

// Tags projects current into path-carrying tags.
func (e *Engine) Tags(current Selection) []Tag {
	return TagsFor(e.Store(current).Normalize(), e.tree)
}

// Index returns the search index, built on first use.
func (e *Engine) Index() *Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		e.index = NewIndex(e.tree)
	}
	return e.index
}

// Search filters the flattened catalog.
func (e *Engine) Search(query string, opts ...SearchOption) []Entry {
	return e.Index().Search(query, opts...)
}

// Highlight splits text around matches of query.
func (e *Engine) Highlight(text, query string) []Segment {
	return Highlight(text, query)
}

// Schema describes the FilterRecord this catalog accepts.
func (e *Engine) Schema() (SchemaDocument, error) {
	generator := e.cfg.schemaGenerator
	if generator == nil {
		generator = DefaultSchemaGenerator()
	}
	return generator.Generate(e.tree)
}

// Matcher compiles record (and optional clauses) with the configured
// evaluator, defaulting to expr with the configured cache and registry.
func (e *Engine) Matcher(record FilterRecord, clauses ...string) (*Matcher, error) {
	evaluator := e.cfg.evaluator
	if evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if e.cfg.programCache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(e.cfg.programCache))
		}
		if e.cfg.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(e.cfg.functions))
		}
		evaluator = NewExprEvaluator(exprOpts...)
	}
	matcher, err := NewMatcher(record, evaluator, clauses...)
	if err != nil {
		e.cfg.logger.LogEvent(LogEvent{Op: "match.compile", Engine: string(evaluator.Dialect()), Err: err})
		return nil, err
	}
	return matcher.withLogger(e.cfg.logger), nil
}

type intent struct {
	op      string
	verb    string
	target  string
	start   time.Time
	dropped int
}

func (e *Engine) observe(ctx context.Context, in intent, before, after Selection, record FilterRecord) {
	var emitErr error
	if !before.Equal(after) && e.emitter.Enabled() {
		emitErr = e.emitter.Emit(ctx, activity.BuildSelectionEvent(in.verb, activity.SelectionEventInput{
			ObjectID: e.cfg.objectID,
			Mode:     e.cfg.mode.String(),
			Target:   in.target,
			Before:   pathStrings(before.paths),
			After:    pathStrings(after.paths),
			Record:   recordMetadata(record),
		}))
	}
	e.cfg.logger.LogEvent(LogEvent{
		Op:       in.op,
		Mode:     e.cfg.mode,
		Before:   before.Len(),
		After:    after.Len(),
		Dropped:  in.dropped,
		Duration: time.Since(in.start),
		Err:      emitErr,
	})
}

func pathStrings(paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func recordMetadata(record FilterRecord) map[string]any {
	if len(record) == 0 {
		return nil
	}
	out := make(map[string]any, len(record))
	for key, entry := range record {
		values := make([]string, len(entry.values))
		for i, v := range entry.values {
			values[i] = v.String()
		}
		out[key] = values
	}
	return out
}
