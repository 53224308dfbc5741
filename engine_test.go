package cascade

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-cascade/pkg/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineShopScenario(t *testing.T) {
	ctx := context.Background()
	engine := New(shopTree())

	current := engine.Select(ctx, Empty(), p("electronics", "phones"), true)
	current = engine.ToggleCategory(ctx, current, String("clothing"), true)
	assert.Equal(t, []string{"Phones", "Mens", "Womens"}, tagLabels(engine.Tags(current)))

	states := engine.Categories(current)
	require.Len(t, states, 2)
	assert.Equal(t, CheckPartial, states[0].State)
	assert.Equal(t, CheckFull, states[1].State)

	current = engine.RemoveTags(ctx, current, "Mens")
	assert.True(t, current.Equal(FromPaths([]Path{p("electronics", "phones"), p("clothing", "womens")})))
	assert.Equal(t, CheckPartial, engine.Categories(current)[1].State)

	current = engine.RemoveTag(ctx, current, p("electronics", "phones"))
	assert.Equal(t, []string{"Womens"}, tagLabels(engine.Tags(current)))
}

func TestEngineApplyRecordAndBack(t *testing.T) {
	ctx := context.Background()
	engine := New(minerTree())
	record := FilterRecord{
		"type":   One(String("S19XP")),
		"status": Many(String("active"), String("pending")),
	}

	current := engine.ApplyRecord(ctx, Empty(), record)
	assert.Equal(t, 3, current.Len())
	assert.Equal(t, 3, engine.ActiveFilters(record))
	assert.True(t, engine.Record(current).Equivalent(record))
	assert.True(t, engine.IsSelected(current, p("status", "pending")))

	single := New(minerTree(), WithMode(ModeSingle))
	first := single.ApplyRecord(ctx, Empty(), record)
	path, ok := first.Path()
	require.True(t, ok)
	assert.Equal(t, 1, first.Len())
	assert.True(t, EqualPaths(path, p("type", "S19XP")))
}

func TestEngineSearchAndHighlight(t *testing.T) {
	engine := New(minerTree())
	results := engine.Search("xp")
	require.Len(t, results, 1)
	assert.Equal(t, "Type / Antminer S19XP", results[0].Label)
	assert.Same(t, engine.Index(), engine.Index())

	assert.Equal(t, []Segment{
		{Text: "Antminer S19"},
		{Text: "XP", Match: true},
	}, engine.Highlight("Antminer S19XP", "XP"))
}

func TestEngineEmitsActivityOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	capture := &activity.CaptureHook{}
	engine := New(shopTree(),
		WithObjectID("product-filter"),
		WithActivityHooks(activity.Hooks{capture}),
	)

	current := engine.Select(ctx, Empty(), p("electronics", "phones"), true)
	current = engine.Select(ctx, current, p("electronics", "phones"), true)
	current = engine.Select(ctx, current, p("electronics", "phones"), false)
	_ = engine.ToggleCategory(ctx, current, String("clothing"), true)

	assert.Equal(t, []string{activity.VerbSelect, activity.VerbDeselect, activity.VerbToggleCategory}, capture.Verbs())

	first := capture.Events[0]
	assert.Equal(t, "product-filter", first.ObjectID)
	assert.Equal(t, activity.ObjectTypeSelection, first.ObjectType)
	assert.Equal(t, activity.DefaultChannel, first.Channel)
	assert.Equal(t, []string{"electronics/phones"}, first.Metadata["added"])
	assert.Equal(t, "multiple", first.Metadata["mode"])

	last := capture.Events[2]
	assert.Equal(t, []string{"clothing/mens", "clothing/womens"}, last.Metadata["added"])
}

func TestEngineActivityCanBeDisabled(t *testing.T) {
	capture := &activity.CaptureHook{}
	engine := New(shopTree(),
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityConfig(activity.Config{Enabled: false}),
	)
	engine.Select(context.Background(), Empty(), p("electronics", "phones"), true)
	assert.Empty(t, capture.Events)
}

func TestEngineLogsOperations(t *testing.T) {
	var events []LogEvent
	hookErr := errors.New("sink down")
	engine := New(minerTree(),
		WithLogger(LoggerFunc(func(event LogEvent) { events = append(events, event) })),
		WithActivityHooks(activity.Hooks{&activity.CaptureHook{Err: hookErr}}),
	)

	engine.ApplyRecord(context.Background(), Empty(), FilterRecord{
		"type":    Many(String("S19XP"), String("S99")),
		"unknown": One(String("x")),
	})
	require.Len(t, events, 1)
	assert.Equal(t, "apply_record", events[0].Op)
	assert.Equal(t, 0, events[0].Before)
	assert.Equal(t, 1, events[0].After)
	assert.Equal(t, 2, events[0].Dropped)
	assert.ErrorIs(t, events[0].Err, hookErr)

	_, err := engine.Matcher(FilterRecord{}, `row["a"] ==`)
	require.Error(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "match.compile", events[1].Op)
	assert.Equal(t, "expr", events[1].Engine)
}

func TestEngineMatcherUsesConfiguredStack(t *testing.T) {
	cache := NewMapCache()
	engine := New(minerTree(),
		WithProgramCache(cache),
		WithCustomFunction("is_active", func(args ...any) (any, error) {
			return len(args) == 1 && args[0] == "active", nil
		}),
	)
	matcher, err := engine.Matcher(FilterRecord{"type": One(String("S19XP"))}, `is_active(row["status"])`)
	require.NoError(t, err)
	rows, err := matcher.Filter(minerRows)
	require.NoError(t, err)
	assert.Equal(t, "1", rowIDs(rows))
	assert.Equal(t, 1, cache.Len())

	cel, err := New(minerTree(), WithEvaluator(NewCELEvaluator())).Matcher(FilterRecord{"status": One(String("pending"))})
	require.NoError(t, err)
	rows, err = cel.Filter(minerRows)
	require.NoError(t, err)
	assert.Equal(t, "3,4", rowIDs(rows))
}

func TestEngineLoadValidates(t *testing.T) {
	_, err := Load(Tree{Category("a", "A", Leaf("x", "X"), Leaf("x", "Dup"))})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	engine, err := Load(shopTree(), WithMode(ModeSingle))
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, engine.Mode())
}

func TestEngineDefaultSchemaDescribesRecord(t *testing.T) {
	tree := append(minerTree(), Category("rating", "Rating", Leaf(1, "One"), Leaf(2, "Two").WithDisabled(true)))
	doc, err := New(tree).Schema()
	require.NoError(t, err)
	assert.Equal(t, SchemaFormatDescriptors, doc.Format)

	fields, ok := doc.Document.([]FieldDescriptor)
	require.True(t, ok)
	require.Len(t, fields, 3)
	assert.Equal(t, "type", fields[0].Key)
	assert.Equal(t, []string{"S19XP", "S19", "M30S"}, fields[0].Values)
	assert.Equal(t, "string", fields[0].Type)
	assert.Equal(t, "number", fields[2].Type)
	assert.Equal(t, []string{"2"}, fields[2].Disabled)
}

func tagLabels(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Label
	}
	return out
}
