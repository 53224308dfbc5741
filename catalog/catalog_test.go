package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/internal/hydrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minersYAML = `
name: miners
mode: multiple
nodes:
  - value: type
    label: Type
    children:
      - {value: S19XP, label: Antminer S19XP}
      - {value: M30S, label: Whatsminer M30S, disabled: true}
  - value: rating
    children:
      - value: 1
      - value: 2
        label: Two
`

const minersJSON = `{
  "name": "miners",
  "mode": "single",
  "nodes": [
    {"value": "type", "label": "Type", "children": [
      {"value": "S19XP", "label": "Antminer S19XP"}
    ]},
    {"value": "empty", "label": "Empty", "children": []}
  ]
}`

func TestLoadYAML(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(minersYAML))
	require.NoError(t, err)
	assert.Equal(t, "miners", c.Name)
	require.Len(t, c.Nodes, 2)

	typ := c.Nodes[0]
	assert.True(t, typ.IsCategory())
	require.Len(t, typ.Children, 2)
	assert.True(t, typ.Children[1].Disabled)

	rating := c.Nodes[1]
	assert.Equal(t, "rating", rating.Label)
	assert.True(t, rating.Children[0].Value.Equal(cascade.Int(1)))
	assert.Equal(t, "1", rating.Children[0].Label)
	assert.Equal(t, "Two", rating.Children[1].Label)
}

func TestLoadJSONKeepsEmptyCategories(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(minersJSON))
	require.NoError(t, err)
	mode, err := c.SelectionMode()
	require.NoError(t, err)
	assert.Equal(t, cascade.ModeSingle, mode)
	assert.True(t, c.Nodes[1].IsCategory())
	assert.Empty(t, c.Nodes[1].Children)
}

func TestLoadAcceptsBareListAndOptionsAlias(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(`[{"value":"a","children":[{"value":"x"}]}]`))
	require.NoError(t, err)
	require.Len(t, c.Nodes, 1)
	assert.Equal(t, "x", c.Nodes[0].Children[0].Label)

	c, err = Decode(map[string]any{"options": []any{map[string]any{"value": true, "label": "Yes"}}})
	require.NoError(t, err)
	require.Len(t, c.Nodes, 1)
	assert.True(t, c.Nodes[0].Value.Equal(cascade.Bool(true)))
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"duplicate siblings": `{"nodes":[{"value":"a","children":[{"value":"x"},{"value":"x"}]}]}`,
		"nested category":    `{"nodes":[{"value":"a","children":[{"value":"b","children":[]}]}]}`,
		"unknown mode":       `{"mode":"several","nodes":[]}`,
		"node not object":    `{"nodes":["a"]}`,
		"scalar document":    `"a"`,
		"broken json":        `{`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadJSON(strings.NewReader(doc), WithSource(name+".json"))
			require.Error(t, err)
		})
	}

	_, err := LoadJSON(strings.NewReader(`{"nodes":[{"value":"a","children":[{"value":"x"},{"value":"x"}]}]}`))
	var verr *cascade.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestStrictRejectsUnknownFields(t *testing.T) {
	doc := `{"name":"x","colour":"red","nodes":[]}`
	_, err := LoadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	_, err = LoadJSON(strings.NewReader(doc), WithStrict(), WithSource("strict.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict.json (json)")
}

func TestErrorsReportDocumentStage(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("name: [a, b]\nnodes: []\n"), WithSource("miners.yaml"))
	var herr *hydrate.Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, hydrate.StageDecode, herr.Stage)
	assert.Equal(t, "name", herr.Field)
	assert.Equal(t, "yaml", herr.Document.Format)

	_, err = LoadJSON(strings.NewReader(`{"nodes":["a"]}`))
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, hydrate.StageNormalize, herr.Stage)

	_, err = LoadJSON(strings.NewReader(`{"mode":"several","nodes":[]}`))
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, hydrate.StageValidate, herr.Stage)
}

func TestLoadFileAndEngine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "miners.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minersYAML), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	engine, err := c.Engine()
	require.NoError(t, err)
	assert.Equal(t, cascade.ModeMultiple, engine.Mode())

	current := engine.ToggleCategory(context.Background(), cascade.Empty(), cascade.String("type"), true)
	assert.Equal(t, 1, current.Len())

	override, err := c.Engine(cascade.WithMode(cascade.ModeSingle))
	require.NoError(t, err)
	assert.Equal(t, cascade.ModeSingle, override.Mode())

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
