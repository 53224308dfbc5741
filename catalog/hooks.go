package catalog

import (
	"fmt"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/internal/hydrate"
)

// aliasNodes accepts "options" as a synonym for "nodes".
func aliasNodes(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	if _, ok := payload["nodes"]; ok {
		return payload, nil
	}
	if options, ok := payload["options"]; ok {
		payload["nodes"] = options
		delete(payload, "options")
	}
	return payload, nil
}

// defaultLabels fills missing labels with the stringified node value.
func defaultLabels(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	nodes, ok := payload["nodes"]
	if !ok || nodes == nil {
		return payload, nil
	}
	list, ok := nodes.([]any)
	if !ok {
		return nil, fmt.Errorf("nodes must be a list, got %T", nodes)
	}
	if err := labelNodes(list); err != nil {
		return nil, err
	}
	return payload, nil
}

func labelNodes(nodes []any) error {
	for i, raw := range nodes {
		node, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("node #%d must be an object, got %T", i, raw)
		}
		if label, _ := node["label"].(string); label == "" {
			if value, ok := cascade.ValueOf(node["value"]); ok {
				node["label"] = value.String()
			}
		}
		if children, ok := node["children"].([]any); ok {
			if err := labelNodes(children); err != nil {
				return fmt.Errorf("children of node #%d: %w", i, err)
			}
		}
	}
	return nil
}

func validateCatalog(_ hydrate.Context, c *Catalog) error {
	if _, err := c.SelectionMode(); err != nil {
		return err
	}
	if c.Nodes == nil {
		c.Nodes = cascade.Tree{}
	}
	return c.Nodes.Validate()
}
