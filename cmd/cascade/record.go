package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	cascade "github.com/goliatone/go-cascade"
	"github.com/spf13/cobra"
)

// parseRecord accepts a JSON object or a URL query string.
func parseRecord(input string) (cascade.FilterRecord, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return cascade.FilterRecord{}, nil
	}
	if strings.HasPrefix(input, "{") {
		var record cascade.FilterRecord
		if err := json.Unmarshal([]byte(input), &record); err != nil {
			return nil, fmt.Errorf("parse record json: %w", err)
		}
		return record, nil
	}
	values, err := url.ParseQuery(strings.TrimPrefix(input, "?"))
	if err != nil {
		return nil, fmt.Errorf("parse record query: %w", err)
	}
	return cascade.RecordFromQuery(values), nil
}

func parsePaths(args []string) []cascade.Path {
	paths := make([]cascade.Path, 0, len(args))
	for _, arg := range args {
		if p := cascade.ParsePath(arg); len(p) > 0 {
			paths = append(paths, p)
		}
	}
	return paths
}

// resolvePaths swaps parsed string elements for the catalog's typed values so
// "rating/1" selects the numeric leaf.
func resolvePaths(tree cascade.Tree, paths []cascade.Path) []cascade.Path {
	out := make([]cascade.Path, 0, len(paths))
	for _, p := range paths {
		out = append(out, resolvePath(tree, p))
	}
	return out
}

func resolvePath(tree cascade.Tree, p cascade.Path) cascade.Path {
	resolved := make(cascade.Path, 0, len(p))
	level := []cascade.Node(tree)
	for _, element := range p {
		var match *cascade.Node
		for i := range level {
			if level[i].Value.String() == element.String() {
				match = &level[i]
				break
			}
		}
		if match == nil {
			resolved = append(resolved, element)
			level = nil
			continue
		}
		resolved = append(resolved, match.Value)
		level = match.Children
	}
	return resolved
}

func newPathsCmd(root *rootOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Resolve a filter record into selection paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := root.engine(cmd)
			if err != nil {
				return err
			}
			record, err := parseRecord(input)
			if err != nil {
				return err
			}
			selection := engine.ApplyRecord(cmd.Context(), cascade.Empty(), record)
			out := cmd.OutOrStdout()
			for _, p := range selection.Paths() {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "record", "r", "", `Filter record as JSON ({"type":"S19XP"}) or query string (type=S19XP&status=active)`)
	return cmd
}

func newRecordCmd(root *rootOptions) *cobra.Command {
	var asQuery bool
	cmd := &cobra.Command{
		Use:   "record [category/leaf...]",
		Short: "Convert selection paths into a filter record",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := root.engine(cmd)
			if err != nil {
				return err
			}
			selection := cascade.FromPaths(resolvePaths(engine.Tree(), parsePaths(args)))
			record := engine.Record(selection)
			out := cmd.OutOrStdout()
			if asQuery {
				fmt.Fprintln(out, record.Query().Encode())
				return nil
			}
			data, err := json.Marshal(record)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asQuery, "query", false, "Print a URL query string instead of JSON")
	return cmd
}

func newTagsCmd(root *rootOptions) *cobra.Command {
	var remove []string
	cmd := &cobra.Command{
		Use:   "tags [category/leaf...]",
		Short: "Render selection paths as tags, optionally removing some by label",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := root.engine(cmd)
			if err != nil {
				return err
			}
			selection := cascade.FromPaths(resolvePaths(engine.Tree(), parsePaths(args)))
			if len(remove) > 0 {
				selection = engine.RemoveTags(cmd.Context(), selection, remove...)
			}
			out := cmd.OutOrStdout()
			for _, tag := range engine.Tags(selection) {
				fmt.Fprintf(out, "%s\t%s\n", tag.Label, tag.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "Tag labels to remove")
	return cmd
}
