package main

import (
	"fmt"
	"strings"

	cascade "github.com/goliatone/go-cascade"
	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var (
		category    string
		enabledOnly bool
		highlight   bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "List catalog entries whose labels contain query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := root.engine(cmd)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			var opts []cascade.SearchOption
			if category != "" {
				opts = append(opts, cascade.InCategory(cascade.String(category)))
			}
			if enabledOnly {
				opts = append(opts, cascade.EnabledOnly())
			}
			out := cmd.OutOrStdout()
			for _, entry := range engine.Search(query, opts...) {
				label := entry.Label
				if highlight {
					label = renderSegments(engine.Highlight(label, query))
				}
				suffix := ""
				if entry.Disabled {
					suffix = " (disabled)"
				}
				fmt.Fprintf(out, "%s\t%s%s\n", entry.Path, label, suffix)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only search inside this category value")
	cmd.Flags().BoolVar(&enabledOnly, "enabled-only", false, "Skip disabled entries")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "Wrap matches in [brackets]")
	return cmd
}

func renderSegments(segments []cascade.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment.Match {
			b.WriteString("[" + segment.Text + "]")
			continue
		}
		b.WriteString(segment.Text)
	}
	return b.String()
}
