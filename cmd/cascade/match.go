package main

import (
	"encoding/json"
	"fmt"
	"os"

	cascade "github.com/goliatone/go-cascade"
	"github.com/spf13/cobra"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	var (
		input    string
		rowsPath string
		dialect  string
		where    []string
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Filter JSON rows with a filter record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []cascade.Option
			switch cascade.Dialect(dialect) {
			case cascade.DialectExpr:
			case cascade.DialectCEL:
				extra = append(extra, cascade.WithEvaluator(cascade.NewCELEvaluator()))
			case cascade.DialectJS:
				if !cascade.JSEvaluatorAvailable() {
					return fmt.Errorf("js dialect requires a build with the js_eval tag")
				}
				extra = append(extra, cascade.WithEvaluator(cascade.NewJSEvaluator()))
			default:
				return fmt.Errorf("unknown dialect %q", dialect)
			}
			engine, _, err := root.engine(cmd, extra...)
			if err != nil {
				return err
			}
			record, err := parseRecord(input)
			if err != nil {
				return err
			}
			rows, err := readRows(rowsPath)
			if err != nil {
				return err
			}
			matcher, err := engine.Matcher(record, where...)
			if err != nil {
				return err
			}
			matched, err := matcher.Filter(rows)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(matched)
		},
	}
	cmd.Flags().StringVarP(&input, "record", "r", "", "Filter record as JSON or query string")
	cmd.Flags().StringVar(&rowsPath, "rows", "", "Path to a JSON array of row objects")
	cmd.Flags().StringVar(&dialect, "dialect", string(cascade.DialectExpr), "expr, cel or js")
	cmd.Flags().StringArrayVar(&where, "where", nil, "Extra clause in the chosen dialect (repeatable)")
	_ = cmd.MarkFlagRequired("rows")
	return cmd
}

func readRows(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}
	return rows, nil
}
