package main

import (
	"encoding/json"
	"fmt"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/schema/openapi"
	"github.com/spf13/cobra"
)

func newSchemaCmd(root *rootOptions) *cobra.Command {
	var (
		format         string
		validate       string
		rejectDisabled bool
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe the filter record the catalog accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch cascade.SchemaFormat(format) {
			case cascade.SchemaFormatDescriptors, cascade.SchemaFormatOpenAPI:
			default:
				return fmt.Errorf("unknown schema format %q", format)
			}
			engine, c, err := root.engine(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			genOpts := []openapi.GeneratorOption{openapi.WithCatalog(c.Name)}
			if rejectDisabled {
				genOpts = append(genOpts, openapi.WithDisabledValues(openapi.DisabledReject))
			}

			if validate != "" {
				validator, err := openapi.NewValidator(engine.Tree(), genOpts...)
				if err != nil {
					return err
				}
				if err := validator.ValidateJSON([]byte(validate)); err != nil {
					return err
				}
				fmt.Fprintln(out, "valid")
				return nil
			}

			var doc cascade.SchemaDocument
			if cascade.SchemaFormat(format) == cascade.SchemaFormatOpenAPI {
				doc, err = openapi.NewGenerator(genOpts...).Generate(engine.Tree())
			} else {
				doc, err = engine.Schema()
			}
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"catalog":  c.Name,
				"format":   doc.Format,
				"document": doc.Document,
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(cascade.SchemaFormatDescriptors), "descriptors or openapi")
	cmd.Flags().StringVar(&validate, "validate", "", "Validate a JSON filter record instead of printing the schema")
	cmd.Flags().BoolVar(&rejectDisabled, "reject-disabled", false, "Leave disabled values out of the accepted record")
	return cmd
}
