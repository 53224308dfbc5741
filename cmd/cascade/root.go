package main

import (
	"fmt"
	"io"
	"log/slog"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/catalog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	catalogPath string
	mode        string
	verbose     bool
	strict      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "cascade",
		Short:        "Query hierarchical option catalogs",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "Path to a JSON or YAML catalog")
	cmd.PersistentFlags().StringVarP(&opts.mode, "mode", "m", "", "Selection mode override (single|multiple)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine operations to stderr")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Reject unknown catalog fields")
	_ = cmd.MarkPersistentFlagRequired("catalog")

	cmd.AddCommand(
		newSearchCmd(opts),
		newPathsCmd(opts),
		newRecordCmd(opts),
		newTagsCmd(opts),
		newSchemaCmd(opts),
		newMatchCmd(opts),
	)
	return cmd
}

// engine loads the catalog and builds an engine logging to cmd's stderr.
func (o *rootOptions) engine(cmd *cobra.Command, extra ...cascade.Option) (*cascade.Engine, catalog.Catalog, error) {
	var loadOpts []catalog.Option
	if o.strict {
		loadOpts = append(loadOpts, catalog.WithStrict())
	}
	c, err := catalog.LoadFile(o.catalogPath, loadOpts...)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}

	options := []cascade.Option{cascade.WithLogger(newSlogLogger(cmd.ErrOrStderr(), o.verbose))}
	if o.mode != "" {
		mode, err := cascade.ParseMode(o.mode)
		if err != nil {
			return nil, catalog.Catalog{}, err
		}
		options = append(options, cascade.WithMode(mode))
	}
	options = append(options, extra...)

	engine, err := c.Engine(options...)
	if err != nil {
		return nil, catalog.Catalog{}, fmt.Errorf("load %s: %w", o.catalogPath, err)
	}
	return engine, c, nil
}

// slogLogger adapts cascade log events to log/slog.
type slogLogger struct {
	logger *slog.Logger
}

func newSlogLogger(w io.Writer, verbose bool) slogLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slogLogger{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l slogLogger) LogEvent(event cascade.LogEvent) {
	attrs := []any{
		"op", event.Op,
		"before", event.Before,
		"after", event.After,
		"duration", event.Duration,
	}
	if event.Engine != "" {
		attrs = append(attrs, "engine", event.Engine, "expr", event.Expr)
	} else {
		attrs = append(attrs, "mode", event.Mode.String())
	}
	if event.Dropped > 0 {
		attrs = append(attrs, "dropped", event.Dropped)
	}
	switch {
	case event.Err != nil:
		l.logger.Error("cascade", append(attrs, "err", event.Err)...)
	case event.Dropped > 0:
		l.logger.Warn("cascade", attrs...)
	default:
		l.logger.Debug("cascade", attrs...)
	}
}
