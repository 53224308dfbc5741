package cascade

import (
	"github.com/goliatone/go-cascade/pkg/activity"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	mode            Mode
	objectID        string
	logger          Logger
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
	activityConfig  activity.Config
	activitySet     bool
}

func applyOptions(opts []Option) config {
	cfg := config{mode: ModeMultiple}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	return cfg
}

// WithMode selects single or multiple selection (multiple by default).
func WithMode(mode Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// WithObjectID names the selector in activity events, e.g. "product-filter".
func WithObjectID(id string) Option {
	return func(cfg *config) {
		cfg.objectID = id
	}
}

// WithEvaluator sets the evaluator used by Engine.Matcher.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *config) {
		cfg.schemaGenerator = generator
	}
}

// WithActivityHooks attaches activity hooks. Hooks are cloned and nil
// entries dropped. Emission is enabled unless WithActivityConfig says otherwise.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := activity.CloneHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides emission defaults (enabled flag, channel, actor).
func WithActivityConfig(activityCfg activity.Config) Option {
	return func(cfg *config) {
		cfg.activityConfig = activityCfg
		cfg.activitySet = true
	}
}

func (cfg config) emitter() *activity.Emitter {
	activityCfg := cfg.activityConfig
	if !cfg.activitySet {
		activityCfg.Enabled = true
	}
	return activity.NewEmitter(cfg.activityHooks, activityCfg)
}
