package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skilleval/internal/attempt"
	"github.com/abhisek/skilleval/internal/config"
	"github.com/abhisek/skilleval/internal/llm"
	"github.com/abhisek/skilleval/internal/logging"
	"github.com/abhisek/skilleval/internal/metrics"
	"github.com/abhisek/skilleval/internal/questiongen"
	"github.com/abhisek/skilleval/internal/scoring"
	"github.com/abhisek/skilleval/internal/store"
)

// appEnv holds what every command needs: configuration, logger, database
// and the current user.
type appEnv struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	metrics *metrics.Recorder
	user    string
}

// openEnv loads configuration and opens the database named by --db, the
// config file, or the default data dir.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbFlag, _ := cmd.Flags().GetString("db")
	dbPath, err := cfg.DBPath(dbFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	user, _ := cmd.Flags().GetString("user")
	return &appEnv{
		cfg:     cfg,
		log:     log,
		store:   s,
		metrics: metrics.New(),
		user:    user,
	}, nil
}

func (e *appEnv) Close() {
	_ = e.log.Sync()
	_ = e.store.Close()
}

// provider builds the configured LLM provider. Every call is recorded in
// the event log.
func (e *appEnv) provider(ctx context.Context) (llm.Provider, error) {
	if err := e.cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("LLM config: %w", err)
	}
	p, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return p, nil
}

// serviceOpts selects which LLM-backed collaborators a command needs.
type serviceOpts struct {
	generate bool
	score    bool
	// rules scores with the offline rule evaluator instead of the LLM.
	rules bool
}

func (e *appEnv) service(ctx context.Context, opts serviceOpts) (*attempt.Service, error) {
	deps := attempt.Deps{
		Profiles: e.store.ProfileRepo(),
		Tests:    e.store.TestRepo(),
		Attempts: e.store.AttemptRepo(),
		Logger:   e.log,
	}

	needLLM := opts.generate || (opts.score && !opts.rules)
	var p llm.Provider
	if needLLM {
		var err error
		if p, err = e.provider(ctx); err != nil {
			return nil, err
		}
	}

	if opts.generate {
		gp := llm.NewGenerationProvider(p, e.cfg.LLM, e.log)
		gcfg := questiongen.DefaultConfig()
		gcfg.MaxTokens = e.cfg.Generation.MaxTokens
		gcfg.Temperature = e.cfg.Generation.Temperature
		deps.Builder = questiongen.NewAssembler(questiongen.New(gp, gcfg),
			questiongen.WithRefiner(questiongen.NewRefiner(gp, gcfg)),
			questiongen.WithConcurrency(e.cfg.Generation.Concurrency),
			questiongen.WithLogger(e.log),
			questiongen.WithMetrics(e.metrics),
		)
	}

	if opts.score {
		var ev scoring.Evaluator = scoring.RuleEvaluator{}
		if !opts.rules {
			ev = scoring.NewLLMEvaluator(p, e.cfg.Evaluation.MaxTokens)
		}
		deps.Scorer = scoring.NewScorer(ev,
			scoring.WithConcurrency(e.cfg.Evaluation.Concurrency),
			scoring.WithLogger(e.log),
			scoring.WithMetrics(e.metrics),
		)
	}

	return attempt.NewService(deps), nil
}
