package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appconfig "github.com/doeshing/ganpi-go/internal/application/config"
	"github.com/doeshing/ganpi-go/internal/application/confirm"
	"github.com/doeshing/ganpi-go/internal/application/doctor"
	"github.com/doeshing/ganpi-go/internal/application/query"
	"github.com/doeshing/ganpi-go/internal/application/summarize"
	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/ai"
	"github.com/doeshing/ganpi-go/internal/infrastructure/cache"
	"github.com/doeshing/ganpi-go/internal/infrastructure/config"
	contextcollector "github.com/doeshing/ganpi-go/internal/infrastructure/context"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/infrastructure/executor"
	"github.com/doeshing/ganpi-go/internal/infrastructure/history"
	"github.com/doeshing/ganpi-go/internal/infrastructure/security"
	"github.com/doeshing/ganpi-go/internal/pkg/filesystem"
	"github.com/doeshing/ganpi-go/internal/pkg/logger"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Options are the start-up switches that shape the dependency graph.
type Options struct {
	// ConfigPath overrides GANPI_CONFIG and the default location.
	ConfigPath string
	// Dialect overrides the configured dialect ("auto", "posix", "windows").
	Dialect string
	// Offline swaps the Gemini gateway for the keyword heuristic.
	Offline bool
	Verbose bool
	// AppDir holds rules, history and cache; empty means ~/.ganpi.
	AppDir string
	// Stdin is handed to executed commands.
	Stdin io.Reader
}

// Container wires up application services with infrastructure adapters.
// The CLI fills in the terminal-bound pieces (prompter, clipboard, reporter).
type Container struct {
	Config           domain.Config
	ConfigLoader     *config.FileLoader
	Dialect          dialect.Dialect
	Classifier       *security.Classifier
	Confirmer        *confirm.Confirmer
	QueryService     *query.Service
	DoctorService    *doctor.Service
	SummarizeService *summarize.Service
	HistoryStore     ports.HistoryRepository
	CacheStore       *cache.FileCache
	Logger           *logger.ZapLogger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", cfgLoader.Path(), err)
	}

	dialectName := cfg.GetDialect()
	if opts.Dialect != "" {
		dialectName = opts.Dialect
	}
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}

	appDir := opts.AppDir
	if appDir == "" {
		appDir = filesystem.AppDir()
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	log := logger.New(opts.Verbose)

	rulesPath := cfg.Security.RulesFile
	if rulesPath == "" {
		rulesPath = filepath.Join(appDir, "rules.yaml")
	}
	classifier, err := security.NewClassifierFromFile(filesystem.ExpandPath(rulesPath), d)
	if err != nil {
		log.Warn("rules file unusable, using built-in tables", map[string]interface{}{
			"path":  rulesPath,
			"error": err.Error(),
		})
		classifier = security.NewClassifier(d.DefaultRules())
	}

	gatherer := contextcollector.NewGatherer(cfg.GetContextLimits(), contextcollector.WithLogger(log))
	requests := ai.NewGeminiRequests(cfg)
	var gateway ports.Gateway = ai.NewHTTPGateway(cfg.GetHTTPTimeout(), log)
	if opts.Offline {
		gateway = ai.NewHeuristicGateway(d)
	}

	confirmer := &confirm.Confirmer{
		Runner: executor.NewLocalRunner(d, stdin),
		Logger: log,
	}

	historyStore, err := history.Open(appDir)
	if err != nil {
		log.Warn("sqlite history unavailable, using jsonl", map[string]interface{}{"error": err.Error()})
	}
	if days := cfg.GetHistoryRetentionDays(); days > 0 {
		if n, err := historyStore.Prune(time.Now().AddDate(0, 0, -days)); err != nil {
			log.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
		} else if n > 0 {
			log.Debug("history pruned", map[string]interface{}{"removed": n, "retention_days": days})
		}
	}
	cacheStore := cache.NewFileCache(cache.DefaultDir(appDir), cfg.GetCacheTTL(), cfg.GetCacheMaxEntries())

	var parserOpts []ai.ParserOption
	if cfg.Parser.UTF8Escapes {
		parserOpts = append(parserOpts, ai.WithUTF8Escapes())
	}

	queryService := &query.Service{
		Gatherer:      gatherer,
		Prompts:       ai.NewPromptBuilder(d),
		Requests:      requests,
		Gateway:       gateway,
		Parser:        ai.NewParser(d, parserOpts...),
		Classifier:    classifier,
		Confirmer:     confirmer,
		Logger:        log,
		Model:         requests.Model(),
		Dialect:       d.Name(),
		KeyConfigured: cfg.HasAPIKey(),
	}
	if cfg.History.Enabled {
		queryService.History = historyStore
	}
	if cfg.Cache.Enabled {
		queryService.Cache = cacheStore
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Validator:      queryService,
		Classifier:     classifier,
		Gatherer:       gatherer,
		History:        historyStore,
		Dialect:        d.Name(),
		Tables:         classifier.Tables(),
	}

	summarizeService := &summarize.Service{
		Summarizer: ai.NewGenAISummarizer(cfg),
		Logger:     log,
	}

	return &Container{
		Config:           cfg,
		ConfigLoader:     cfgLoader,
		Dialect:          d,
		Classifier:       classifier,
		Confirmer:        confirmer,
		QueryService:     queryService,
		DoctorService:    doctorService,
		SummarizeService: summarizeService,
		HistoryStore:     historyStore,
		CacheStore:       cacheStore,
		Logger:           log,
	}, nil
}

// Close flushes the logger and releases the history database.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		_ = closer.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}
