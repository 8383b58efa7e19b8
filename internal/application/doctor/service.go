package doctor

import (
	"context"
	"errors"
	"fmt"

	appconfig "github.com/doeshing/ganpi-go/internal/application/config"
	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// KeyValidator checks the configured API key. query.Service implements it.
type KeyValidator interface {
	Validate(ctx context.Context) error
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Validator      KeyValidator
	Classifier     ports.Classifier
	Gatherer       ports.ContextGatherer
	History        ports.HistoryRepository
	Dialect        domain.DialectName
	Tables         domain.RuleTables
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, model %s", cfg.ConfigFormatVersion, cfg.GetModel())))
	}

	checks = append(checks, s.keyCheck(ctx, cfg))
	checks = append(checks, ok("Dialect", fmt.Sprintf("%s (configured %s)", s.Dialect, cfg.GetDialect())))

	if s.Classifier != nil {
		probe := s.Classifier.Evaluate("ls")
		if probe.Tier != domain.TierSafe {
			checks = append(checks, warn("Classifier", fmt.Sprintf("'ls' classified %s; check the rules file", probe.Tier)))
		} else {
			checks = append(checks, ok("Classifier", fmt.Sprintf("%d forbidden, %d dangerous patterns",
				len(s.Tables.Forbidden), len(s.Tables.Dangerous))))
		}
	} else {
		checks = append(checks, warn("Classifier", "classifier not initialized"))
	}

	if s.Gatherer != nil {
		snapshot := s.Gatherer.Gather(ctx, "")
		checks = append(checks, ok("Context", fmt.Sprintf("%d blocks from %s", len(snapshot.Blocks), snapshot.WorkingDir)))
	}

	switch {
	case !cfg.History.Enabled:
		checks = append(checks, warn("History", "disabled"))
	case s.History == nil:
		checks = append(checks, warn("History", "store not initialized"))
	default:
		checks = append(checks, ok("History", s.History.Path()))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) keyCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.HasAPIKey() {
		return fail("API key", "not set; export GEMINI_API_KEY or run 'ganpi config set api_key <key>'")
	}
	if s.Validator == nil {
		return warn("API key", "present but not validated")
	}
	err := s.Validator.Validate(ctx)
	var transportErr *domain.TransportError
	switch {
	case err == nil:
		return ok("API key", "validated against the models endpoint")
	case errors.As(err, &transportErr):
		return fail("API key", fmt.Sprintf("could not reach the API: %v", err))
	default:
		return fail("API key", err.Error())
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
