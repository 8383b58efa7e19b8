package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubValidator struct{ err error }

func (v stubValidator) Validate(context.Context) error { return v.err }

type tierClassifier struct{ tier domain.RiskTier }

func (c tierClassifier) Evaluate(command string) domain.RiskAssessment {
	return domain.RiskAssessment{Command: command, Tier: c.tier}
}

type emptyHistory struct{}

func (emptyHistory) Save(domain.HistoryRecord) error                       { return nil }
func (emptyHistory) Records(int, string) ([]domain.HistoryRecord, error) { return nil, nil }
func (emptyHistory) Prune(time.Time) (int, error)                         { return 0, nil }
func (emptyHistory) Clear() error                                         { return nil }
func (emptyHistory) Path() string                                         { return "/tmp/history.db" }

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, check := range report.Checks {
		if check.Name == name {
			return check.Status
		}
	}
	return ""
}

func TestDoctorHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: staticConfig{cfg: domain.Config{APIKey: "k", History: domain.HistorySettings{Enabled: true}}},
		Validator:      stubValidator{},
		Classifier:     tierClassifier{tier: domain.TierSafe},
		History:        emptyHistory{},
		Dialect:        domain.DialectPOSIX,
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() {
		t.Fatalf("expected healthy report, got %+v", report.Checks)
	}
	if got := statusOf(report, "History"); got != domain.HealthOK {
		t.Errorf("History status = %s", got)
	}
}

func TestDoctorReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		svc    *Service
		check  string
		status domain.HealthStatus
	}{
		{
			name:   "missing key",
			svc:    &Service{ConfigProvider: staticConfig{}},
			check:  "API key",
			status: domain.HealthError,
		},
		{
			name:   "rejected key",
			svc:    &Service{ConfigProvider: staticConfig{cfg: domain.Config{APIKey: "k"}}, Validator: stubValidator{err: domain.ErrInvalidAPIKey}},
			check:  "API key",
			status: domain.HealthError,
		},
		{
			name:   "unreachable api",
			svc:    &Service{ConfigProvider: staticConfig{cfg: domain.Config{APIKey: "k"}}, Validator: stubValidator{err: &domain.TransportError{Op: "GET", Err: errors.New("dial")}}},
			check:  "API key",
			status: domain.HealthError,
		},
		{
			name:   "odd classifier tables",
			svc:    &Service{ConfigProvider: staticConfig{}, Classifier: tierClassifier{tier: domain.TierDangerous}},
			check:  "Classifier",
			status: domain.HealthWarn,
		},
		{
			name:   "history disabled",
			svc:    &Service{ConfigProvider: staticConfig{}},
			check:  "History",
			status: domain.HealthWarn,
		},
		{
			name:   "invalid config",
			svc:    &Service{ConfigProvider: staticConfig{cfg: domain.Config{Dialect: "fish"}}},
			check:  "Config file",
			status: domain.HealthError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := tt.svc.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := statusOf(report, tt.check); got != tt.status {
				t.Errorf("%s status = %s, want %s", tt.check, got, tt.status)
			}
		})
	}
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("permission denied")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !report.Failed() {
		t.Fatal("expected failed report")
	}
}
