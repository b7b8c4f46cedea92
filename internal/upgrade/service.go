package upgrade

import (
	"context"

	"github.com/chroniclelabs/chronicle/backend/internal/logger"
)

// Outcome is the tagged result of one orchestrator run.
type Outcome int

const (
	// OutcomeFreshInstall means no version marker exists yet; there is
	// nothing to migrate.
	OutcomeFreshInstall Outcome = iota

	// OutcomeUpToDate means the installed version already matches.
	OutcomeUpToDate

	// OutcomePerformed means the migration step ran and committed.
	OutcomePerformed

	// OutcomeSkipped means the installed version skipped a release;
	// nothing was migrated and the operator was notified.
	OutcomeSkipped

	// OutcomeFailed means the migration was attempted and did not
	// complete; the error is in Result.Err.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFreshInstall:
		return "fresh-install"
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomePerformed:
		return "performed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what a run did. Err is set only for OutcomeFailed.
type Result struct {
	Outcome   Outcome
	Installed string
	Target    string
	Err       error
}

// Config carries the notification settings the orchestrator needs.
type Config struct {
	AdminEmail  string
	SkipSubject string
	SkipBody    string
}

// Service is the upgrade orchestrator, the only entry point the host
// application calls. Run never returns an error to the caller; failures
// are logged and reported through the Result so startup is never aborted
// by an un-migrated dataset.
type Service struct {
	store  Store
	runner *Runner
	gate   *NotificationGate
	config Config
	logger logger.Logger
}

// NewService creates a new upgrade orchestrator.
func NewService(store Store, runner *Runner, gate *NotificationGate, config Config, logger logger.Logger) *Service {
	return &Service{
		store:  store,
		runner: runner,
		gate:   gate,
		config: config,
		logger: logger,
	}
}

// Run reads the version marker, classifies it against the target version
// and dispatches. The decision happens before any mutation; the skip path
// never migrates and the migration path never notifies.
func (s *Service) Run(ctx context.Context) Result {
	result := Result{Target: ToVersion}

	installed, found, err := s.store.CurrentVersion(ctx)
	if err != nil {
		s.logger.LogError(err, "Failed to read version marker")
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	if !found {
		s.logger.LogDebug("No version marker found, nothing to upgrade", nil)
		result.Outcome = OutcomeFreshInstall
		return result
	}
	result.Installed = installed

	switch Decide(installed, ToVersion) {
	case DecisionUpToDate:
		result.Outcome = OutcomeUpToDate

	case DecisionPerform:
		if err := s.runner.Perform(ctx); err != nil {
			s.logger.LogError(err, "Upgrade failed; the application keeps serving with un-migrated data")
			result.Outcome = OutcomeFailed
			result.Err = err
			break
		}
		result.Outcome = OutcomePerformed

	case DecisionSkip:
		s.logger.LogWarn("Attempt to skip more than one version to upgrade", map[string]interface{}{
			"expected":  FromVersion,
			"installed": installed,
			"target":    ToVersion,
			"skew":      versionSkew(installed, ToVersion),
		})
		s.gate.NotifyOnce(s.config.AdminEmail, s.config.AdminEmail, s.config.SkipSubject, s.config.SkipBody)
		result.Outcome = OutcomeSkipped
	}

	return result
}
