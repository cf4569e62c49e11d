package reporting

import (
	"fmt"

	"portfoliohealth/internal/utils"

	"github.com/robfig/cron/v3"
)

// SnapshotScheduler recomputes health reports for every stored portfolio on
// a cron schedule and persists the headline metrics, building up the score
// history served by the snapshots endpoint.
type SnapshotScheduler struct {
	service *ReportingService
	logger  utils.Logger
	cron    *cron.Cron
}

func NewSnapshotScheduler(service *ReportingService, logger utils.Logger) *SnapshotScheduler {
	return &SnapshotScheduler{
		service: service,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start registers the snapshot job and starts the scheduler
func (s *SnapshotScheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.RunSnapshots)
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Snapshot job scheduled: %s", schedule)
	return nil
}

// Stop halts the scheduler; a running job finishes first
func (s *SnapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunSnapshots generates and stores a snapshot for every portfolio. One
// failing portfolio does not stop the rest; failures are logged and skipped.
func (s *SnapshotScheduler) RunSnapshots() {
	ids, err := s.service.ListPortfolioIDs()
	if err != nil {
		s.logger.Error("Snapshot run aborted: %v", err)
		return
	}

	saved := 0
	for _, id := range ids {
		report, err := s.service.GenerateHealthReport(id)
		if err != nil {
			s.logger.Warn("Skipping snapshot for portfolio %d: %v", id, err)
			continue
		}
		if err := s.service.SaveSnapshot(id, report); err != nil {
			s.logger.Error("Failed to save snapshot for portfolio %d: %v", id, err)
			continue
		}
		saved++
	}

	s.logger.Info("Snapshot run completed: %d/%d portfolios", saved, len(ids))
}
