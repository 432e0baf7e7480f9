// Package scheduler runs the periodic background jobs of the application,
// currently the nightly materialized wealth-history refresh.
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/avandyk/wealth-analytics/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron                *cron.Cron
	materializedService *service.MaterializedService
}

// New creates a Scheduler with the materialized refresh job registered on
// the given cron schedule (standard five-field cron syntax).
func New(materializedService *service.MaterializedService, refreshSchedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron:                cron.New(),
		materializedService: materializedService,
	}

	_, err := s.cron.AddFunc(refreshSchedule, s.refreshWealthHistory)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshWealthHistory() {
	log.Printf("Refreshing materialized wealth history")
	if err := s.materializedService.Refresh(context.Background()); err != nil {
		log.Printf("Materialized wealth history refresh failed: %v", err)
		return
	}
	log.Printf("Materialized wealth history refresh complete")
}
