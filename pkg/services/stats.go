package services

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartStatsReporter logs view statistics on the given cron schedule.
// The returned cron must be stopped by the caller.
func (s *Service) StartStatsReporter(schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.ReportStats); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}
	c.Start()

	s.log.Info("stats reporter started", zap.String("schedule", schedule))
	return c, nil
}

// ReportStats logs the number of mounted and held views and refreshes the gauge
func (s *Service) ReportStats() {
	mounted := s.MountedViews()
	s.metrics.MountedViews.Set(float64(mounted))

	s.log.Info("view statistics",
		zap.Int("mounted", mounted),
		zap.Int("held", s.HeldViews()),
		zap.Int("slides", s.catalog.Len()))
}
