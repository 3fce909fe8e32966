package worker

import (
	"context"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

// TrialSweeper periodically walks the unsubscribed accounts, publishes
// trial gauges and logs accounts whose window is about to close. It is
// read-only: entitlement is always derived at request time, so nothing
// here flips access.
type TrialSweeper struct {
	users     user.Repository
	scheduler *cron.Cron
	logger    *logger.Logger

	// Gauge sinks, injected so the worker stays decoupled from the
	// metrics package in tests.
	setActiveTrials       func(float64)
	setTrialsExpiringSoon func(float64)
}

// NewTrialSweeper creates a new trial sweeper worker
func NewTrialSweeper(
	users user.Repository,
	setActiveTrials func(float64),
	setTrialsExpiringSoon func(float64),
	log *logger.Logger,
) *TrialSweeper {
	return &TrialSweeper{
		users:                 users,
		setActiveTrials:       setActiveTrials,
		setTrialsExpiringSoon: setTrialsExpiringSoon,
		logger:                log,
	}
}

// Start schedules the daily sweep and runs one immediately
func (s *TrialSweeper) Start(ctx context.Context, schedule string) error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(schedule, func() {
		s.Sweep(ctx)
	}); err != nil {
		return err
	}
	s.scheduler.Start()
	s.logger.Infof("Trial sweeper scheduled: %s", schedule)

	s.Sweep(ctx)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *TrialSweeper) Stop() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
	s.logger.Info("Trial sweeper stopped")
}

// Sweep computes the trial gauges for all unsubscribed accounts
func (s *TrialSweeper) Sweep(ctx context.Context) {
	now := time.Now()

	users, err := s.users.ListOnTrial(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Trial sweep failed to list accounts")
		return
	}

	var active, expiringSoon int
	for _, u := range users {
		ent := user.Evaluate(now, u)
		if !ent.TrialActive {
			continue
		}
		active++
		if ent.TrialDaysRemaining <= 3 {
			expiringSoon++
			s.logger.WithFields(map[string]interface{}{
				"user_id":        u.ID,
				"email":          u.Email,
				"days_remaining": ent.TrialDaysRemaining,
			}).Info("Trial expiring soon")
		}
	}

	if s.setActiveTrials != nil {
		s.setActiveTrials(float64(active))
	}
	if s.setTrialsExpiringSoon != nil {
		s.setTrialsExpiringSoon(float64(expiringSoon))
	}

	s.logger.WithFields(map[string]interface{}{
		"checked":       len(users),
		"active":        active,
		"expiring_soon": expiringSoon,
	}).Info("Trial sweep complete")
}
