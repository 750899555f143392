package workers

import (
	"time"

	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Schedule holds the cron specs of the background jobs.
type Schedule struct {
	ReservationSweep      string
	NotificationCleanup   string
	NotificationRetention time.Duration
}

// Scheduler runs the periodic maintenance jobs on a robfig/cron instance.
type Scheduler struct {
	db            *gorm.DB
	reservations  services.ReservationService
	notifications services.NotificationService
	schedule      Schedule
	cron          *cron.Cron
	now           func() time.Time
}

func NewScheduler(
	db *gorm.DB,
	reservations services.ReservationService,
	notifications services.NotificationService,
	schedule Schedule,
) *Scheduler {
	return &Scheduler{
		db:            db,
		reservations:  reservations,
		notifications: notifications,
		schedule:      schedule,
		cron:          cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		now:           time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule.ReservationSweep, s.SweepReservations); err != nil {
		return err
	}
	if s.schedule.NotificationCleanup != "" {
		if _, err := s.cron.AddFunc(s.schedule.NotificationCleanup, s.CleanNotifications); err != nil {
			return err
		}
	}

	s.cron.Start()
	logger.Info("Workers started",
		"reservation_sweep", s.schedule.ReservationSweep,
		"notification_cleanup", s.schedule.NotificationCleanup,
	)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Workers stopped")
}

// SweepReservations cancels stale pending reservations and completes past confirmed ones.
func (s *Scheduler) SweepReservations() {
	result, err := s.reservations.SweepStale(s.db, s.now())
	if err != nil {
		logger.WorkerLog("reservation_sweeper", "sweep", err)
		return
	}
	logger.WorkerLog("reservation_sweeper", "sweep", nil,
		"cancelled", result.Cancelled,
		"completed", result.Completed,
		"skipped", result.Skipped,
	)
}

func (s *Scheduler) CleanNotifications() {
	removed, err := s.notifications.CleanOldNotifications(s.db, s.schedule.NotificationRetention)
	logger.WorkerLog("notification_cleaner", "clean", err, "removed", removed)
}
