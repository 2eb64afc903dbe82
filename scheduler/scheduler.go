// Package scheduler periodically refreshes every user's recommendations,
// the in-process stand-in for an external cron.
package scheduler

import (
	"time"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/store"
	"github.com/acuna/shelfwise/worker"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Start wires the periodic refresh. An interval of 0 disables it.
// SingletonMode keeps a slow run from piling up behind itself.
func Start(s *store.Store, pool *worker.Pool, intervalHours int) *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	if intervalHours == 0 {
		log.Info("Scheduled recommendation refresh is disabled")
		return scheduler
	}

	log.Info("Scheduling recommendation refresh", zap.Int("interval_hours", intervalHours))
	_, err := scheduler.Every(intervalHours).Hours().Do(func() {
		enqueueAllUsers(s, pool)
	})
	if err != nil {
		log.Error("Failed to schedule recommendation refresh", zap.Error(err))
	}

	scheduler.StartAsync()
	return scheduler
}

// enqueueAllUsers pushes one refresh job per active user. User failures are
// isolated downstream in the workers, so one broken shelf never stalls the
// sweep.
func enqueueAllUsers(s *store.Store, pool *worker.Pool) {
	status := model.Normal
	users, err := s.ListUsers(&model.FindUser{RowStatus: &status})
	if err != nil {
		log.Error("Failed to list users for scheduled refresh", zap.Error(err))
		return
	}

	log.Info("Scheduled recommendation refresh started", zap.Int("users", len(users)))
	for _, user := range users {
		pool.Push(model.Job{
			UserID: user.ID,
			Type:   "RECOMMENDATION_REFRESH",
			Status: model.JobStatusPending,
		})
	}
}
