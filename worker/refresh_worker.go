package worker

import (
	"context"
	"time"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/recommend"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// refreshJobTimeout bounds one user's refresh; model generation plus a few
// catalog lookups fit comfortably.
const refreshJobTimeout = 5 * time.Minute

// RefreshWorker regenerates one user's recommendations per job. A failed
// job is logged and dropped; the queue keeps moving for the other users.
type RefreshWorker struct {
	id       int
	workflow *recommend.Workflow
}

func (w *RefreshWorker) Run(c <-chan model.Job) {
	log.Debug("Worker started", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Worker received job",
			zap.Int("worker_id", w.id),
			zap.Int32("user_id", job.UserID),
			zap.String("type", job.Type))

		ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
		_, err := w.workflow.RunForUser(ctx, job.UserID)
		cancel()

		switch {
		case err == nil:
			// done
		case errors.Is(err, model.ErrEmptyShelf):
			log.Debug("Skipping user with empty shelf", zap.Int32("user_id", job.UserID))
		default:
			log.Error("Scheduled refresh failed",
				zap.Int32("user_id", job.UserID),
				zap.Error(err))
		}
	}
}
