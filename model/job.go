package model //import "github.com/acuna/shelfwise/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// Job is a background recommendation refresh for one user, queued by the
// scheduler and consumed by the worker pool.
type Job struct {
	ID     int
	UserID int32
	Type   string
	Status string
}

type JobList []Job

func (j JobList) Len() int {
	return len(j)
}
