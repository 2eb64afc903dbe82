package worker

import (
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/recommend"
)

type Pool struct {
	queue chan model.Job
}

func (p *Pool) Push(jobs ...model.Job) {
	for _, job := range jobs {
		p.queue <- job
	}
}

// NewPool creates a pool of background workers consuming recommendation
// refresh jobs.
func NewPool(workflow *recommend.Workflow, size int) *Pool {
	workerPool := &Pool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &RefreshWorker{id: i, workflow: workflow}
		go worker.Run(workerPool.queue)
	}
	return workerPool
}
