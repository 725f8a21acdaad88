package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/heritage/engine/core"
)

// JobTask is one unit of background work. OnComplete or OnFailure runs on the
// worker goroutine once Run returns.
type JobTask struct {
	Name       string
	Run        func(ctx context.Context) error
	OnComplete func()
	OnFailure  func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan queuedJob
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type queuedJob struct {
	ctx  context.Context
	task JobTask
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")
var ErrQueueFull = errors.New("job queue is full")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan queuedJob, channelSize),
	}
	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job queuedJob) {
	err := job.ctx.Err()
	if err == nil {
		err = job.task.Run(job.ctx)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			core.LogError("job %s failed: %s", job.task.Name, err)
		}
		if job.task.OnFailure != nil {
			job.task.OnFailure(err)
		}
		return
	}
	if job.task.OnComplete != nil {
		job.task.OnComplete()
	}
}

/**
 * @brief Shuts the job system down, waiting for queued jobs to finish. Safe
 * to call more than once.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job, blocking while the queue is full. The
 * context is handed to the job and also bounds the wait.
 */
func (js *JobSystem) Submit(ctx context.Context, jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	select {
	case js.jobQueue <- queuedJob{ctx: ctx, task: jt}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues the job only if there is room right now.
func (js *JobSystem) TrySubmit(ctx context.Context, jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	select {
	case js.jobQueue <- queuedJob{ctx: ctx, task: jt}:
		return nil
	default:
		return ErrQueueFull
	}
}
