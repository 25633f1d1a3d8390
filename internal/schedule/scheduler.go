package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCooldown is the minimum interval between two accepted reviews of
// the same document.
const DefaultCooldown = 30 * time.Second

// DefaultWorkers is the number of reviews allowed to run concurrently
// across all documents.
const DefaultWorkers = 2

// Task is one review execution. The error is captured in a Result, never
// propagated; a failing task must not take the scheduler down.
type Task func(ctx context.Context) error

// Result is the recorded outcome of one executed task.
type Result struct {
	TaskID   string
	DocID    string
	Err      error
	Duration time.Duration
}

// Options configures a Scheduler. Zero values fall back to defaults.
type Options struct {
	Workers  int
	Cooldown time.Duration
	// OnResult, if set, receives the outcome of every executed task.
	OnResult func(Result)
	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// Scheduler gates review submissions per document by cooldown and drains
// accepted work through a fixed pool of workers in FIFO order. There is no
// cancellation and no per-document in-flight dedup: the time gate alone
// keeps redundant submissions cheap.
type Scheduler struct {
	throttle *ThrottleState
	cooldown time.Duration
	onResult func(Result)
	now      func() time.Time
	log      *zap.Logger

	mu      sync.Mutex
	queue   []queued
	wake    *sync.Cond
	stopped bool

	wg sync.WaitGroup
}

type queued struct {
	id    string
	docID string
	task  Task
}

// New creates a scheduler and starts its workers.
func New(throttle *ThrottleState, log *zap.Logger, opts Options) *Scheduler {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Scheduler{
		throttle: throttle,
		cooldown: opts.Cooldown,
		onResult: opts.OnResult,
		now:      opts.Now,
		log:      log,
	}
	s.wake = sync.NewCond(&s.mu)

	for i := 0; i < opts.Workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Submit offers a review for the document. A submission inside the cooldown
// window is dropped and Submit returns false. On accept the throttle is
// marked before the task runs, so re-entrant submissions during a slow
// review are still gated.
func (s *Scheduler) Submit(docID string, task Task) bool {
	now := s.now()
	if now.Sub(s.throttle.Last(docID)) < s.cooldown {
		s.log.Debug("submission dropped by cooldown", zap.String("doc", docID))
		return false
	}
	s.throttle.Mark(docID, now)
	return s.enqueue(docID, task)
}

// SubmitNow bypasses the cooldown by resetting the document's last-run
// time, then follows the normal submission path.
func (s *Scheduler) SubmitNow(docID string, task Task) bool {
	s.throttle.Reset(docID)
	return s.Submit(docID, task)
}

func (s *Scheduler) enqueue(docID string, task Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	id := uuid.NewString()
	s.queue = append(s.queue, queued{id: id, docID: docID, task: task})
	s.log.Debug("review queued", zap.String("doc", docID), zap.String("task", id))
	s.wake.Signal()
	return true
}

// worker drains the queue in FIFO order until Stop.
func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.stopped {
			s.wake.Wait()
		}
		if s.stopped && len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		item := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.run(item)
	}
}

// run executes one task, swallowing any failure into a logged Result.
func (s *Scheduler) run(item queued) {
	start := s.now()
	err := item.task(context.Background())
	res := Result{
		TaskID:   item.id,
		DocID:    item.docID,
		Err:      err,
		Duration: s.now().Sub(start),
	}
	if err != nil {
		s.log.Warn("review failed",
			zap.String("doc", item.docID),
			zap.String("task", item.id),
			zap.Error(err))
	} else {
		s.log.Info("review finished",
			zap.String("doc", item.docID),
			zap.Duration("took", res.Duration))
	}
	if s.onResult != nil {
		s.onResult(res)
	}
}

// Stop drains queued tasks and waits for workers to exit. New submissions
// after Stop are rejected.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.wake.Broadcast()
	s.wg.Wait()
	s.throttle.Clear()
}
