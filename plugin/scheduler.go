package plugin

import (
	"time"

	"termchat/log"
)

// Clock reads the current time. Times must carry a monotonic reading so that
// wall-clock jumps do not fire or starve tasks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// TickResult summarises one scheduling pass.
type TickResult struct {
	Fired  int
	Failed int
}

// Scheduler fires due timed tasks from the host tick. It never starts
// goroutines: all callbacks run on the caller's goroutine, one after another.
type Scheduler struct {
	registry *Registry
}

// NewScheduler creates a scheduler over the registry's timed tasks.
func NewScheduler(registry *Registry) *Scheduler {
	return &Scheduler{registry: registry}
}

// Tick runs one scheduling pass. The due set is computed before any callback
// runs, so tasks registered by a callback wait for a later pass, and tasks
// removed by a callback are skipped. A fired task's elapsed time restarts at
// now rather than advancing by its interval, so a stalled host fires each
// task once instead of replaying missed intervals.
func (s *Scheduler) Tick() TickResult {
	now := s.registry.clock.Now()

	var due []*TimedTask
	for _, task := range s.registry.TimedTasks() {
		if task.Due(now) {
			due = append(due, task)
		}
	}

	var result TickResult
	for _, task := range due {
		if !s.registry.isLive(task) || task.disabled {
			continue
		}

		_, err := invoke(task.Callback, nil)
		task.lastReset = now
		task.fired++
		if err != nil {
			task.disabled = true
			task.lastErr = err
			result.Failed++
			cbErr := &CallbackError{Kind: "timed", Name: string(task.ID), Owner: task.Owner, Err: err}
			log.ErrorLog.Printf("%v; task disabled", cbErr)
			continue
		}
		result.Fired++
	}

	if result.Fired > 0 || result.Failed > 0 {
		log.DebugLog.Printf("scheduler pass: %d fired, %d failed", result.Fired, result.Failed)
	}
	return result
}

// Enable re-arms a task that was disabled after a failure. Its elapsed time
// restarts from now.
func (s *Scheduler) Enable(id TaskID) error {
	task, ok := s.registry.TimedTask(id)
	if !ok {
		return ErrUnknownTask
	}
	task.disabled = false
	task.lastErr = nil
	task.lastReset = s.registry.clock.Now()
	return nil
}
