package assets

import "sync"

// Queue hands work from loader goroutines to the main thread. Push is safe
// from any goroutine; Drain must only be called by the goroutine that owns
// the scene.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Drain runs every queued task in push order and returns how many ran.
// Tasks pushed while draining run on the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Len returns the number of tasks waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
