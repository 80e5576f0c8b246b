package jobs

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning возвращается при повторном запуске планировщика
	ErrAlreadyRunning = errors.New("jobs: registry is already running")

	// ErrNotRunning возвращается при остановке незапущенного планировщика
	ErrNotRunning = errors.New("jobs: registry is not running")

	// ErrUnknownJob возвращается при обращении к незарегистрированной задаче
	ErrUnknownJob = errors.New("jobs: unknown job")
)

// jobFunc тело фоновой задачи
type jobFunc func(ctx context.Context) error

// job зарегистрированная фоновая задача
type job struct {
	name     string
	schedule schedule
	run      jobFunc

	mu      sync.Mutex
	lastRun *time.Time
	lastErr error
}

// JobStatus состояние одной задачи
type JobStatus struct {
	Name     string  `json:"name"`
	Schedule string  `json:"schedule"`
	LastRun  *string `json:"lastRun,omitempty"` // RFC3339
	LastErr  *string `json:"lastError,omitempty"`
}

// Status состояние планировщика
type Status struct {
	Running bool        `json:"running"`
	Jobs    []JobStatus `json:"jobs"`
}

// Registry планировщик фоновых задач.
// Каждая задача исполняется в своей горутине по своему расписанию.
type Registry struct {
	clock  Clock
	logger Logger

	mu      sync.Mutex
	jobs    []*job
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRegistry создает новый планировщик
func NewRegistry(clock Clock, logger Logger) *Registry {
	if clock == nil {
		clock = RealClock{}
	}
	return &Registry{
		clock:  clock,
		logger: logger,
	}
}

// Register регистрирует задачу. Вызывается до Start.
func (r *Registry) Register(name string, s schedule, fn jobFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, &job{
		name:     name,
		schedule: s,
		run:      fn,
	})
}

// Start запускает все зарегистрированные задачи
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(runCtx, j)
	}

	r.logger.Info("jobs: registry started with %d jobs", len(r.jobs))
	return nil
}

// Stop останавливает планировщик и дожидается завершения задач
func (r *Registry) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return ErrNotRunning
	}
	r.running = false
	r.cancel()
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("jobs: registry stopped")
	return nil
}

// Status возвращает состояние планировщика и всех задач
func (r *Registry) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := Status{
		Running: r.running,
		Jobs:    make([]JobStatus, 0, len(r.jobs)),
	}

	for _, j := range r.jobs {
		j.mu.Lock()
		js := JobStatus{
			Name:     j.name,
			Schedule: j.schedule.String(),
		}
		if j.lastRun != nil {
			v := j.lastRun.Format(time.RFC3339)
			js.LastRun = &v
		}
		if j.lastErr != nil {
			v := j.lastErr.Error()
			js.LastErr = &v
		}
		j.mu.Unlock()

		status.Jobs = append(status.Jobs, js)
	}

	return status
}

// RunNow выполняет задачу по имени немедленно, вне расписания
func (r *Registry) RunNow(ctx context.Context, name string) error {
	r.mu.Lock()
	var target *job
	for _, j := range r.jobs {
		if j.name == name {
			target = j
			break
		}
	}
	r.mu.Unlock()

	if target == nil {
		return ErrUnknownJob
	}

	r.execute(ctx, target)

	target.mu.Lock()
	defer target.mu.Unlock()
	return target.lastErr
}

// loop цикл исполнения одной задачи по расписанию
func (r *Registry) loop(ctx context.Context, j *job) {
	defer r.wg.Done()

	for {
		now := r.clock.Now()
		runAt := j.schedule.next(now)

		timer := time.NewTimer(runAt.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.execute(ctx, j)
		}
	}
}

// execute выполняет задачу и фиксирует результат
func (r *Registry) execute(ctx context.Context, j *job) {
	started := r.clock.Now()
	r.logger.Info("jobs: %s started", j.name)

	err := j.run(ctx)

	j.mu.Lock()
	j.lastRun = &started
	j.lastErr = err
	j.mu.Unlock()

	if err != nil {
		r.logger.Error("jobs: %s failed: %v", j.name, err)
		return
	}

	r.logger.Info("jobs: %s finished in %s", j.name, r.clock.Now().Sub(started))
}
