package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartrental/internal/jobs"
	"smartrental/internal/logging"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// DefaulterRemindersJob is the name of the monthly reminder job.
const DefaulterRemindersJob = "defaulter-reminders"

const reminderRunTimeout = 15 * time.Minute

var ErrUnknownJob = errors.New("unknown job")

// JobScheduler manages the background jobs of the API process.
type JobScheduler struct {
	scheduler gocron.Scheduler
	reminders *jobs.ReminderJob
	jobs      map[string]gocron.Job
	tasks     map[string]func()
	started   bool
	manualRun map[string]time.Time
	inline    sync.WaitGroup
	mu        sync.RWMutex
	logger    zerolog.Logger
}

// NewJobScheduler registers the reminder job on reminderCron (five-field
// cron, evaluated in loc). A nil loc means time.Local.
func NewJobScheduler(reminders *jobs.ReminderJob, reminderCron string, loc *time.Location) (*JobScheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		reminders: reminders,
		jobs:      make(map[string]gocron.Job),
		tasks:     make(map[string]func()),
		manualRun: make(map[string]time.Time),
		logger:    logging.WithComponent("scheduler"),
	}

	if err := js.registerJobs(reminderCron); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.mu.Lock()
	js.started = true
	js.mu.Unlock()

	js.logger.Info().Int("jobs", len(js.jobs)).Msg("starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler.
func (js *JobScheduler) Stop() error {
	js.logger.Info().Msg("stopping background job scheduler")
	js.inline.Wait()
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(reminderCron string) error {
	job, err := js.scheduler.NewJob(
		gocron.CronJob(reminderCron, false),
		gocron.NewTask(js.sendReminders),
		gocron.WithName(DefaulterRemindersJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register %s job: %w", DefaulterRemindersJob, err)
	}

	js.mu.Lock()
	js.jobs[DefaulterRemindersJob] = job
	js.tasks[DefaulterRemindersJob] = js.sendReminders
	js.mu.Unlock()
	return nil
}

func (js *JobScheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
	defer cancel()

	if _, err := js.reminders.RunAll(ctx); err != nil {
		js.logger.Error().Err(err).Str("job", DefaulterRemindersJob).Msg("job failed")
	}
}

// RunNow triggers a registered job outside its schedule. gocron only
// executes jobs of a started scheduler, so when Start was never called
// (serve --no-scheduler) the task runs in its own goroutine instead.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.Lock()
	job, ok := js.jobs[name]
	if !ok {
		js.mu.Unlock()
		return ErrUnknownJob
	}
	if js.started {
		js.mu.Unlock()
		return job.RunNow()
	}

	task := js.tasks[name]
	js.manualRun[name] = time.Now()
	js.inline.Add(1)
	js.mu.Unlock()

	js.logger.Info().Str("job", name).Msg("scheduler not started, running job inline")
	go func() {
		defer js.inline.Done()
		task()
	}()
	return nil
}

// JobStatus describes one registered job.
type JobStatus struct {
	Name    string     `json:"name"`
	NextRun *time.Time `json:"nextRun,omitempty"`
	LastRun *time.Time `json:"lastRun,omitempty"`
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		status := JobStatus{Name: name}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			status.NextRun = &next
		}
		if last, err := job.LastRun(); err == nil && !last.IsZero() {
			status.LastRun = &last
		}
		if manual, ok := js.manualRun[name]; ok && (status.LastRun == nil || manual.After(*status.LastRun)) {
			status.LastRun = &manual
		}
		statuses = append(statuses, status)
	}
	return statuses
}
