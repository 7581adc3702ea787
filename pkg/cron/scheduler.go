// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cron

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mustafaazad03/rbac-ui/pkg/log"
	robfig "github.com/robfig/cron"
)

var (
	ErrDuplicateJob = errors.New("cron job already registered")
	ErrEmptyName    = errors.New("cron job name is empty")
)

// MetricsRecorder receives job run observations.
type MetricsRecorder interface {
	RecordJobRun(jobName string, duration time.Duration, err error)
	UpdateNextRun(jobName string, nextRun time.Time)
	UpdateJobsCount(count int)
}

// JobFunc is a named scheduled job. The context is cancelled on Stop.
type JobFunc func(ctx context.Context) error

// OpOption configures a Scheduler.
type OpOption func(*Scheduler)

func WithLocation(loc *time.Location) OpOption {
	return func(s *Scheduler) { s.location = loc }
}

func WithMetricsRecorder(r MetricsRecorder) OpOption {
	return func(s *Scheduler) { s.recorder = r }
}

// Scheduler runs named jobs on second-resolution cron specs
// ("sec min hour dom month [dow]" or descriptors such as "@every 1h").
type Scheduler struct {
	mu       sync.Mutex
	cron     *robfig.Cron
	location *time.Location
	recorder MetricsRecorder
	jobs     map[string]robfig.Schedule
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(opts ...OpOption) *Scheduler {
	s := &Scheduler{
		location: time.Local,
		jobs:     make(map[string]robfig.Schedule),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = robfig.NewWithLocation(s.location)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Validate reports whether spec parses.
func Validate(spec string) error {
	if _, err := robfig.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// AddFunc registers fn under name. Names are unique.
func (s *Scheduler) AddFunc(name, spec string, fn JobFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	schedule, err := robfig.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	s.jobs[name] = schedule
	s.cron.Schedule(schedule, robfig.FuncJob(func() { s.run(name, schedule, fn) }))

	if s.recorder != nil {
		s.recorder.UpdateJobsCount(len(s.jobs))
		s.recorder.UpdateNextRun(name, schedule.Next(time.Now().In(s.location)))
	}
	log.Infow("cron job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) run(name string, schedule robfig.Schedule, fn JobFunc) {
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("cron job panic: %v", r)
			}
		}()
		return fn(s.ctx)
	}()
	duration := time.Since(start)

	if err != nil {
		log.Errorw("cron job failed", "job", name, "duration", duration.String(), "error", err)
	} else {
		log.Debugw("cron job finished", "job", name, "duration", duration.String())
	}
	if s.recorder != nil {
		s.recorder.RecordJobRun(name, duration, err)
		s.recorder.UpdateNextRun(name, schedule.Next(time.Now().In(s.location)))
	}
}

// Start begins running jobs in the background. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
}

// Stop halts scheduling and cancels the context of running jobs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.cron.Stop()
	s.cancel()
}

// Jobs returns the registered job names and their next activation time.
func (s *Scheduler) Jobs() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().In(s.location)
	out := make(map[string]time.Time, len(s.jobs))
	for name, schedule := range s.jobs {
		out[name] = schedule.Next(now)
	}
	return out
}
