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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronMetrics implements cron.MetricsRecorder.
type CronMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
	nextRun  *prometheus.GaugeVec
	jobs     prometheus.Gauge
}

func NewCronMetrics() *CronMetrics {
	return &CronMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Total number of cron job runs",
		}, []string{"job_name"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cron_job_run_duration_seconds",
			Help:    "Duration of cron job runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"job_name"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_errors_total",
			Help: "Total number of cron job errors",
		}, []string{"job_name"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cron_job_last_run_time_seconds",
			Help: "Last run time of cron job in seconds since epoch",
		}, []string{"job_name"}),
		nextRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cron_job_next_run_time_seconds",
			Help: "Next scheduled run time of cron job in seconds since epoch",
		}, []string{"job_name"}),
		jobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cron_jobs_total",
			Help: "Total number of registered cron jobs",
		}),
	}
}

// Collectors returns every metric for registration.
func (m *CronMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.runs, m.duration, m.errors, m.lastRun, m.nextRun, m.jobs}
}

func (m *CronMetrics) RecordJobRun(jobName string, duration time.Duration, err error) {
	if err != nil {
		m.errors.WithLabelValues(jobName).Inc()
	}
	m.runs.WithLabelValues(jobName).Inc()
	m.duration.WithLabelValues(jobName).Observe(duration.Seconds())
	m.lastRun.WithLabelValues(jobName).Set(float64(time.Now().Unix()))
}

func (m *CronMetrics) UpdateNextRun(jobName string, nextRun time.Time) {
	if !nextRun.IsZero() {
		m.nextRun.WithLabelValues(jobName).Set(float64(nextRun.Unix()))
	}
}

func (m *CronMetrics) UpdateJobsCount(count int) {
	m.jobs.Set(float64(count))
}
