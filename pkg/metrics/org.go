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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// OrgMetrics tracks organization store and export activity.
type OrgMetrics struct {
	mutations *prometheus.CounterVec
	revision  prometheus.Gauge
	entities  *prometheus.GaugeVec
	exports   *prometheus.CounterVec
}

func NewOrgMetrics() *OrgMetrics {
	return &OrgMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rbac_store_mutations_total",
			Help: "Organization store mutations by operation and result",
		}, []string{"op", "result"}),
		revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rbac_store_revision",
			Help: "Current organization store revision",
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rbac_entities",
			Help: "Number of stored entities by kind",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rbac_exports_total",
			Help: "Employee exports by format, sink and result",
		}, []string{"format", "sink", "result"}),
	}
}

func (m *OrgMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.mutations, m.revision, m.entities, m.exports}
}

func (m *OrgMetrics) RecordMutation(op string, err error) {
	m.mutations.WithLabelValues(op, result(err)).Inc()
}

func (m *OrgMetrics) SetRevision(rev uint64) {
	m.revision.Set(float64(rev))
}

func (m *OrgMetrics) SetEntities(kind string, n int) {
	m.entities.WithLabelValues(kind).Set(float64(n))
}

func (m *OrgMetrics) RecordExport(format, sink string, err error) {
	m.exports.WithLabelValues(format, sink, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
