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
	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for metrics
var ProviderSet = wire.NewSet(
	NewMetricsServer,
	NewOrgMetrics,
	NewCronMetrics,
)

// NewMetricsServer creates a metrics server with the cron and organization
// collectors registered.
func NewMetricsServer(config MetricsConfig, org *OrgMetrics, cron *CronMetrics) (*Server, error) {
	server := NewServer(config)
	if err := server.RegisterCollector(append(org.Collectors(), cron.Collectors()...)...); err != nil {
		return nil, err
	}
	return server, nil
}
