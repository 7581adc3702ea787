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

package repo

import (
	"github.com/google/wire"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
)

var ProviderSet = wire.NewSet(
	ProvideOrgStore,
	NewRepositories,
)

// ProvideOrgStore builds the store and wires mutation metrics into it.
func ProvideOrgStore(bus *event.EventBus, opts Options, m *metrics.OrgMetrics) *OrgStore {
	s := NewOrgStore(bus, opts)
	if m != nil {
		s.SetRecorder(m)
	}
	return s
}

// Repositories bundles the store views used by the services.
type Repositories struct {
	Store      *OrgStore
	Employee   IEmployeeRepository
	Role       IRoleRepository
	Team       ITeamRepository
	Permission IPermissionRepository
}

func NewRepositories(s *OrgStore) *Repositories {
	return &Repositories{
		Store:      s,
		Employee:   s,
		Role:       s,
		Team:       s,
		Permission: s,
	}
}
