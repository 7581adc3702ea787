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

package service

import (
	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
)

// ObserveStore keeps the revision and entity gauges current. The returned
// function stops observing.
func ObserveStore(bus *event.EventBus, store *repo.OrgStore, m *metrics.OrgMetrics) func() {
	setCounts(m, store.Revision(), store.Counts())
	return bus.RegisterHandler(model.ChangeEvent, event.HandlerFunc(func(e event.Event) {
		if ch, ok := e.(model.Change); ok {
			setCounts(m, ch.Revision, ch.Counts)
		}
	}))
}

func setCounts(m *metrics.OrgMetrics, rev uint64, c model.Counts) {
	m.SetRevision(rev)
	m.SetEntities(model.KindEmployee, c.Employees)
	m.SetEntities(model.KindRole, c.Roles)
	m.SetEntities(model.KindTeam, c.Teams)
	m.SetEntities(model.KindPermission, c.Permissions)
}
