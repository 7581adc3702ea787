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
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/form"
	"github.com/mustafaazad03/rbac-ui/pkg/cache"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/storage"
)

// Services groups every service the router uses.
type Services struct {
	Employee   *EmployeeService
	Role       *RoleService
	Team       *TeamService
	Permission *PermissionService
	Export     *ExportService
	Dialog     *DialogService
	Changes    *ChangeFeed
	Store      *repo.OrgStore
}

// Sink is the optional export destination.
type Sink struct {
	Name     string
	Provider storage.StorageProvider
}

func NewServices(
	bus *event.EventBus,
	repos *repo.Repositories,
	exportCache *cache.FastCache,
	sink Sink,
	exportConf ExportConf,
	rules []form.RuleConf,
	orgMetrics *metrics.OrgMetrics,
) *Services {
	employeeService := NewEmployeeService(repos.Employee)
	roleService := NewRoleService(repos.Role)
	teamService := NewTeamService(repos.Team)
	permissionService := NewPermissionService(repos.Permission)

	return &Services{
		Employee:   employeeService,
		Role:       roleService,
		Team:       teamService,
		Permission: permissionService,
		Export:     NewExportService(repos.Store, exportCache, sink.Provider, sink.Name, exportConf, orgMetrics),
		Dialog:     NewDialogService(employeeService, roleService, teamService, permissionService, rules),
		Changes:    NewChangeFeed(bus, defaultFeedBuffer),
		Store:      repos.Store,
	}
}
