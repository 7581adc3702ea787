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

// Package seed reads the organization fixture the store starts from.
package seed

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
)

// Conf is the seed section of the config.
type Conf struct {
	Path string `mapstructure:"path"`
}

// Document is a parsed fixture. Nil roles, teams or permissions are
// derived when the snapshot is built.
type Document struct {
	Employees   []model.Employee   `json:"employees"`
	Roles       []model.Role       `json:"roles,omitempty"`
	Teams       []model.Team       `json:"teams,omitempty"`
	Permissions []model.Permission `json:"permissions,omitempty"`
}

// Parse reads JSON or YAML. The input is either a list of employees or a
// document with employees, roles, teams and permissions.
func Parse(data []byte) (*Document, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	doc := &Document{}
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return doc, nil
	case raw[0] == '[':
		err = yaml.Unmarshal(raw, &doc.Employees)
	default:
		err = yaml.Unmarshal(raw, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return doc, nil
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(data)
}

// Snapshot fills in what the fixture left out.
func (d *Document) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Employees:   d.Employees,
		Roles:       d.Roles,
		Teams:       d.Teams,
		Permissions: d.Permissions,
	}
	if snap.Employees == nil {
		snap.Employees = []model.Employee{}
	}
	if snap.Roles == nil {
		snap.Roles = DefaultRoles(snap.Employees)
	}
	if snap.Teams == nil {
		snap.Teams = []model.Team{}
	}
	if snap.Permissions == nil {
		snap.Permissions = model.DefaultPermissions()
	}
	return snap
}

// Check loads the document into a scratch store.
func Check(d *Document, opts repo.Options) error {
	return repo.NewOrgStore(nil, opts).Load(d.Snapshot())
}

// Load parses path and loads it into store. An empty path loads the
// default permission catalog only.
func Load(store *repo.OrgStore, path string) (*Document, error) {
	doc := &Document{}
	if path != "" {
		var err error
		if doc, err = ParseFile(path); err != nil {
			return nil, err
		}
	}
	if err := store.Load(doc.Snapshot()); err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return doc, nil
}

type defaultRole struct {
	label       string
	description string
	badges      []string
	members     func(e model.Employee) bool
}

func inTeam(keyword string) func(e model.Employee) bool {
	return func(e model.Employee) bool {
		for _, t := range e.Teams {
			if strings.Contains(t, keyword) {
				return true
			}
		}
		return false
	}
}

var defaultRoles = []defaultRole{
	{"Engineering Lead", "Technical leadership and architecture decisions", []string{"Engineering", "Architecture", "Team Leadership"}, inTeam("Engineering")},
	{"Product Manager", "Product strategy and roadmap planning", []string{"Product Strategy", "Roadmap", "Stakeholder Management"},
		func(e model.Employee) bool { return strings.Contains(e.Role, "Product") }},
	{"Marketing Director", "Brand strategy and marketing campaigns", []string{"Marketing", "Brand Strategy", "Communications"}, inTeam("Marketing")},
	{"HR Director", "Human resources and talent management", []string{"HR", "Talent Management", "Employee Relations"}, inTeam("HR")},
	{"Security Manager", "Information security and compliance", []string{"Security", "Compliance", "Risk Management"}, inTeam("Security")},
	{"Finance Director", "Financial planning and analysis", []string{"Finance", "Analytics", "Budget Management"}, inTeam("Finance")},
	{"Design Lead", "UX/UI design leadership and design systems", []string{"Design", "UX", "UI"}, inTeam("Design")},
	{"DevOps Manager", "Infrastructure and deployment management", []string{"DevOps", "Infrastructure", "Cloud"}, inTeam("DevOps")},
}

// DefaultRoles derives the standard roles from employees. Every role is
// managed by the first employee titled "Manager", or the first employee.
func DefaultRoles(employees []model.Employee) []model.Role {
	var manager *model.ManagerRef
	for _, e := range employees {
		if e.Role == "Manager" {
			manager = &model.ManagerRef{EmployeeId: e.Id}
			break
		}
	}
	if manager == nil && len(employees) > 0 {
		manager = &model.ManagerRef{EmployeeId: employees[0].Id}
	}

	roles := make([]model.Role, 0, len(defaultRoles))
	for _, d := range defaultRoles {
		users := []string{}
		for _, e := range employees {
			if d.members(e) {
				users = append(users, e.Id)
			}
		}
		roles = append(roles, model.Role{
			Label:       d.label,
			Description: d.description,
			Badges:      append([]string{}, d.badges...),
			Manager:     manager.Clone(),
			Users:       users,
		})
	}
	return roles
}
