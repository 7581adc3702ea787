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

package query

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staff() []model.Employee {
	return []model.Employee{
		{Id: "emp001", Name: "John Doe", Email: "john@example.com", Department: "Engineering", Status: model.StatusActive, Type: model.TypeFullTime, Teams: []string{"Frontend", "Platform"}},
		{Id: "emp002", Name: "Jane Roe", Email: "jane@example.com", Department: "Design", Status: model.StatusInactive, Type: model.TypeContract, Teams: []string{"Backend"}},
		{Id: "emp003", Name: "Max Poe", Email: "max@corp.io", Department: "Design", Status: model.StatusActive, Type: model.TypePartTime},
	}
}

func ids(items []model.Employee) []string {
	out := []string{}
	for _, e := range items {
		out = append(out, e.Id)
	}
	return out
}

func TestSearchSubset(t *testing.T) {
	items := staff()
	for _, term := range []string{"", "e", "DOE", "example", "design", "platform", "none"} {
		got := Search(items, term, model.Employee.AllValues)
		assert.LessOrEqual(t, len(got), len(items))
		for _, e := range got {
			found := false
			for _, v := range e.AllValues() {
				if strings.Contains(strings.ToLower(v), strings.ToLower(term)) {
					found = true
				}
			}
			assert.True(t, found, fmt.Sprintf("%s should contain %q", e.Id, term))
		}
	}
	assert.Equal(t, items, Search(items, "  ", model.Employee.AllValues))
}

func TestEmployeeFilters(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		filters Filters
		want    []string
	}{
		{"no filters", "", nil, []string{"emp001", "emp002", "emp003"}},
		{"empty set accepts all", "", Filters{Status: {}}, []string{"emp001", "emp002", "emp003"}},
		{"or within category", "", Filters{Type: {model.TypeContract, model.TypePartTime}}, []string{"emp002", "emp003"}},
		{"and across categories", "", Filters{Status: {model.StatusActive}, Department: {"Design"}}, []string{"emp003"}},
		{"any team element", "", Filters{Teams: {"Platform"}}, []string{"emp001"}},
		{"filter and search", "corp", Filters{Department: {"Design"}}, []string{"emp003"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Employees(staff(), tt.term, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	_, err := Employees(staff(), "", Filters{"salary": {"high"}})
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestRoleFilters(t *testing.T) {
	roles := []model.RoleResp{
		{Id: "r1", Label: "Engineering Lead", Badges: []string{"Engineering", "Full Access", "Active"}},
		{Id: "r2", Label: "QA Lead", Badges: []string{"QA", "Limited Access", "Active"}},
	}
	got, err := Roles(roles, "", Filters{Access: {"Full Access"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].Id)

	got, err = Roles(roles, "qa", Filters{Status: {"Active"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].Id)
}

func TestTeamFilters(t *testing.T) {
	members := func(n int, dept string) []model.Employee {
		out := make([]model.Employee, n)
		for i := range out {
			out[i] = model.Employee{Id: fmt.Sprint(i), Name: fmt.Sprintf("Member %d", i), Department: dept}
		}
		return out
	}
	teams := []model.TeamResp{
		{Id: "t1", Name: "Docs", Members: members(3, "Support")},
		{Id: "t2", Name: "Core", Members: members(8, "Engineering")},
		{Id: "t3", Name: "Sales", Members: members(12, "Sales")},
		{Id: "t4", Name: "Empty"},
	}
	got, err := TeamList(teams, "", Filters{Size: {SizeMedium, SizeLarge}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].Id)

	got, err = TeamList(teams, "member 11", Filters{Department: {"Sales"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].Id)
}

func TestSizeBucket(t *testing.T) {
	assert.Equal(t, "", SizeBucket(0))
	assert.Equal(t, SizeSmall, SizeBucket(1))
	assert.Equal(t, SizeSmall, SizeBucket(5))
	assert.Equal(t, SizeMedium, SizeBucket(6))
	assert.Equal(t, SizeMedium, SizeBucket(10))
	assert.Equal(t, SizeLarge, SizeBucket(11))
}

func TestPermissionFilters(t *testing.T) {
	got, err := Permissions(model.DefaultPermissions(), "manage", Filters{Granted: {"true"}})
	require.NoError(t, err)
	names := []string{}
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Manage Roles", "Manage Settings"}, names)
}
