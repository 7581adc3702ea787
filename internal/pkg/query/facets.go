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
	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

// filter categories
const (
	Status     = "status"
	Teams      = "teams"
	Type       = "type"
	Department = "department"
	Access     = "access"
	Size       = "size"
	Granted    = "granted"
)

// team size buckets
const (
	SizeSmall  = "1-5"
	SizeMedium = "6-10"
	SizeLarge  = "11+"
)

func one(s string) []string { return []string{s} }

var EmployeeFacets = Facets[model.Employee]{
	Status:     func(e model.Employee) []string { return one(e.Status) },
	Teams:      func(e model.Employee) []string { return e.Teams },
	Type:       func(e model.Employee) []string { return one(e.Type) },
	Department: func(e model.Employee) []string { return one(e.Department) },
}

func badges(r model.RoleResp) []string { return r.Badges }

// RoleFacets all match badges, which carry department, access level and
// status alike.
var RoleFacets = Facets[model.RoleResp]{
	Department: badges,
	Access:     badges,
	Status:     badges,
}

var TeamFacets = Facets[model.TeamResp]{
	Size: func(t model.TeamResp) []string { return one(SizeBucket(len(t.Members))) },
	Department: func(t model.TeamResp) []string {
		out := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			out = append(out, m.Department)
		}
		return out
	},
}

var PermissionFacets = Facets[model.Permission]{
	Granted: func(p model.Permission) []string { return one(p.Granted()) },
}

// SizeBucket names the size bucket of a team with n members. Empty teams
// fall in no bucket.
func SizeBucket(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= 5:
		return SizeSmall
	case n <= 10:
		return SizeMedium
	default:
		return SizeLarge
	}
}

func Employees(items []model.Employee, term string, filters Filters) ([]model.Employee, error) {
	return Apply(items, term, filters, EmployeeFacets, model.Employee.AllValues)
}

func Roles(items []model.RoleResp, term string, filters Filters) ([]model.RoleResp, error) {
	return Apply(items, term, filters, RoleFacets, model.RoleResp.AllValues)
}

func TeamList(items []model.TeamResp, term string, filters Filters) ([]model.TeamResp, error) {
	return Apply(items, term, filters, TeamFacets, model.TeamResp.AllValues)
}

func Permissions(items []model.Permission, term string, filters Filters) ([]model.Permission, error) {
	return Apply(items, term, filters, PermissionFacets, model.Permission.AllValues)
}
