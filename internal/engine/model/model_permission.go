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

package model

import "strconv"

type Permission struct {
	Id          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsGranted   bool   `json:"isGranted"`
}

func (p Permission) CandidateId() string {
	return p.Id
}

func (p Permission) SearchValues() []string {
	return []string{p.Name, p.Description}
}

func (p Permission) AllValues() []string {
	return []string{p.Name, p.Description}
}

// Granted is the permission's granted flag as a filter value.
func (p Permission) Granted() string {
	return strconv.FormatBool(p.IsGranted)
}

func ClonePermissions(in []Permission) []Permission {
	if in == nil {
		return nil
	}
	return append([]Permission(nil), in...)
}

// DefaultPermissions is the catalog used when a seed does not provide one.
func DefaultPermissions() []Permission {
	return []Permission{
		{Id: "perm1", Name: "View Dashboard", Description: "View the dashboard and analytics", IsGranted: true},
		{Id: "perm2", Name: "Manage Users", Description: "Add, edit, and remove users", IsGranted: false},
		{Id: "perm3", Name: "Manage Roles", Description: "Create, edit, and remove roles", IsGranted: true},
		{Id: "perm4", Name: "Manage Permissions", Description: "Create, edit, and remove permissions", IsGranted: false},
		{Id: "perm5", Name: "Manage Settings", Description: "Update application settings", IsGranted: true},
	}
}
