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

import "time"

// ChangeEvent is the bus event name of every committed store mutation.
const ChangeEvent = "org.change"

// operations
const (
	OpAddEmployee           = "add_employee"
	OpUpdateEmployee        = "update_employee"
	OpRemoveEmployee        = "remove_employee"
	OpAddRole               = "add_role"
	OpUpdateRole            = "update_role"
	OpRemoveRole            = "remove_role"
	OpAssignUsersToRole     = "assign_users_to_role"
	OpUnassignUserFromRole  = "unassign_user_from_role"
	OpUpdateRolePermissions = "update_role_permissions"
	OpSetRoleManager        = "set_role_manager"
	OpAddTeam               = "add_team"
	OpUpdateTeam            = "update_team"
	OpRemoveTeam            = "remove_team"
	OpAssignUsersToTeam     = "assign_users_to_team"
	OpUnassignUserFromTeam  = "unassign_user_from_team"
	OpLoad                  = "load"
)

// Change describes one committed mutation.
type Change struct {
	Revision uint64    `json:"revision"`
	Op       string    `json:"op"`
	Kind     string    `json:"kind"`
	Id       string    `json:"id,omitempty"`
	At       time.Time `json:"at"`
	// Affected lists ids of other entities touched by a cascade.
	Affected []string `json:"affected,omitempty"`
	Counts   Counts   `json:"counts"`
}

// Counts are the collection sizes after the change.
type Counts struct {
	Employees   int `json:"employees"`
	Roles       int `json:"roles"`
	Teams       int `json:"teams"`
	Permissions int `json:"permissions"`
}

func (c Change) EventName() string {
	return ChangeEvent
}

func (c Change) EventType() string {
	return c.Op
}

// Snapshot is a consistent copy of the whole organization.
type Snapshot struct {
	Revision    uint64       `json:"revision"`
	Employees   []Employee   `json:"employees"`
	Roles       []Role       `json:"roles"`
	Teams       []Team       `json:"teams"`
	Permissions []Permission `json:"permissions"`
}
