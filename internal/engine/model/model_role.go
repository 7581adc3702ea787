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

import "fmt"

// ManagerMode selects how a role's manager is resolved.
type ManagerMode string

const (
	// ManagerLive follows the current employee record and is cleared when
	// the employee is removed.
	ManagerLive ManagerMode = "live"
	// ManagerSnapshot keeps a copy taken when the manager was assigned.
	ManagerSnapshot ManagerMode = "snapshot"
)

func ParseManagerMode(s string) (ManagerMode, error) {
	switch ManagerMode(s) {
	case ManagerLive, ManagerSnapshot:
		return ManagerMode(s), nil
	default:
		return "", fmt.Errorf("unknown manager mode %q", s)
	}
}

// ManagerRef points a role at its manager.
type ManagerRef struct {
	EmployeeId string      `json:"employeeId"`
	Mode       ManagerMode `json:"mode"`
	Snapshot   *Employee   `json:"snapshot,omitempty"` // set in snapshot mode
}

func (m *ManagerRef) Clone() *ManagerRef {
	if m == nil {
		return nil
	}
	cp := *m
	if m.Snapshot != nil {
		s := m.Snapshot.Clone()
		cp.Snapshot = &s
	}
	return &cp
}

// Role groups employees under a label with a set of permissions. Users
// holds employee ids in assignment order.
type Role struct {
	Id          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Badges      []string     `json:"badges"`
	Manager     *ManagerRef  `json:"manager,omitempty"`
	Users       []string     `json:"users"`
	Permissions []Permission `json:"permissions,omitempty"`
}

func (r Role) Clone() Role {
	r.Badges = cloneStrings(r.Badges)
	r.Users = cloneStrings(r.Users)
	r.Manager = r.Manager.Clone()
	r.Permissions = ClonePermissions(r.Permissions)
	return r
}

// CreateRoleReq adds a role. Users and ManagerId must name existing employees.
type CreateRoleReq struct {
	Label       string       `json:"label" validate:"required"`
	Description string       `json:"description"`
	Badges      []string     `json:"badges"`
	ManagerId   string       `json:"managerId"`
	ManagerMode ManagerMode  `json:"managerMode" validate:"omitempty,oneof=live snapshot"`
	Users       []string     `json:"users"`
	Permissions []Permission `json:"permissions"`
}

// UpdateRoleReq is a partial update; nil fields are left unchanged.
type UpdateRoleReq struct {
	Label       *string   `json:"label" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	Badges      *[]string `json:"badges"`
}

func (r *UpdateRoleReq) Apply(role *Role) {
	if r.Label != nil {
		role.Label = *r.Label
	}
	if r.Description != nil {
		role.Description = *r.Description
	}
	if r.Badges != nil {
		role.Badges = cloneStrings(*r.Badges)
	}
}

// AssignUsersReq lists employee ids to add to a role or team.
type AssignUsersReq struct {
	EmployeeIds []string `json:"employeeIds" validate:"required,min=1"`
}

// SetManagerReq sets or clears (empty EmployeeId) a role's manager.
type SetManagerReq struct {
	EmployeeId string      `json:"employeeId"`
	Mode       ManagerMode `json:"mode" validate:"omitempty,oneof=live snapshot"`
}

// UpdatePermissionsReq replaces a role's permissions.
type UpdatePermissionsReq struct {
	Permissions []Permission `json:"permissions" validate:"dive"`
}

// RoleResp is a role with employee references resolved.
type RoleResp struct {
	Id          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Badges      []string     `json:"badges"`
	Manager     *Employee    `json:"manager,omitempty"`
	ManagerMode ManagerMode  `json:"managerMode,omitempty"`
	Users       []Employee   `json:"users"`
	Permissions []Permission `json:"permissions"`
}

func (r RoleResp) CandidateId() string {
	return r.Id
}

func (r RoleResp) SearchValues() []string {
	return append([]string{r.Label, r.Description}, r.Badges...)
}

// AllValues are the role's own scalar and tag values.
func (r RoleResp) AllValues() []string {
	return append([]string{r.Id, r.Label, r.Description}, r.Badges...)
}
