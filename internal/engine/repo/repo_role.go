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
	"slices"
	"strings"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/pkg/id"
)

type IRoleRepository interface {
	AddRole(role model.Role) (model.RoleResp, error)
	UpdateRole(roleId string, patch *model.UpdateRoleReq) (model.RoleResp, error)
	RemoveRole(roleId string) error
	AssignUsersToRole(roleId string, employeeIds []string) (model.RoleResp, error)
	UnassignUserFromRole(roleId, employeeId string) (model.RoleResp, error)
	UpdateRolePermissions(roleId string, permissions []model.Permission) (model.RoleResp, error)
	SetRoleManager(roleId, employeeId string, mode model.ManagerMode) (model.RoleResp, error)
	ListRoles() []model.RoleResp
	GetRole(roleId string) (model.RoleResp, error)
	FindRoleByLabel(label string) (model.RoleResp, error)
}

// AddRole stores role under a fresh id. Users and manager must name
// existing employees.
func (s *OrgStore) AddRole(role model.Role) (model.RoleResp, error) {
	var out model.RoleResp
	err := s.update(model.OpAddRole, model.KindRole, func(st *state, ch *model.Change) error {
		role.Id = ""
		added, err := st.addRole(role.Clone(), s.managerMode)
		if err != nil {
			return err
		}
		ch.Id = added.Id
		out = st.resolveRole(added, st.employeesById())
		return nil
	})
	return out, err
}

// addRole keeps a supplied id, which only seed loading does.
func (st *state) addRole(r model.Role, defaultMode model.ManagerMode) (model.Role, error) {
	r.Label = strings.TrimSpace(r.Label)
	if r.Label == "" {
		return r, wrapf(ErrInvalidArgument, "role label is required")
	}
	if st.labelTaken(r.Label, "") {
		return r, wrapf(ErrDuplicateLabel, "%s", r.Label)
	}
	if r.Id == "" {
		r.Id = "role_" + id.GetUlid()
	} else if st.roleIndex(r.Id) >= 0 {
		return r, wrapf(ErrDuplicateID, "role %q", r.Id)
	}
	users, err := st.checkEmployees(r.Users)
	if err != nil {
		return r, err
	}
	r.Users = users
	if r.Manager != nil {
		m, err := st.managerRef(r.Manager.EmployeeId, r.Manager.Mode, defaultMode, r.Manager.Snapshot)
		if err != nil {
			return r, err
		}
		r.Manager = m
	}
	if r.Badges == nil {
		r.Badges = []string{}
	}
	if err := checkPermissions(r.Permissions); err != nil {
		return r, err
	}
	st.roles = append(st.roles, r)
	return r, nil
}

// managerRef builds a reference to employeeId. An empty id means no
// manager. A snapshot mode reference to an unknown employee is accepted
// when a frozen copy is supplied.
func (st *state) managerRef(employeeId string, mode, defaultMode model.ManagerMode, frozen *model.Employee) (*model.ManagerRef, error) {
	if employeeId == "" {
		return nil, nil
	}
	if mode == "" {
		mode = defaultMode
	}
	if _, err := model.ParseManagerMode(string(mode)); err != nil {
		return nil, wrapf(ErrInvalidArgument, "%s", err)
	}
	ref := &model.ManagerRef{EmployeeId: employeeId, Mode: mode}
	i := st.employeeIndex(employeeId)
	if i < 0 {
		if mode == model.ManagerSnapshot && frozen != nil {
			cp := frozen.Clone()
			ref.Snapshot = &cp
			return ref, nil
		}
		return nil, wrapf(ErrEmployeeNotFound, "manager %q", employeeId)
	}
	if mode == model.ManagerSnapshot {
		cp := st.employees[i].Clone()
		ref.Snapshot = &cp
	}
	return ref, nil
}

func (s *OrgStore) UpdateRole(roleId string, patch *model.UpdateRoleReq) (model.RoleResp, error) {
	return s.mutateRole(model.OpUpdateRole, roleId, func(st *state, r *model.Role) error {
		if patch == nil {
			return nil
		}
		patch.Apply(r)
		r.Label = strings.TrimSpace(r.Label)
		if r.Label == "" {
			return wrapf(ErrInvalidArgument, "role label is required")
		}
		if st.labelTaken(r.Label, r.Id) {
			return wrapf(ErrDuplicateLabel, "%s", r.Label)
		}
		if r.Badges == nil {
			r.Badges = []string{}
		}
		return nil
	})
}

func (s *OrgStore) RemoveRole(roleId string) error {
	return s.update(model.OpRemoveRole, model.KindRole, func(st *state, ch *model.Change) error {
		i := st.roleIndex(roleId)
		if i < 0 {
			return wrapf(ErrRoleNotFound, "role %q", roleId)
		}
		st.roles = slices.Delete(st.roles, i, i+1)
		ch.Id = roleId
		return nil
	})
}

// AssignUsersToRole merges employeeIds into the role's users. Ids already
// present are skipped; any unknown id fails the whole call.
func (s *OrgStore) AssignUsersToRole(roleId string, employeeIds []string) (model.RoleResp, error) {
	return s.mutateRole(model.OpAssignUsersToRole, roleId, func(st *state, r *model.Role) error {
		ids, err := st.checkEmployees(employeeIds)
		if err != nil {
			return err
		}
		r.Users, _ = mergeIds(r.Users, ids)
		return nil
	})
}

// UnassignUserFromRole drops one user. Dropping a non-member is a no-op.
func (s *OrgStore) UnassignUserFromRole(roleId, employeeId string) (model.RoleResp, error) {
	return s.mutateRole(model.OpUnassignUserFromRole, roleId, func(st *state, r *model.Role) error {
		if st.employeeIndex(employeeId) < 0 {
			return wrapf(ErrEmployeeNotFound, "employee %q", employeeId)
		}
		r.Users, _ = removeId(r.Users, employeeId)
		return nil
	})
}

// UpdateRolePermissions replaces the role's permission list.
func (s *OrgStore) UpdateRolePermissions(roleId string, permissions []model.Permission) (model.RoleResp, error) {
	return s.mutateRole(model.OpUpdateRolePermissions, roleId, func(_ *state, r *model.Role) error {
		if err := checkPermissions(permissions); err != nil {
			return err
		}
		r.Permissions = model.ClonePermissions(permissions)
		if r.Permissions == nil {
			r.Permissions = []model.Permission{}
		}
		return nil
	})
}

// SetRoleManager points the role at employeeId, or clears the manager
// when employeeId is empty.
func (s *OrgStore) SetRoleManager(roleId, employeeId string, mode model.ManagerMode) (model.RoleResp, error) {
	return s.mutateRole(model.OpSetRoleManager, roleId, func(st *state, r *model.Role) error {
		m, err := st.managerRef(employeeId, mode, s.managerMode, nil)
		if err != nil {
			return err
		}
		r.Manager = m
		return nil
	})
}

func (s *OrgStore) mutateRole(op, roleId string, fn func(st *state, r *model.Role) error) (model.RoleResp, error) {
	var out model.RoleResp
	err := s.update(op, model.KindRole, func(st *state, ch *model.Change) error {
		i := st.roleIndex(roleId)
		if i < 0 {
			return wrapf(ErrRoleNotFound, "role %q", roleId)
		}
		if err := fn(st, &st.roles[i]); err != nil {
			return err
		}
		ch.Id = roleId
		out = st.resolveRole(st.roles[i], st.employeesById())
		return nil
	})
	return out, err
}

func (s *OrgStore) ListRoles() []model.RoleResp {
	var out []model.RoleResp
	s.view(func(st *state) {
		known := st.employeesById()
		out = make([]model.RoleResp, len(st.roles))
		for i, r := range st.roles {
			out[i] = st.resolveRole(r, known)
		}
	})
	return out
}

func (s *OrgStore) GetRole(roleId string) (model.RoleResp, error) {
	var (
		out model.RoleResp
		err error
	)
	s.view(func(st *state) {
		i := st.roleIndex(roleId)
		if i < 0 {
			err = wrapf(ErrRoleNotFound, "role %q", roleId)
			return
		}
		out = st.resolveRole(st.roles[i], st.employeesById())
	})
	return out, err
}

// FindRoleByLabel matches labels case-insensitively after trimming.
func (s *OrgStore) FindRoleByLabel(label string) (model.RoleResp, error) {
	var (
		out model.RoleResp
		err error
	)
	norm := strings.ToLower(strings.TrimSpace(label))
	s.view(func(st *state) {
		i := slices.IndexFunc(st.roles, func(r model.Role) bool {
			return strings.ToLower(r.Label) == norm
		})
		if i < 0 {
			err = wrapf(ErrRoleNotFound, "role label %q", label)
			return
		}
		out = st.resolveRole(st.roles[i], st.employeesById())
	})
	return out, err
}

func (st *state) resolveRole(r model.Role, known map[string]model.Employee) model.RoleResp {
	resp := model.RoleResp{
		Id:          r.Id,
		Label:       r.Label,
		Description: r.Description,
		Badges:      append([]string{}, r.Badges...),
		Users:       resolveEmployees(r.Users, known),
		Permissions: append([]model.Permission{}, r.Permissions...),
	}
	if m := r.Manager; m != nil {
		resp.ManagerMode = m.Mode
		switch {
		case m.Mode == model.ManagerSnapshot && m.Snapshot != nil:
			cp := m.Snapshot.Clone()
			resp.Manager = &cp
		default:
			if e, ok := known[m.EmployeeId]; ok {
				cp := e.Clone()
				resp.Manager = &cp
			}
		}
	}
	return resp
}

func resolveEmployees(ids []string, known map[string]model.Employee) []model.Employee {
	out := make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := known[id]; ok {
			out = append(out, e.Clone())
		}
	}
	return out
}
