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
	"fmt"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/query"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

type RoleService struct {
	roleRepo repo.IRoleRepository
}

func NewRoleService(roleRepo repo.IRoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

func (s *RoleService) ListRoles(q string, filters query.Filters) ([]model.RoleResp, error) {
	return query.Roles(s.roleRepo.ListRoles(), q, filters)
}

func (s *RoleService) GetRole(roleId string) (*model.RoleResp, error) {
	r, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoleService) GetRoleByLabel(label string) (*model.RoleResp, error) {
	r, err := s.roleRepo.FindRoleByLabel(label)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RoleLabels lists the labels of every role in store order.
func (s *RoleService) RoleLabels() []string {
	roles := s.roleRepo.ListRoles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.Label
	}
	return out
}

func (s *RoleService) CreateRole(req *model.CreateRoleReq) (*model.RoleResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	role := model.Role{
		Label:       req.Label,
		Description: req.Description,
		Badges:      req.Badges,
		Users:       req.Users,
		Permissions: req.Permissions,
	}
	if req.ManagerId != "" {
		role.Manager = &model.ManagerRef{EmployeeId: req.ManagerId, Mode: req.ManagerMode}
	}

	r, err := s.roleRepo.AddRole(role)
	if err != nil {
		log.Errorw("create role failed", "label", req.Label, "error", err)
		return nil, fmt.Errorf("create role failed: %w", err)
	}
	log.Infow("success create role", "roleId", r.Id, "label", r.Label)
	return &r, nil
}

func (s *RoleService) UpdateRole(roleId string, req *model.UpdateRoleReq) (*model.RoleResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	r, err := s.roleRepo.UpdateRole(roleId, req)
	if err != nil {
		log.Errorw("update role failed", "roleId", roleId, "error", err)
		return nil, fmt.Errorf("update role failed: %w", err)
	}
	log.Infow("success update role", "roleId", roleId)
	return &r, nil
}

func (s *RoleService) DeleteRole(roleId string) error {
	if err := s.roleRepo.RemoveRole(roleId); err != nil {
		log.Errorw("delete role failed", "roleId", roleId, "error", err)
		return fmt.Errorf("delete role failed: %w", err)
	}
	log.Infow("success delete role", "roleId", roleId)
	return nil
}

func (s *RoleService) AssignUsers(roleId string, req *model.AssignUsersReq) (*model.RoleResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	r, err := s.roleRepo.AssignUsersToRole(roleId, req.EmployeeIds)
	if err != nil {
		log.Errorw("assign users to role failed", "roleId", roleId, "employeeIds", req.EmployeeIds, "error", err)
		return nil, fmt.Errorf("assign users to role failed: %w", err)
	}
	log.Infow("success assign users to role", "roleId", roleId, "users", len(r.Users))
	return &r, nil
}

func (s *RoleService) UnassignUser(roleId, employeeId string) (*model.RoleResp, error) {
	r, err := s.roleRepo.UnassignUserFromRole(roleId, employeeId)
	if err != nil {
		log.Errorw("unassign user from role failed", "roleId", roleId, "employeeId", employeeId, "error", err)
		return nil, fmt.Errorf("unassign user from role failed: %w", err)
	}
	return &r, nil
}

func (s *RoleService) UpdatePermissions(roleId string, req *model.UpdatePermissionsReq) (*model.RoleResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	r, err := s.roleRepo.UpdateRolePermissions(roleId, req.Permissions)
	if err != nil {
		log.Errorw("update role permissions failed", "roleId", roleId, "error", err)
		return nil, fmt.Errorf("update role permissions failed: %w", err)
	}
	log.Infow("success update role permissions", "roleId", roleId, "permissions", len(r.Permissions))
	return &r, nil
}

func (s *RoleService) SetManager(roleId string, req *model.SetManagerReq) (*model.RoleResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	r, err := s.roleRepo.SetRoleManager(roleId, req.EmployeeId, req.Mode)
	if err != nil {
		log.Errorw("set role manager failed", "roleId", roleId, "employeeId", req.EmployeeId, "error", err)
		return nil, fmt.Errorf("set role manager failed: %w", err)
	}
	return &r, nil
}
