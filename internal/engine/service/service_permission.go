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
	"github.com/mustafaazad03/rbac-ui/internal/pkg/query"
)

type PermissionService struct {
	permissionRepo repo.IPermissionRepository
}

func NewPermissionService(permissionRepo repo.IPermissionRepository) *PermissionService {
	return &PermissionService{permissionRepo: permissionRepo}
}

// ListPermissions searches the catalog by name and description.
func (s *PermissionService) ListPermissions(q string, filters query.Filters) ([]model.Permission, error) {
	return query.Permissions(s.permissionRepo.ListPermissions(), q, filters)
}
