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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mustafaazad03/rbac-ui/internal/engine/constant"
	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

func (rt *Router) roleRouter(r fiber.Router) {
	roleGroup := r.Group("/roles")
	{
		roleGroup.Get("/", rt.listRoles)
		roleGroup.Post("/", rt.createRole)
		roleGroup.Get("/labels", rt.roleLabels)
		roleGroup.Get("/by-label/:label", rt.getRoleByLabel)
		roleGroup.Get("/:roleId", rt.getRole)
		roleGroup.Put("/:roleId", rt.updateRole)
		roleGroup.Delete("/:roleId", rt.deleteRole)

		// membership
		roleGroup.Post("/:roleId/users", rt.assignRoleUsers)
		roleGroup.Delete("/:roleId/users/:employeeId", rt.unassignRoleUser)

		roleGroup.Put("/:roleId/permissions", rt.updateRolePermissions)
		roleGroup.Put("/:roleId/manager", rt.setRoleManager)
	}
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	result, err := rt.Services.Role.ListRoles(c.Query("q"), filters(c))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) roleLabels(c *fiber.Ctx) error {
	c.Locals(constant.DETAIL, rt.Services.Role.RoleLabels())
	return nil
}

func (rt *Router) getRoleByLabel(c *fiber.Ctx) error {
	result, err := rt.Services.Role.GetRoleByLabel(c.Params("label"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) getRole(c *fiber.Ctx) error {
	result, err := rt.Services.Role.GetRole(c.Params("roleId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) createRole(c *fiber.Ctx) error {
	var req model.CreateRoleReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Role.CreateRole(&req)
	if err != nil {
		return withErr(c, err)
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	var req model.UpdateRoleReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Role.UpdateRole(c.Params("roleId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	roleId := c.Params("roleId")
	if err := rt.Services.Role.DeleteRole(roleId); err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.OPERATION, roleId)
	return nil
}

func (rt *Router) assignRoleUsers(c *fiber.Ctx) error {
	var req model.AssignUsersReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Role.AssignUsers(c.Params("roleId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) unassignRoleUser(c *fiber.Ctx) error {
	result, err := rt.Services.Role.UnassignUser(c.Params("roleId"), c.Params("employeeId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) updateRolePermissions(c *fiber.Ctx) error {
	var req model.UpdatePermissionsReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Role.UpdatePermissions(c.Params("roleId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) setRoleManager(c *fiber.Ctx) error {
	var req model.SetManagerReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Role.SetManager(c.Params("roleId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}
