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

func (rt *Router) teamRouter(r fiber.Router) {
	teamGroup := r.Group("/teams")
	{
		teamGroup.Get("/", rt.listTeams)
		teamGroup.Post("/", rt.createTeam)
		teamGroup.Get("/:teamId", rt.getTeam)
		teamGroup.Put("/:teamId", rt.updateTeam)
		teamGroup.Delete("/:teamId", rt.deleteTeam)

		// members
		teamGroup.Post("/:teamId/members", rt.addTeamMembers)
		teamGroup.Delete("/:teamId/members/:employeeId", rt.removeTeamMember)
	}
}

func (rt *Router) listTeams(c *fiber.Ctx) error {
	result, err := rt.Services.Team.ListTeams(c.Query("q"), filters(c))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) getTeam(c *fiber.Ctx) error {
	result, err := rt.Services.Team.GetTeam(c.Params("teamId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) createTeam(c *fiber.Ctx) error {
	var req model.CreateTeamReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Team.CreateTeam(&req)
	if err != nil {
		return withErr(c, err)
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) updateTeam(c *fiber.Ctx) error {
	var req model.UpdateTeamReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Team.UpdateTeam(c.Params("teamId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) deleteTeam(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if err := rt.Services.Team.DeleteTeam(teamId); err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.OPERATION, teamId)
	return nil
}

func (rt *Router) addTeamMembers(c *fiber.Ctx) error {
	var req model.AssignUsersReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Team.AssignMembers(c.Params("teamId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) removeTeamMember(c *fiber.Ctx) error {
	result, err := rt.Services.Team.RemoveMember(c.Params("teamId"), c.Params("employeeId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}
