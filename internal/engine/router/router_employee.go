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
	"github.com/mustafaazad03/rbac-ui/pkg/http"
)

func (rt *Router) employeeRouter(r fiber.Router) {
	employeeGroup := r.Group("/employees")
	{
		employeeGroup.Get("/", rt.listEmployees)
		employeeGroup.Post("/", rt.createEmployee)

		// export
		employeeGroup.Get("/export", rt.exportEmployees)
		employeeGroup.Post("/export/sink", rt.exportEmployeesToSink)

		employeeGroup.Get("/:employeeId", rt.getEmployee)
		employeeGroup.Put("/:employeeId", rt.updateEmployee)
		employeeGroup.Delete("/:employeeId", rt.deleteEmployee)
	}
}

func (rt *Router) listEmployees(c *fiber.Ctx) error {
	result, err := rt.Services.Employee.ListEmployees(c.Query("q"), filters(c))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) getEmployee(c *fiber.Ctx) error {
	result, err := rt.Services.Employee.GetEmployee(c.Params("employeeId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) createEmployee(c *fiber.Ctx) error {
	var req model.CreateEmployeeReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Employee.CreateEmployee(&req)
	if err != nil {
		return withErr(c, err)
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) updateEmployee(c *fiber.Ctx) error {
	var req model.UpdateEmployeeReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Employee.UpdateEmployee(c.Params("employeeId"), &req)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) deleteEmployee(c *fiber.Ctx) error {
	employeeId := c.Params("employeeId")
	if err := rt.Services.Employee.DeleteEmployee(employeeId); err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.OPERATION, employeeId)
	return nil
}

// exportEmployees sends the snapshot as an attachment.
func (rt *Router) exportEmployees(c *fiber.Ctx) error {
	result, err := rt.Services.Export.Export(c.UserContext(), c.Query("format"))
	if err != nil {
		return withErr(c, err)
	}
	return http.WithRepFile(c, http.File{
		Name:        result.FileName,
		ContentType: result.ContentType,
		Revision:    result.Revision,
		Data:        result.Data,
	})
}

func (rt *Router) exportEmployeesToSink(c *fiber.Ctx) error {
	location, err := rt.Services.Export.ExportTo(c.UserContext(), c.Query("format"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, fiber.Map{"location": location})
	return nil
}
