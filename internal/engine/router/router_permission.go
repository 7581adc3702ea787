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
)

func (rt *Router) permissionRouter(r fiber.Router) {
	r.Get("/permissions", rt.listPermissions)
	r.Get("/forms/:name", rt.getForm)
	r.Get("/status", func(c *fiber.Ctx) error {
		c.Locals(constant.DETAIL, rt.status())
		return nil
	})
}

func (rt *Router) listPermissions(c *fiber.Ctx) error {
	result, err := rt.Services.Permission.ListPermissions(c.Query("q"), filters(c))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

// getForm describes the fields of a named form.
func (rt *Router) getForm(c *fiber.Ctx) error {
	result, err := rt.Services.Dialog.Form(c.Params("name"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

// status reports the store revision and collection sizes.
func (rt *Router) status() fiber.Map {
	return fiber.Map{
		"revision":    rt.Services.Store.Revision(),
		"counts":      rt.Services.Store.Counts(),
		"dialogs":     rt.Services.Dialog.OpenSessions(),
		"subscribers": rt.Services.Changes.Subscribers(),
	}
}
