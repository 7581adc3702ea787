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
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
)

type selectReq struct {
	Ids []string `json:"ids"`
}

func (rt *Router) dialogRouter(r fiber.Router) {
	dialogGroup := r.Group("/dialogs")
	{
		dialogGroup.Post("/", rt.openDialog)
		dialogGroup.Get("/:dialogId", rt.getDialog)
		dialogGroup.Delete("/:dialogId", rt.closeDialog)
		dialogGroup.Put("/:dialogId/values", rt.setDialogValues)
		dialogGroup.Get("/:dialogId/candidates", rt.dialogCandidates)
		dialogGroup.Post("/:dialogId/toggle/:candidateId", rt.toggleDialog)
		dialogGroup.Post("/:dialogId/select", rt.selectDialog)
		dialogGroup.Post("/:dialogId/confirm", rt.confirmDialog)
	}
}

func (rt *Router) openDialog(c *fiber.Ctx) error {
	var req service.OpenDialogReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Dialog.Open(&req)
	if err != nil {
		return withErr(c, err)
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) getDialog(c *fiber.Ctx) error {
	result, err := rt.Services.Dialog.Get(c.Params("dialogId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) closeDialog(c *fiber.Ctx) error {
	dialogId := c.Params("dialogId")
	if err := rt.Services.Dialog.Close(dialogId); err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.OPERATION, dialogId)
	return nil
}

func (rt *Router) setDialogValues(c *fiber.Ctx) error {
	values := map[string]string{}
	if err := c.BodyParser(&values); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Dialog.SetValues(c.Params("dialogId"), values)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) dialogCandidates(c *fiber.Ctx) error {
	result, err := rt.Services.Dialog.Candidates(c.Params("dialogId"), c.Query("q"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) toggleDialog(c *fiber.Ctx) error {
	result, err := rt.Services.Dialog.Toggle(c.Params("dialogId"), c.Params("candidateId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

// selectDialog replaces the selection; an empty list clears it.
func (rt *Router) selectDialog(c *fiber.Ctx) error {
	var req selectReq
	if err := c.BodyParser(&req); err != nil {
		return withParseErr(c, err)
	}
	result, err := rt.Services.Dialog.SelectAll(c.Params("dialogId"), req.Ids)
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}

func (rt *Router) confirmDialog(c *fiber.Ctx) error {
	result, err := rt.Services.Dialog.Confirm(c.Params("dialogId"))
	if err != nil {
		return withErr(c, err)
	}
	c.Locals(constant.DETAIL, result)
	return nil
}
