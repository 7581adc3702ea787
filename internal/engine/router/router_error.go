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
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/form"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/query"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

var errorCodes = []struct {
	err    error
	status int
	code   *http.Response
}{
	{repo.ErrEmployeeNotFound, fiber.StatusNotFound, http.EmployeeNotExist},
	{repo.ErrRoleNotFound, fiber.StatusNotFound, http.RoleNotExist},
	{repo.ErrTeamNotFound, fiber.StatusNotFound, http.TeamNotExist},
	{service.ErrDialogNotFound, fiber.StatusNotFound, http.DialogNotExist},
	{service.ErrFormNotFound, fiber.StatusNotFound, http.FormNotExist},
	{repo.ErrDuplicateEmail, fiber.StatusConflict, http.EmailAlreadyExist},
	{repo.ErrDuplicateLabel, fiber.StatusConflict, http.LabelAlreadyExist},
	{repo.ErrDuplicateID, fiber.StatusConflict, http.IdAlreadyExist},
	{repo.ErrInvalidArgument, fiber.StatusBadRequest, http.InvalidArgument},
	{query.ErrUnknownFilter, fiber.StatusBadRequest, http.BadRequest},
	{form.ErrClosed, fiber.StatusBadRequest, http.BadRequest},
	{form.ErrUnknownField, fiber.StatusBadRequest, http.BadRequest},
	{form.ErrUnknownCandidate, fiber.StatusBadRequest, http.BadRequest},
	{form.ErrWrongMode, fiber.StatusBadRequest, http.BadRequest},
	{service.ErrUnsupportedFormat, fiber.StatusBadRequest, http.UnsupportedFormat},
	{service.ErrSinkNotConfigured, fiber.StatusBadRequest, http.SinkNotConfigured},
}

// withErr writes the error body matching err.
func withErr(c *fiber.Ctx, err error) error {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return http.WithRepErrMsg(c, fiber.StatusUnprocessableEntity, http.ValidationFailed.Code, verr.Fields, c.Path())
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return http.WithRepErrMsg(c, ec.status, ec.code.Code, err.Error(), c.Path())
		}
	}
	log.Ctx(c.UserContext()).Errorw("request failed", "path", c.Path(), "error", err)
	return http.WithRepErrMsg(c, fiber.StatusInternalServerError, http.Failed.Code, http.Failed.Msg, c.Path())
}

func withParseErr(c *fiber.Ctx, err error) error {
	log.Ctx(c.UserContext()).Debugw("parse request body failed", "path", c.Path(), "error", err)
	return http.WithRepErrMsg(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
}

// reserved query parameters that are not filters
var reservedParams = map[string]bool{"q": true, "format": true}

// filters collects repeated query parameters into filter sets.
func filters(c *fiber.Ctx) query.Filters {
	out := query.Filters{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if reservedParams[k] {
			return
		}
		if v := string(value); v != "" {
			out[k] = append(out[k], v)
		} else if _, ok := out[k]; !ok {
			out[k] = []string{}
		}
	})
	return out
}
