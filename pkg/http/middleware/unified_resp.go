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

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mustafaazad03/rbac-ui/internal/engine/constant"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
)

// UnifiedResponseMiddleware wraps DETAIL / OPERATION locals of successful
// handlers in the {code,msg,detail} envelope. Handlers that wrote their own
// body or status are left untouched.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}

		if status >= fiber.StatusOK && status < fiber.StatusMultipleChoices {
			if detail := c.Locals(constant.DETAIL); detail != nil {
				return http.WithRepJSON(c, detail)
			}

			if c.Locals(constant.OPERATION) != nil {
				return http.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
