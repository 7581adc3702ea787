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
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mustafaazad03/rbac-ui/internal/engine/constant"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddleware_WithExistingRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		assert.Equal(t, "existing-request-id-12345", c.Locals(constant.REQUEST_ID))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "existing-request-id-12345")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "existing-request-id-12345", resp.Header.Get("X-Request-Id"))
}

func TestRequestMiddleware_WithoutRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/test", nil))
	require.NoError(t, err)

	_, err = uuid.Parse(resp.Header.Get("X-Request-Id"))
	assert.NoError(t, err, "X-Request-Id should be a valid UUID")
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(constant.DETAIL, map[string]string{"id": "emp001"})
		return nil
	})
	app.Delete("/op", func(c *fiber.Ctx) error {
		c.Locals(constant.OPERATION, "")
		return nil
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, fiber.StatusNotFound, http.NotFound.Code, http.NotFound.Msg, c.Path())
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "detail", method: nethttp.MethodGet, path: "/detail", wantStatus: 200,
			wantBody: `{"code":200,"detail":{"id":"emp001"},"msg":"Request Success"}`},
		{name: "operation", method: nethttp.MethodDelete, path: "/op", wantStatus: 200,
			wantBody: `{"code":200,"msg":"Request Success"}`},
		{name: "error passes through", method: nethttp.MethodGet, path: "/missing", wantStatus: 404,
			wantBody: `{"code":4004,"errMsg":"Not found","path":"/missing"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestExceptionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("something broke")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body http.ResponseErr
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.InternalError.Code, body.ErrCode)
	assert.Equal(t, "something broke", body.ErrMsg)
}

func TestTraceMiddleware_SetsUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware(), TraceMiddleware())
	app.Get("/employees/:id", func(c *fiber.Ctx) error {
		assert.NotNil(t, c.UserContext())
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/employees/emp001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAccessLogMiddleware_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(AccessLogMiddleware(&http.Http{AccessLog: false}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
