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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/mustafaazad03/rbac-ui/pkg/http/middleware"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/shutdown"
	"github.com/mustafaazad03/rbac-ui/pkg/version"
)

type Router struct {
	Http     *http.Http
	Services *service.Services
	Metrics  *metrics.Server
	Shutdown *shutdown.Manager
}

func NewRouter(httpConf *http.Http, services *service.Services, metricsServer *metrics.Server, shutdownMgr *shutdown.Manager) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Metrics:  metricsServer,
		Shutdown: shutdownMgr,
	}
}

func (rt *Router) Router() *fiber.App {
	rt.Http.SetDefaults()

	app := fiber.New(fiber.Config{
		AppName:               "rbac-ui",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit,
		Immutable:             true,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.CorsMiddleware(),
		middleware.TraceMiddleware(),
		middleware.UnifiedResponseMiddleware(),
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	rt.routerGroup(app.Group(rt.Http.ContextPath))

	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, fiber.StatusNotFound, http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	rt.employeeRouter(r)
	rt.roleRouter(r)
	rt.teamRouter(r)
	rt.permissionRouter(r)
	rt.dialogRouter(r)
	rt.wsRouter(r)
}
