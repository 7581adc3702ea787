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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/mustafaazad03/rbac-ui/internal/engine/config"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/router"
	"github.com/mustafaazad03/rbac-ui/internal/engine/seed"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/pkg/cron"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/safe"
	"github.com/mustafaazad03/rbac-ui/pkg/shutdown"
	"github.com/mustafaazad03/rbac-ui/pkg/trace"
)

var ProviderSet = wire.NewSet(ProvideScheduler, shutdown.NewManager, NewApp)

type App struct {
	HttpApp   *fiber.App
	Http      *http.Http
	Services  *service.Services
	Store     *repo.OrgStore
	Scheduler *cron.Scheduler
	Metrics   *metrics.Server
	Shutdown  *shutdown.Manager
	AppConf   *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func ProvideScheduler(m *metrics.CronMetrics, exportConf service.ExportConf) (*cron.Scheduler, error) {
	loc, err := exportConf.Location()
	if err != nil {
		return nil, fmt.Errorf("export.timezone: %w", err)
	}
	return cron.New(cron.WithMetricsRecorder(m), cron.WithLocation(loc)), nil
}

// NewApp loads the seed into the store and wires the feeds that observe
// it. The returned cleanup releases them in reverse order.
func NewApp(
	_ *zap.Logger,
	rt *router.Router,
	bus *event.EventBus,
	store *repo.OrgStore,
	services *service.Services,
	scheduler *cron.Scheduler,
	metricsServer *metrics.Server,
	orgMetrics *metrics.OrgMetrics,
	seedConf seed.Conf,
	traceConf trace.TraceConfig,
	appConf *config.AppConfig,
) (*App, func(), error) {
	shutdownTrace, err := trace.Init(context.Background(), traceConf)
	if err != nil {
		return nil, nil, err
	}

	if _, err := seed.Load(store, seedConf.Path); err != nil {
		_ = shutdownTrace(context.Background())
		return nil, nil, err
	}
	counts := store.Counts()
	log.Infow("organization loaded",
		"seed", seedConf.Path,
		"employees", counts.Employees,
		"roles", counts.Roles,
		"teams", counts.Teams,
		"permissions", counts.Permissions,
	)

	stopObserve := service.ObserveStore(bus, store, orgMetrics)
	if err := services.Export.Schedule(scheduler); err != nil {
		stopObserve()
		_ = shutdownTrace(context.Background())
		return nil, nil, err
	}

	app := &App{
		HttpApp:   rt.Router(),
		Http:      rt.Http,
		Services:  services,
		Store:     store,
		Scheduler: scheduler,
		Metrics:   metricsServer,
		Shutdown:  rt.Shutdown,
		AppConf:   appConf,
	}

	cleanup := func() {
		scheduler.Stop()
		services.Changes.Close()
		stopObserve()
		if err := shutdownTrace(context.Background()); err != nil {
			log.Errorw("trace shutdown failed", "error", err)
		}
		_ = log.Sync()
	}
	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	return initApp(configFile)
}

// Run starts the listeners and the scheduler and blocks until a signal
// arrives, then shuts down gracefully.
func Run(app *App, cleanup func()) {
	app.Scheduler.Start()
	if err := app.Metrics.Start(); err != nil {
		log.Errorw("metrics server failed to start", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	safe.Go(func() {
		addr := app.Http.Addr()
		log.Infow("HTTP listener started",
			"address", addr,
			"contextPath", app.Http.ContextPath,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
			quit <- syscall.SIGTERM
		}
	})

	sig := <-quit
	log.Infow("shutting down gracefully", "signal", sig.String())
	app.Shutdown.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.Http.ShutdownDuration())
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}
	if err := app.Metrics.Stop(shutdownCtx); err != nil {
		log.Errorw("metrics server shutdown error", "error", err)
	}

	cleanup()
	log.Info("server shutdown complete")
}
