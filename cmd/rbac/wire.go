//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/mustafaazad03/rbac-ui/internal/engine/bootstrap"
	"github.com/mustafaazad03/rbac-ui/internal/engine/config"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/router"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// config
		config.ProviderSet,
		log.ProviderSet,
		event.ProviderSet,
		metrics.ProviderSet,
		// store
		repo.ProviderSet,
		service.ProviderSet,
		router.ProviderSet,
		bootstrap.ProviderSet,
	))
}
