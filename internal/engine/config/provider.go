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

package config

import (
	"context"

	"github.com/google/wire"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/seed"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/form"
	"github.com/mustafaazad03/rbac-ui/pkg/cache"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/storage"
	"github.com/mustafaazad03/rbac-ui/pkg/trace"
)

var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideTraceConfig,
	ProvideMetricsConfig,
	ProvideSeedConfig,
	ProvideStoreOptions,
	ProvideFormRules,
	ProvideExportConfig,
	ProvideCacheConfig,
	ProvideExportCache,
	ProvideSink,
)

func ProvideConf(configPath string) *AppConfig {
	conf := NewConf(configPath)
	return &conf
}

func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

func ProvideTraceConfig(appConf *AppConfig) trace.TraceConfig {
	traceConfig := appConf.Trace
	traceConfig.SetDefaults()
	return traceConfig
}

func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

func ProvideSeedConfig(appConf *AppConfig) seed.Conf {
	return appConf.Seed
}

// ProvideStoreOptions maps the store section onto repo options. The mode
// was checked by Validate.
func ProvideStoreOptions(appConf *AppConfig) repo.Options {
	mode, err := model.ParseManagerMode(appConf.Store.ManagerMode)
	if err != nil {
		mode = model.ManagerLive
	}
	return repo.Options{ManagerMode: mode}
}

func ProvideFormRules(appConf *AppConfig) []form.RuleConf {
	return appConf.Form.Rules
}

func ProvideExportConfig(appConf *AppConfig) service.ExportConf {
	exportConfig := appConf.Export
	exportConfig.SetDefaults()
	return exportConfig
}

func ProvideCacheConfig(appConf *AppConfig) cache.FastCacheConfig {
	cacheConfig := appConf.Cache
	if cacheConfig.MaxBytes <= 0 {
		cacheConfig.MaxBytes = appConf.Export.CacheBytes
	}
	return cacheConfig
}

func ProvideExportCache(conf cache.FastCacheConfig) *cache.FastCache {
	return cache.NewFastCache(conf)
}

// ProvideSink builds the export sink named by storage.provider. An empty
// provider leaves exports download-only.
func ProvideSink(appConf *AppConfig) (service.Sink, error) {
	conf := appConf.Storage
	if conf.Provider == "" {
		return service.Sink{}, nil
	}
	if conf.Provider == storage.StorageRedis && conf.Redis.Address == "" {
		conf.Redis = appConf.Redis
	}
	provider, err := storage.NewStorage(context.Background(), &conf)
	if err != nil {
		return service.Sink{}, err
	}
	log.Infow("export sink configured", "provider", conf.Provider)
	return service.Sink{Name: conf.Provider, Provider: provider}, nil
}
