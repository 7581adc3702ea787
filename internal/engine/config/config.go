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
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
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

// EnvPrefix prefixes environment overrides, e.g. RBAC_HTTP_PORT.
const EnvPrefix = "RBAC"

type StoreConfig struct {
	// ManagerMode is the default manager mode of new roles: live or snapshot.
	ManagerMode string
}

type FormConfig struct {
	Rules []form.RuleConf
}

type AppConfig struct {
	Log     log.Conf
	Http    http.Http
	Trace   trace.TraceConfig
	Metrics metrics.MetricsConfig
	Seed    seed.Conf
	Store   StoreConfig
	Form    FormConfig
	Export  service.ExportConf
	Storage storage.Storage
	Redis   cache.Redis
	Cache   cache.FastCacheConfig
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {
	var conf AppConfig

	config := viper.New()
	config.SetConfigFile(confDir)
	config.SetEnvPrefix(EnvPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	if err := config.ReadInConfig(); err != nil {
		return conf, fmt.Errorf("failed to read configuration file: %w", err)
	}
	bindEnv(config)

	if err := config.Unmarshal(&conf); err != nil {
		return conf, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "path", e.Name)
		var next AppConfig
		if err := config.Unmarshal(&next); err != nil {
			log.Errorw("failed to unmarshal configuration file", "path", e.Name, "error", err)
			return
		}
		if next.Log.Level != "" {
			prev := log.GetLevel()
			log.SetLevel(next.Log.Level)
			if cur := log.GetLevel(); cur != prev {
				log.Infow("log level changed", "from", prev.String(), "to", cur.String())
			}
		}
	})
	log.Infow("config file loaded",
		"path", confDir,
	)

	return conf, nil
}

// bindEnv registers every key of the file so AutomaticEnv overrides are
// seen by Unmarshal.
func bindEnv(config *viper.Viper) {
	for _, key := range config.AllKeys() {
		_ = config.BindEnv(key)
	}
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if c.Store.ManagerMode != "" {
		if _, err := model.ParseManagerMode(c.Store.ManagerMode); err != nil {
			return fmt.Errorf("store.managerMode: %w", err)
		}
	}
	if err := form.CheckRules(c.Form.Rules); err != nil {
		return fmt.Errorf("form.rules: %w", err)
	}
	if _, err := c.Export.Location(); err != nil {
		return fmt.Errorf("export.timezone: %w", err)
	}
	return nil
}
