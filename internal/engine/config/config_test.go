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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
)

const sample = `
[log]
output = "stdout"
level = "DEBUG"

[http]
port = 9090
contextPath = "/api"

[store]
managerMode = "snapshot"

[export]
format = "xlsx"
schedule = "@every 1h"

[[form.rules]]
form = "employee"
field = "email"
expr = 'value endsWith "@example.com"'
message = "Use a company address"
`

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	conf, err := LoadConfigFile(writeConf(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, conf.Http.Port)
	assert.Equal(t, "/api", conf.Http.ContextPath)
	assert.Equal(t, "snapshot", conf.Store.ManagerMode)
	require.Len(t, conf.Form.Rules, 1)
	assert.Equal(t, "Use a company address", conf.Form.Rules[0].Message)

	assert.Equal(t, model.ManagerSnapshot, ProvideStoreOptions(&conf).ManagerMode)
	assert.Equal(t, service.FormatXLSX, ProvideExportConfig(&conf).Format)
	assert.Equal(t, "/api", ProvideHttpConfig(&conf).ContextPath)

	sink, err := ProvideSink(&conf)
	require.NoError(t, err)
	assert.Nil(t, sink.Provider)
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("RBAC_HTTP_PORT", "7070")
	conf, err := LoadConfigFile(writeConf(t, sample))
	require.NoError(t, err)
	assert.Equal(t, 7070, conf.Http.Port)
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	_, err := LoadConfigFile(writeConf(t, "[store]\nmanagerMode = \"frozen\"\n"))
	assert.Error(t, err)

	_, err = LoadConfigFile(writeConf(t, "[[form.rules]]\nform = \"employee\"\nfield = \"email\"\nexpr = \"value +\"\n"))
	assert.Error(t, err)

	_, err = LoadConfigFile(writeConf(t, "[export]\ntimezone = \"Mars/Olympus\"\n"))
	assert.Error(t, err)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestProvideSink_Local(t *testing.T) {
	conf := AppConfig{}
	conf.Storage.Provider = "local"
	conf.Storage.BasePath = t.TempDir()
	sink, err := ProvideSink(&conf)
	require.NoError(t, err)
	assert.Equal(t, "local", sink.Name)
	assert.NotNil(t, sink.Provider)
}
