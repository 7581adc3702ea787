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

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := TraceConfig{SampleRatio: 5}
	cfg.SetDefaults()
	assert.Equal(t, "rbac-ui", cfg.ServiceName)
	assert.Equal(t, ExporterNone, cfg.ExporterType)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), TraceConfig{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := StartSpan(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}

func TestInit_Local(t *testing.T) {
	shutdown, err := Init(context.Background(), TraceConfig{Enabled: true, ExporterType: ExporterLocal})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, span := StartSpan(context.Background(), "recorded")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}

func TestInit_Unsupported(t *testing.T) {
	_, err := Init(context.Background(), TraceConfig{Enabled: true, ExporterType: "jaeger"})
	assert.Error(t, err)
}
