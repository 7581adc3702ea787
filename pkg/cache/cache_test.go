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

package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastCache_GetSet(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{})

	_, ok := fc.Get("json:1")
	assert.False(t, ok)

	fc.Set("json:1", []byte(`[{"id":"emp001"}]`))
	got, ok := fc.Get("json:1")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"emp001"}]`, string(got))

	fc.Del("json:1")
	_, ok = fc.Get("json:1")
	assert.False(t, ok)

	hits, misses := fc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestFastCache_BigValue(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{MaxBytes: 32 * 1024 * 1024})
	big := bytes.Repeat([]byte("x"), 200*1024)

	fc.Set("xlsx:3", big)
	got, ok := fc.Get("xlsx:3")
	require.True(t, ok)
	assert.Equal(t, big, got)
}

func TestFastCache_EmptyAndReset(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{})
	fc.Set("empty", nil)
	_, ok := fc.Get("empty")
	assert.False(t, ok)

	fc.Set("a", []byte("1"))
	fc.Reset()
	_, ok = fc.Get("a")
	assert.False(t, ok)
}

func TestNewRedis_InvalidMode(t *testing.T) {
	_, err := NewRedis(context.Background(), Redis{Mode: "cluster"})
	assert.Error(t, err)
}

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedis(ctx, Redis{Mode: "single", Address: "127.0.0.1:1", DialTimeout: 1})
	assert.Error(t, err)
}
