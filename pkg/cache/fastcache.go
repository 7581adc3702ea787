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
	"sync/atomic"

	"github.com/VictoriaMetrics/fastcache"
)

// FastCacheConfig holds fastcache configuration
type FastCacheConfig struct {
	MaxBytes int // default 16MB
}

// FastCache is an in-process byte cache. Values of any size are stored,
// entries are evicted when MaxBytes is exceeded.
type FastCache struct {
	cache  *fastcache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewFastCache creates a new FastCache instance
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}

	return &FastCache{
		cache: fastcache.New(maxBytes),
	}
}

// Get returns a copy of the value for key.
func (fc *FastCache) Get(key string) ([]byte, bool) {
	value := fc.cache.GetBig(nil, []byte(key))
	if len(value) == 0 {
		fc.misses.Add(1)
		return nil, false
	}
	fc.hits.Add(1)
	return value, true
}

// Set stores value under key. Empty values are not cached.
func (fc *FastCache) Set(key string, value []byte) {
	if len(value) == 0 {
		return
	}
	fc.cache.SetBig([]byte(key), value)
}

// Del removes key.
func (fc *FastCache) Del(key string) {
	fc.cache.Del([]byte(key))
}

// Reset drops every entry.
func (fc *FastCache) Reset() {
	fc.cache.Reset()
}

// Stats returns hit and miss counts since creation.
func (fc *FastCache) Stats() (hits, misses uint64) {
	return fc.hits.Load(), fc.misses.Load()
}
