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

package storage

import (
	"context"

	"github.com/mustafaazad03/rbac-ui/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps objects as string keys, optionally expiring.
type RedisStorage struct {
	Client redis.Cmdable
	s      *Storage
}

func newRedis(ctx context.Context, s *Storage) (*RedisStorage, error) {
	client, err := cache.NewRedis(ctx, s.Redis)
	if err != nil {
		return nil, err
	}
	return &RedisStorage{Client: client, s: s}, nil
}

func (r *RedisStorage) key(objectName string) string {
	return getFullPath(r.s.BasePath, objectName)
}

func (r *RedisStorage) PutObject(ctx context.Context, objectName string, data []byte, _ string) (string, error) {
	key := r.key(objectName)
	if err := r.Client.Set(ctx, key, data, r.s.ttl()).Err(); err != nil {
		return "", err
	}
	return "redis://" + key, nil
}

func (r *RedisStorage) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	return r.Client.Get(ctx, r.key(objectName)).Bytes()
}

func (r *RedisStorage) Delete(ctx context.Context, objectName string) error {
	return r.Client.Del(ctx, r.key(objectName)).Err()
}
