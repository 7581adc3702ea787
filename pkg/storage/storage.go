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
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/mustafaazad03/rbac-ui/pkg/cache"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageS3    = "s3"
	StorageRedis = "redis"
)

// Storage is the sink configuration.
type Storage struct {
	Provider  string
	AccessKey string
	SecretKey string
	Endpoint  string
	Bucket    string
	Region    string
	UseTLS    bool
	BasePath  string
	// TTL of objects written to redis, in seconds. Zero keeps them.
	TTL   int
	Redis cache.Redis
}

// NewStorage creates the provider named by s.Provider.
func NewStorage(ctx context.Context, s *Storage) (StorageProvider, error) {
	switch s.Provider {
	case StorageLocal:
		return newLocal(s)
	case StorageMinio:
		return newMinio(s)
	case StorageS3:
		return newS3(ctx, s)
	case StorageRedis:
		return newRedis(ctx, s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

func (s *Storage) ttl() time.Duration {
	return time.Duration(s.TTL) * time.Second
}

func getFullPath(basePath, objectName string) string {
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimLeft(objectName, "/")
	if basePath == "" {
		return objectName
	}
	return path.Join(basePath, objectName)
}
