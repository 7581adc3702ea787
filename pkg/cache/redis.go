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
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

const (
	RedisSingle   = "single"
	RedisSentinel = "sentinel"
	RedisCluster  = "cluster"
)

// Redis is the redis section of the config. Address is a comma separated
// list for sentinel and cluster modes. Timeouts are in seconds.
type Redis struct {
	Mode             string
	Address          string
	Password         string
	DB               int
	PoolSize         int
	UseTLS           bool
	MasterName       string
	SentinelUsername string
	SentinelPassword string
	DialTimeout      int
	ReadTimeout      int
	WriteTimeout     int
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// options maps the config onto universal options.
func (r Redis) options() (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Addrs:        strings.Split(r.Address, ","),
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     r.PoolSize,
		DialTimeout:  seconds(r.DialTimeout),
		ReadTimeout:  seconds(r.ReadTimeout),
		WriteTimeout: seconds(r.WriteTimeout),
	}
	for i, a := range opts.Addrs {
		opts.Addrs[i] = strings.TrimSpace(a)
	}
	switch r.Mode {
	case "", RedisSingle:
		opts.Addrs = opts.Addrs[:1]
	case RedisSentinel:
		if r.MasterName == "" {
			return nil, fmt.Errorf("redis sentinel mode requires masterName")
		}
		opts.MasterName = r.MasterName
		opts.SentinelUsername = r.SentinelUsername
		opts.SentinelPassword = r.SentinelPassword
	case RedisCluster:
		opts.DB = 0
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", r.Mode)
	}
	if r.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// NewRedis connects and pings the configured deployment.
func NewRedis(ctx context.Context, cfg Redis) (redis.UniversalClient, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	var client redis.UniversalClient
	if cfg.Mode == RedisCluster {
		client = redis.NewClusterClient(opts.Cluster())
	} else {
		client = redis.NewUniversalClient(opts)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Errorw("failed to connect redis", "address", cfg.Address, "mode", cfg.Mode, "error", err)
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Infow("redis connected", "address", cfg.Address, "mode", cfg.Mode)
	return client, nil
}
