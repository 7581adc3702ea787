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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/safe"
)

const defaultPath = "/metrics"

// MetricsConfig is the metrics section of the config. The registry is
// always served by the API app when http.exposeMetrics is set; Enable adds
// a standalone listener on Host:Port.
type MetricsConfig struct {
	Enable bool
	Host   string
	Port   int
	Path   string
}

// Server owns a private registry and the optional standalone listener.
type Server struct {
	config   MetricsConfig
	registry *prometheus.Registry
	server   *http.Server
}

func NewServer(config MetricsConfig) *Server {
	if config.Path == "" {
		config.Path = defaultPath
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Server{config: config, registry: registry}
}

// RegisterCollector registers cs in order and stops at the first failure.
func (s *Server) RegisterCollector(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := s.registry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				return fmt.Errorf("collector already registered: %w", err)
			}
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

// Handler serves the registry in the prometheus exposition format.
func (s *Server) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          errorLogger{},
	})
}

func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Start binds the standalone listener when enabled. Bind errors are
// returned; serve errors are logged.
func (s *Server) Start() error {
	if !s.config.Enable || s.config.Port == 0 {
		log.Debug("standalone metrics listener is disabled")
		return nil
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(s.config.Path, s.Handler())
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	safe.Go(func() {
		log.Infow("metrics listener started", "address", ln.Addr().String(), "path", s.config.Path)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics listener failed", "error", err)
		}
	})
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// errorLogger routes promhttp errors into the application log.
type errorLogger struct{}

func (errorLogger) Println(v ...any) {
	log.Errorw("metrics handler error", "error", fmt.Sprint(v...))
}
