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

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/mustafaazad03/rbac-ui/pkg/http/ws"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/safe"
)

const heartbeatInterval = 30 * time.Second

func (rt *Router) wsRouter(r fiber.Router) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws/changes", websocket.New(rt.streamChanges))
}

// streamChanges pushes every committed change to the client until it
// disconnects or the feed closes.
func (rt *Router) streamChanges(c *websocket.Conn) {
	defer func(c *websocket.Conn) {
		if err := c.Close(); err != nil {
			log.Debugw("close websocket connection", "error", err)
		}
	}(c)

	changes, cancel := rt.Services.Changes.Subscribe()
	defer cancel()

	if err := ws.Write(c, ws.Message{Type: ws.Hello, Detail: rt.status()}); err != nil {
		return
	}

	// reader: detects client disconnect
	done := make(chan struct{})
	safe.Go(func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})

	var draining <-chan struct{}
	if rt.Shutdown != nil {
		draining = rt.Shutdown.Done()
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-draining:
			_ = ws.Write(c, ws.Message{Type: ws.Closed})
			return
		case ch, ok := <-changes:
			if !ok {
				_ = ws.Write(c, ws.Message{Type: ws.Closed})
				return
			}
			if err := ws.Write(c, ws.Message{Type: ws.Change, Detail: ch}); err != nil {
				log.Debugw("write change failed", "revision", ch.Revision, "error", err)
				return
			}
		case <-ticker.C:
			if err := ws.Write(c, ws.Message{Type: ws.Heartbeat}); err != nil {
				return
			}
		}
	}
}
