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

package ws

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

type MessageType string

const (
	Heartbeat MessageType = "heartbeat"
	Hello     MessageType = "hello"
	Change    MessageType = "change"
	Closed    MessageType = "closed"
)

type Message struct {
	// message type
	Type   MessageType `json:"type"`
	Detail any         `json:"detail,omitempty"`
}

const writeWait = 10 * time.Second

// Write sends msg as a single text frame.
func Write(c *websocket.Conn, msg Message) error {
	p, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, p)
}
