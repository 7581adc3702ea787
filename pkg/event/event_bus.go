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

package event

import (
	"sync"

	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for the event package.
var ProviderSet = wire.NewSet(NewEventBus)

// AnyEvent subscribes a handler to every event name.
const AnyEvent = "*"

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventBus delivers events synchronously to the handlers registered for
// their name, in registration order.
type EventBus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]subscription
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]subscription),
	}
}

// RegisterHandler subscribes handler to eventName and returns a function
// removing the subscription.
func (eb *EventBus) RegisterHandler(eventName string, handler EventHandler) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	id := eb.nextID
	eb.handlers[eventName] = append(eb.handlers[eventName], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := eb.handlers[eventName]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[eventName] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.handlers[eventName]) == 0 {
			delete(eb.handlers, eventName)
		}
	}
}

// Publish calls every handler for the event's name, then the AnyEvent handlers.
// Handlers must not publish on the same bus.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	targets := make([]EventHandler, 0, len(eb.handlers[event.EventName()])+len(eb.handlers[AnyEvent]))
	for _, s := range eb.handlers[event.EventName()] {
		targets = append(targets, s.handler)
	}
	for _, s := range eb.handlers[AnyEvent] {
		targets = append(targets, s.handler)
	}
	eb.mu.RUnlock()

	for _, h := range targets {
		h.Handle(event)
	}
}

// Subscribers returns the number of handlers registered for eventName.
func (eb *EventBus) Subscribers(eventName string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventName])
}
