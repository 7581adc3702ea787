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
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestEvent struct {
	Name   string
	Detail Detail
}

type Detail struct {
	Type string
	Data string
}

func (e TestEvent) EventName() string {
	return e.Name
}

func (e TestEvent) EventType() string {
	return e.Detail.Type
}

func TestEventBus_Publish(t *testing.T) {
	bus := NewEventBus()

	var got []string
	bus.RegisterHandler("test", HandlerFunc(func(e Event) {
		got = append(got, "named:"+e.EventType())
	}))
	bus.RegisterHandler(AnyEvent, HandlerFunc(func(e Event) {
		got = append(got, "any:"+e.EventName())
	}))

	bus.Publish(TestEvent{Name: "test", Detail: Detail{Type: "created"}})
	bus.Publish(TestEvent{Name: "other", Detail: Detail{Type: "created"}})

	assert.Equal(t, []string{"named:created", "any:test", "any:other"}, got)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	cancel := bus.RegisterHandler("test", HandlerFunc(func(Event) { calls++ }))
	keep := bus.RegisterHandler("test", HandlerFunc(func(Event) { calls += 10 }))
	assert.Equal(t, 2, bus.Subscribers("test"))

	cancel()
	bus.Publish(TestEvent{Name: "test"})
	assert.Equal(t, 10, calls)
	assert.Equal(t, 1, bus.Subscribers("test"))

	keep()
	cancel()
	assert.Equal(t, 0, bus.Subscribers("test"))
}
