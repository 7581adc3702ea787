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

package service

import (
	"sync"
	"sync/atomic"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

const defaultFeedBuffer = 64

// ChangeFeed fans store changes out to subscribers. Each subscriber has
// a buffered channel; changes are dropped for subscribers that fall
// behind.
type ChangeFeed struct {
	mu      sync.Mutex
	subs    map[int]chan model.Change
	next    int
	buffer  int
	closed  bool
	dropped atomic.Uint64
	stop    func()
}

func NewChangeFeed(bus *event.EventBus, buffer int) *ChangeFeed {
	if buffer <= 0 {
		buffer = defaultFeedBuffer
	}
	f := &ChangeFeed{
		subs:   make(map[int]chan model.Change),
		buffer: buffer,
	}
	f.stop = bus.RegisterHandler(model.ChangeEvent, event.HandlerFunc(func(e event.Event) {
		if ch, ok := e.(model.Change); ok {
			f.publish(ch)
		}
	}))
	return f
}

func (f *ChangeFeed) publish(ch model.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, sub := range f.subs {
		select {
		case sub <- ch:
		default:
			f.dropped.Add(1)
			log.Debugw("change dropped for slow subscriber", "subscriber", id, "revision", ch.Revision)
		}
	}
}

// Subscribe returns a channel of changes and a function that ends the
// subscription and closes the channel.
func (f *ChangeFeed) Subscribe() (<-chan model.Change, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := make(chan model.Change, f.buffer)
	if f.closed {
		close(sub)
		return sub, func() {}
	}
	id := f.next
	f.next++
	f.subs[id] = sub

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if s, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(s)
			}
		})
	}
}

func (f *ChangeFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Dropped counts changes not delivered to slow subscribers.
func (f *ChangeFeed) Dropped() uint64 {
	return f.dropped.Load()
}

// Close detaches from the bus and closes every subscription.
func (f *ChangeFeed) Close() {
	f.stop()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, s := range f.subs {
		delete(f.subs, id)
		close(s)
	}
}
