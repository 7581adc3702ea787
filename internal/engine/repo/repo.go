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

package repo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrDuplicateLabel   = errors.New("role label already exists")
	ErrDuplicateID      = errors.New("id already exists")
	ErrInvalidArgument  = errors.New("invalid argument")
)

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// MutationRecorder observes every mutation attempt, failed ones included.
type MutationRecorder interface {
	RecordMutation(op string, err error)
}

// Options configure an OrgStore.
type Options struct {
	// ManagerMode is used when a manager is assigned without a mode.
	ManagerMode model.ManagerMode
}

// OrgStore owns employees, roles, teams and the permission catalog. Every
// mutation runs on a copy of the state that replaces the current one only
// when the whole operation succeeded.
type OrgStore struct {
	mu       sync.RWMutex
	state    *state
	revision uint64

	// published is the last revision handed to the bus. Changes wait on
	// publishCond for their turn so subscribers see revisions in order.
	publishMu   sync.Mutex
	publishCond *sync.Cond
	published   uint64

	bus         *event.EventBus
	recorder    MutationRecorder
	managerMode model.ManagerMode
	now         func() time.Time
}

func NewOrgStore(bus *event.EventBus, opts Options) *OrgStore {
	mode := opts.ManagerMode
	if mode == "" {
		mode = model.ManagerLive
	}
	s := &OrgStore{
		state:       newState(),
		bus:         bus,
		managerMode: mode,
		now:         func() time.Time { return time.Now().UTC() },
	}
	s.publishCond = sync.NewCond(&s.publishMu)
	return s
}

// SetRecorder installs the mutation recorder.
func (s *OrgStore) SetRecorder(r MutationRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// ManagerMode returns the default manager mode.
func (s *OrgStore) ManagerMode() model.ManagerMode {
	return s.managerMode
}

// Revision returns the number of committed mutations.
func (s *OrgStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns a deep copy of the current state.
func (s *OrgStore) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot(s.revision)
}

// Counts returns the collection sizes.
func (s *OrgStore) Counts() model.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.counts()
}

func (s *OrgStore) view(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// update applies fn to a copy of the state and commits the copy when fn
// returns nil. The change is published after the state lock is released,
// once every earlier revision has been published. Bus handlers may read
// the store but must not mutate it.
func (s *OrgStore) update(op, kind string, fn func(st *state, ch *model.Change) error) error {
	s.mu.Lock()
	recorder := s.recorder
	next := s.state.clone()
	ch := model.Change{Op: op, Kind: kind}
	if err := fn(next, &ch); err != nil {
		s.mu.Unlock()
		if recorder != nil {
			recorder.RecordMutation(op, err)
		}
		return err
	}
	s.state = next
	s.revision++
	ch.Revision = s.revision
	ch.At = s.now()
	ch.Counts = next.counts()
	ch.Id = strings.Clone(ch.Id)
	s.mu.Unlock()

	if recorder != nil {
		recorder.RecordMutation(op, nil)
	}
	s.publish(ch)
	return nil
}

func (s *OrgStore) publish(ch model.Change) {
	s.publishMu.Lock()
	for s.published+1 < ch.Revision {
		s.publishCond.Wait()
	}
	s.publishMu.Unlock()

	defer func() {
		s.publishMu.Lock()
		s.published = ch.Revision
		s.publishCond.Broadcast()
		s.publishMu.Unlock()
	}()
	if s.bus != nil {
		s.bus.Publish(ch)
	}
}

// Load replaces the whole state with snap. References are checked and
// the previous state is kept when any of them is dangling.
func (s *OrgStore) Load(snap model.Snapshot) error {
	return s.update(model.OpLoad, "", func(st *state, ch *model.Change) error {
		next := newState()
		for _, e := range snap.Employees {
			if _, err := next.addEmployee(e.Clone()); err != nil {
				return err
			}
		}
		for _, r := range snap.Roles {
			if _, err := next.addRole(r.Clone(), s.managerMode); err != nil {
				return err
			}
		}
		for _, t := range snap.Teams {
			if _, err := next.addTeam(t.Clone()); err != nil {
				return err
			}
		}
		perms := snap.Permissions
		if perms == nil {
			perms = model.DefaultPermissions()
		}
		if err := checkPermissions(perms); err != nil {
			return err
		}
		next.permissions = model.ClonePermissions(perms)
		*st = *next
		return nil
	})
}

type state struct {
	employees   []model.Employee
	roles       []model.Role
	teams       []model.Team
	permissions []model.Permission
}

func newState() *state {
	return &state{
		employees:   []model.Employee{},
		roles:       []model.Role{},
		teams:       []model.Team{},
		permissions: []model.Permission{},
	}
}

func (st *state) clone() *state {
	cp := &state{
		employees:   make([]model.Employee, len(st.employees)),
		roles:       make([]model.Role, len(st.roles)),
		teams:       make([]model.Team, len(st.teams)),
		permissions: make([]model.Permission, len(st.permissions)),
	}
	for i, e := range st.employees {
		cp.employees[i] = e.Clone()
	}
	for i, r := range st.roles {
		cp.roles[i] = r.Clone()
	}
	for i, t := range st.teams {
		cp.teams[i] = t.Clone()
	}
	copy(cp.permissions, st.permissions)
	return cp
}

func (st *state) snapshot(rev uint64) model.Snapshot {
	cp := st.clone()
	return model.Snapshot{
		Revision:    rev,
		Employees:   cp.employees,
		Roles:       cp.roles,
		Teams:       cp.teams,
		Permissions: cp.permissions,
	}
}

func (st *state) counts() model.Counts {
	return model.Counts{
		Employees:   len(st.employees),
		Roles:       len(st.roles),
		Teams:       len(st.teams),
		Permissions: len(st.permissions),
	}
}

func (st *state) employeeIndex(id string) int {
	return slices.IndexFunc(st.employees, func(e model.Employee) bool { return e.Id == id })
}

func (st *state) roleIndex(id string) int {
	return slices.IndexFunc(st.roles, func(r model.Role) bool { return r.Id == id })
}

func (st *state) teamIndex(id string) int {
	return slices.IndexFunc(st.teams, func(t model.Team) bool { return t.Id == id })
}

func (st *state) employeesById() map[string]model.Employee {
	m := make(map[string]model.Employee, len(st.employees))
	for _, e := range st.employees {
		m[e.Id] = e
	}
	return m
}

// emailTaken reports whether an employee other than exceptId uses email.
func (st *state) emailTaken(email, exceptId string) bool {
	norm := model.NormalizeEmail(email)
	return slices.ContainsFunc(st.employees, func(e model.Employee) bool {
		return e.Id != exceptId && model.NormalizeEmail(e.Email) == norm
	})
}

// labelTaken compares labels case-insensitively after trimming.
func (st *state) labelTaken(label, exceptId string) bool {
	norm := strings.ToLower(strings.TrimSpace(label))
	return slices.ContainsFunc(st.roles, func(r model.Role) bool {
		return r.Id != exceptId && strings.ToLower(strings.TrimSpace(r.Label)) == norm
	})
}

// checkEmployees verifies that every id names an employee and returns
// the ids deduplicated in first-seen order.
func (st *state) checkEmployees(ids []string) ([]string, error) {
	known := st.employeesById()
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, wrapf(ErrEmployeeNotFound, "employee %q", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func checkPermissions(perms []model.Permission) error {
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		if strings.TrimSpace(p.Id) == "" {
			return wrapf(ErrInvalidArgument, "permission id is empty")
		}
		if _, dup := seen[p.Id]; dup {
			return wrapf(ErrInvalidArgument, "permission %q listed twice", p.Id)
		}
		seen[p.Id] = struct{}{}
	}
	return nil
}

// mergeIds appends the ids of add missing from base and returns the ids
// actually added.
func mergeIds(base, add []string) ([]string, []string) {
	added := make([]string, 0, len(add))
	for _, id := range add {
		if !slices.Contains(base, id) {
			base = append(base, id)
			added = append(added, id)
		}
	}
	return base, added
}

func removeId(ids []string, id string) ([]string, bool) {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids, false
	}
	return slices.Delete(ids, i, i+1), true
}
