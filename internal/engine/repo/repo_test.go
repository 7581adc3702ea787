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
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	ops  []string
	errs int
}

func (r *recorder) RecordMutation(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	if err != nil {
		r.errs++
	}
}

func newTestStore(t *testing.T) *OrgStore {
	t.Helper()
	s := NewOrgStore(event.NewEventBus(), Options{})
	require.NoError(t, s.Load(model.Snapshot{
		Employees: []model.Employee{
			{Id: "emp001", Name: "John Doe", Email: "john@example.com", Role: "Manager", Department: "Engineering", Status: model.StatusActive, Type: model.TypeFullTime, Teams: []string{"Frontend"}},
			{Id: "emp002", Name: "Jane Roe", Email: "jane@example.com", Role: "Developer", Department: "Engineering", Status: model.StatusActive, Type: model.TypeFullTime},
			{Id: "emp003", Name: "Max Poe", Email: "max@example.com", Role: "Designer", Department: "Design", Status: model.StatusInactive, Type: model.TypeContract},
		},
		Roles: []model.Role{
			{Id: "role1", Label: "Engineering Lead", Users: []string{"emp001", "emp002"}, Manager: &model.ManagerRef{EmployeeId: "emp001"}},
			{Id: "role2", Label: "QA Lead", Badges: []string{"Testing"}},
		},
		Teams: []model.Team{
			{Id: "team001", Name: "Frontend", Members: []string{"emp001", "emp003"}},
		},
	}))
	return s
}

func TestLoad(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, uint64(1), s.Revision())
	assert.Len(t, s.ListEmployees(), 3)
	assert.Len(t, s.ListRoles(), 2)
	assert.Len(t, s.ListTeams(), 1)
	assert.Equal(t, model.DefaultPermissions(), s.ListPermissions())

	r, err := s.GetRole("role1")
	require.NoError(t, err)
	require.NotNil(t, r.Manager)
	assert.Equal(t, "John Doe", r.Manager.Name)
	assert.Equal(t, model.ManagerLive, r.ManagerMode)

	err = s.Load(model.Snapshot{Roles: []model.Role{{Label: "X", Users: []string{"ghost"}}}})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, uint64(1), s.Revision())
	assert.Len(t, s.ListEmployees(), 3)
}

func TestAddEmployee(t *testing.T) {
	s := newTestStore(t)

	e, err := s.AddEmployee(model.Employee{Name: " Ann Lee ", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.Id, "emp"))
	assert.Equal(t, "Ann Lee", e.Name)
	assert.NotNil(t, e.Teams)

	_, err = s.AddEmployee(model.Employee{Id: "emp001", Name: "Dup", Email: "dup@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = s.AddEmployee(model.Employee{Name: "", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddEmployeeDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	_, err := s.AddEmployee(model.Employee{Name: "Other John", Email: "  JOHN@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateEmployeeReflected(t *testing.T) {
	s := newTestStore(t)
	design := "Design"

	e, err := s.UpdateEmployee("emp001", &model.UpdateEmployeeReq{Department: &design})
	require.NoError(t, err)
	assert.Equal(t, "Design", e.Department)

	r, err := s.GetRole("role1")
	require.NoError(t, err)
	assert.Equal(t, "Design", r.Users[0].Department)
	assert.Equal(t, "Design", r.Manager.Department)
	assert.Equal(t, "Engineering", r.Users[1].Department)

	team, err := s.GetTeam("team001")
	require.NoError(t, err)
	assert.Equal(t, "Design", team.Members[0].Department)
	assert.Equal(t, "Design", team.Members[1].Department)
	assert.Equal(t, "Max Poe", team.Members[1].Name)

	other, err := s.GetEmployee("emp002")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", other.Department)
}

func TestUpdateEmployeeEmail(t *testing.T) {
	s := newTestStore(t)
	taken := "JANE@example.com"
	_, err := s.UpdateEmployee("emp001", &model.UpdateEmployeeReq{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	same := "John@Example.com"
	e, err := s.UpdateEmployee("emp001", &model.UpdateEmployeeReq{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, same, e.Email)

	_, err = s.UpdateEmployee("nobody", &model.UpdateEmployeeReq{Email: &same})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestRemoveEmployeeCascades(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RemoveEmployee("emp001"))

	_, err := s.GetEmployee("emp001")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	snap := s.Snapshot()
	for _, r := range snap.Roles {
		assert.NotContains(t, r.Users, "emp001")
		if r.Manager != nil {
			assert.NotEqual(t, "emp001", r.Manager.EmployeeId)
		}
	}
	for _, team := range snap.Teams {
		assert.NotContains(t, team.Members, "emp001")
	}
	r, err := s.GetRole("role1")
	require.NoError(t, err)
	assert.Nil(t, r.Manager)
	assert.Len(t, r.Users, 1)

	assert.ErrorIs(t, s.RemoveEmployee("emp001"), ErrEmployeeNotFound)
}

func TestSnapshotManagerSurvivesRemoval(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SetRoleManager("role2", "emp003", model.ManagerSnapshot)
	require.NoError(t, err)

	name := "Max Renamed"
	_, err = s.UpdateEmployee("emp003", &model.UpdateEmployeeReq{Name: &name})
	require.NoError(t, err)
	require.NoError(t, s.RemoveEmployee("emp003"))

	r, err := s.GetRole("role2")
	require.NoError(t, err)
	require.NotNil(t, r.Manager)
	assert.Equal(t, "Max Poe", r.Manager.Name)
	assert.Equal(t, model.ManagerSnapshot, r.ManagerMode)

	r, err = s.SetRoleManager("role2", "", "")
	require.NoError(t, err)
	assert.Nil(t, r.Manager)
}

func TestDefaultManagerMode(t *testing.T) {
	s := NewOrgStore(nil, Options{ManagerMode: model.ManagerSnapshot})
	e, err := s.AddEmployee(model.Employee{Name: "Lead", Email: "lead@example.com"})
	require.NoError(t, err)

	r, err := s.AddRole(model.Role{Label: "Leads", Manager: &model.ManagerRef{EmployeeId: e.Id}})
	require.NoError(t, err)
	assert.Equal(t, model.ManagerSnapshot, r.ManagerMode)

	_, err = s.SetRoleManager(r.Id, e.Id, "boss")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddRole(t *testing.T) {
	s := newTestStore(t)

	r, err := s.AddRole(model.Role{Id: "ignored", Label: "Support Lead", Users: []string{"emp002", "emp002"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Id, "role_"))
	assert.Len(t, r.Users, 1)
	assert.NotNil(t, r.Badges)

	_, err = s.AddRole(model.Role{Label: " qa lead "})
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	_, err = s.AddRole(model.Role{Label: "  "})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.AddRole(model.Role{Label: "Ghosts", Users: []string{"ghost"}})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = s.AddRole(model.Role{Label: "Ghost managed", Manager: &model.ManagerRef{EmployeeId: "ghost"}})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	found, err := s.FindRoleByLabel("support lead")
	require.NoError(t, err)
	assert.Equal(t, r.Id, found.Id)
}

func TestUpdateRole(t *testing.T) {
	s := newTestStore(t)
	label := "QA Lead"
	_, err := s.UpdateRole("role1", &model.UpdateRoleReq{Label: &label})
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	label = "Platform Lead"
	r, err := s.UpdateRole("role1", &model.UpdateRoleReq{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "role1", r.Id)
	assert.Equal(t, "Platform Lead", r.Label)

	_, err = s.FindRoleByLabel("Engineering Lead")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	require.NoError(t, s.RemoveRole("role1"))
	assert.ErrorIs(t, s.RemoveRole("role1"), ErrRoleNotFound)
}

func TestAssignUsersToRoleIdempotent(t *testing.T) {
	s := newTestStore(t)

	r, err := s.AssignUsersToRole("role2", []string{"emp001", "emp002"})
	require.NoError(t, err)
	assert.Len(t, r.Users, 2)

	r, err = s.AssignUsersToRole("role2", []string{"emp001", "emp002"})
	require.NoError(t, err)
	assert.Len(t, r.Users, 2)
	assert.Equal(t, "emp001", r.Users[0].Id)

	rev := s.Revision()
	_, err = s.AssignUsersToRole("role2", []string{"emp003", "ghost"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, rev, s.Revision())
	r, err = s.GetRole("role2")
	require.NoError(t, err)
	assert.Len(t, r.Users, 2)

	r, err = s.UnassignUserFromRole("role2", "emp001")
	require.NoError(t, err)
	assert.Len(t, r.Users, 1)
	r, err = s.UnassignUserFromRole("role2", "emp001")
	require.NoError(t, err)
	assert.Len(t, r.Users, 1)

	_, err = s.AssignUsersToRole("missing", []string{"emp001"})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestUpdateRolePermissions(t *testing.T) {
	s := newTestStore(t)
	perms := model.DefaultPermissions()[:2]
	perms[0].IsGranted = false

	r, err := s.UpdateRolePermissions("role2", perms)
	require.NoError(t, err)
	assert.Equal(t, perms, r.Permissions)
	assert.True(t, s.ListPermissions()[0].IsGranted)

	_, err = s.UpdateRolePermissions("role2", []model.Permission{{Id: "p"}, {Id: "p"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTeams(t *testing.T) {
	s := newTestStore(t)

	team, err := s.AddTeam(model.Team{Name: "Documentation", Members: []string{"emp002"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(team.Id, "team"))

	_, err = s.AddTeam(model.Team{Name: "Documentation"})
	require.NoError(t, err)

	_, err = s.AddTeam(model.Team{Id: "team001", Name: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	team, err = s.AssignUsersToTeam(team.Id, []string{"emp002", "emp003"})
	require.NoError(t, err)
	assert.Len(t, team.Members, 2)

	lead := "Jane Roe"
	team, err = s.UpdateTeam(team.Id, &model.UpdateTeamReq{Lead: &lead})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", team.Lead)

	team, err = s.UnassignUserFromTeam(team.Id, "emp003")
	require.NoError(t, err)
	assert.Len(t, team.Members, 1)

	require.NoError(t, s.RemoveTeam(team.Id))
	_, err = s.GetTeam(team.Id)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestChangesPublished(t *testing.T) {
	bus := event.NewEventBus()
	s := NewOrgStore(bus, Options{})
	rec := &recorder{}
	s.SetRecorder(rec)

	var changes []model.Change
	bus.RegisterHandler(model.ChangeEvent, event.HandlerFunc(func(e event.Event) {
		changes = append(changes, e.(model.Change))
	}))

	e, err := s.AddEmployee(model.Employee{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = s.AddEmployee(model.Employee{Name: "Ann", Email: "ann@example.com"})
	require.Error(t, err)
	require.NoError(t, s.RemoveEmployee(e.Id))

	require.Len(t, changes, 2)
	assert.Equal(t, model.OpAddEmployee, changes[0].Op)
	assert.Equal(t, uint64(1), changes[0].Revision)
	assert.Equal(t, 1, changes[0].Counts.Employees)
	assert.Equal(t, model.OpRemoveEmployee, changes[1].Op)
	assert.Equal(t, e.Id, changes[1].Id)

	assert.Equal(t, []string{model.OpAddEmployee, model.OpAddEmployee, model.OpRemoveEmployee}, rec.ops)
	assert.Equal(t, 1, rec.errs)
}

func TestChangesPublishedInRevisionOrder(t *testing.T) {
	bus := event.NewEventBus()
	s := NewOrgStore(bus, Options{})

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var revisions []uint64
	bus.RegisterHandler(model.ChangeEvent, event.HandlerFunc(func(e event.Event) {
		ch := e.(model.Change)
		if ch.Revision == 1 {
			close(started)
			<-release
		}
		mu.Lock()
		revisions = append(revisions, ch.Revision)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.AddEmployee(model.Employee{Name: "Ann", Email: "ann@example.com"})
		assert.NoError(t, err)
	}()
	<-started
	go func() {
		defer wg.Done()
		_, err := s.AddEmployee(model.Employee{Name: "Bob", Email: "bob@example.com"})
		assert.NoError(t, err)
	}()

	assert.Eventually(t, func() bool { return s.Revision() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []uint64{1, 2}, revisions)
}

func TestUpdateEmployeeKeepsStoredId(t *testing.T) {
	bus := event.NewEventBus()
	s := newTestStore(t)
	s.bus = bus
	var changes []model.Change
	bus.RegisterHandler(model.ChangeEvent, event.HandlerFunc(func(e event.Event) {
		changes = append(changes, e.(model.Change))
	}))

	// the id shares memory with a buffer that is reused afterwards
	buf := []byte("emp001")
	id := unsafe.String(&buf[0], len(buf))
	dept := "Design"
	_, err := s.UpdateEmployee(id, &model.UpdateEmployeeReq{Department: &dept})
	require.NoError(t, err)
	copy(buf, "XXXXXX")

	e, err := s.GetEmployee("emp001")
	require.NoError(t, err)
	assert.Equal(t, "Design", e.Department)

	team, err := s.GetTeam("team001")
	require.NoError(t, err)
	assert.Len(t, team.Members, 2)

	require.Len(t, changes, 1)
	assert.Equal(t, "emp001", changes[0].Id)
}

func TestReadsReturnCopies(t *testing.T) {
	s := newTestStore(t)
	list := s.ListEmployees()
	list[0].Teams[0] = "mutated"

	e, err := s.GetEmployee("emp001")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", e.Teams[0])
}

func TestReadsKeepEmptyTeams(t *testing.T) {
	s := newTestStore(t)
	e, err := s.GetEmployee("emp002")
	require.NoError(t, err)
	require.NotNil(t, e.Teams)

	raw, err := json.Marshal(s.ListEmployees())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"teams":null`)
	assert.Contains(t, string(raw), `"teams":[]`)
}

func TestConcurrentAssign(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AssignUsersToRole("role2", []string{"emp001", "emp002", "emp003"})
			_ = s.ListRoles()
		}()
	}
	wg.Wait()

	r, err := s.GetRole("role2")
	require.NoError(t, err)
	assert.Len(t, r.Users, 3)
	assert.Equal(t, uint64(17), s.Revision())
}
