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

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmployeeList(t *testing.T) {
	doc, err := ParseFile("testdata/employees.json")
	require.NoError(t, err)
	require.Len(t, doc.Employees, 4)
	assert.Nil(t, doc.Roles)

	snap := doc.Snapshot()
	assert.Empty(t, snap.Teams)
	assert.Equal(t, model.DefaultPermissions(), snap.Permissions)
	require.Len(t, snap.Roles, 8)

	byLabel := map[string]model.Role{}
	for _, r := range snap.Roles {
		byLabel[r.Label] = r
		require.NotNil(t, r.Manager)
		assert.Equal(t, "emp001", r.Manager.EmployeeId)
	}
	assert.Equal(t, []string{"emp001", "emp004"}, byLabel["Engineering Lead"].Users)
	assert.Equal(t, []string{"emp002"}, byLabel["Product Manager"].Users)
	assert.Equal(t, []string{"emp001"}, byLabel["DevOps Manager"].Users)
	assert.Empty(t, byLabel["HR Director"].Users)
	assert.Equal(t, []string{"Design", "UX", "UI"}, byLabel["Design Lead"].Badges)
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseFile("testdata/org.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Roles, 1)
	require.Len(t, doc.Teams, 2)
	assert.Equal(t, model.ManagerSnapshot, doc.Roles[0].Manager.Mode)

	store := repo.NewOrgStore(nil, repo.Options{})
	_, err = Load(store, "testdata/org.yaml")
	require.NoError(t, err)

	r, err := store.GetRole("role_qa")
	require.NoError(t, err)
	assert.Equal(t, "Olivia Martin", r.Manager.Name)
	assert.Len(t, store.ListPermissions(), 1)
	assert.Len(t, store.ListTeams(), 2)
}

func TestDefaultRolesManagerFallback(t *testing.T) {
	roles := DefaultRoles([]model.Employee{{Id: "a", Role: "Developer"}, {Id: "b", Role: "Designer"}})
	assert.Equal(t, "a", roles[0].Manager.EmployeeId)

	roles = DefaultRoles(nil)
	assert.Nil(t, roles[0].Manager)
	assert.Empty(t, roles[0].Users)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
employees:
  - {id: e1, name: A, email: a@example.com}
  - {id: e2, name: B, email: A@example.com}
`), 0o644))
	doc, err := ParseFile(bad)
	require.NoError(t, err)
	assert.ErrorIs(t, Check(doc, repo.Options{}), repo.ErrDuplicateEmail)

	doc, err = ParseFile("testdata/employees.json")
	require.NoError(t, err)
	assert.NoError(t, Check(doc, repo.Options{}))

	_, err = Parse([]byte("employees: [unclosed"))
	assert.Error(t, err)

	doc, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Snapshot().Employees)
}

func TestLoadEmptyPath(t *testing.T) {
	store := repo.NewOrgStore(nil, repo.Options{})
	_, err := Load(store, "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPermissions(), store.ListPermissions())
	assert.Len(t, store.ListRoles(), 8)
}
