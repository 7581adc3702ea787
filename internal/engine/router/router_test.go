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
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/service"
	"github.com/mustafaazad03/rbac-ui/pkg/cache"
	"github.com/mustafaazad03/rbac-ui/pkg/event"
	"github.com/mustafaazad03/rbac-ui/pkg/http"
	"github.com/mustafaazad03/rbac-ui/pkg/http/ws"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/shutdown"
)

type envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Detail json.RawMessage `json:"detail"`
	ErrMsg json.RawMessage `json:"errMsg"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return newRouter(t).Router()
}

func newRouter(t *testing.T) *Router {
	t.Helper()
	bus := event.NewEventBus()
	m := metrics.NewOrgMetrics()
	store := repo.NewOrgStore(bus, repo.Options{})
	require.NoError(t, store.Load(model.Snapshot{
		Employees: []model.Employee{
			{Id: "emp001", Name: "John Doe", Email: "john@example.com", Role: "Manager", Department: "Engineering", Status: model.StatusActive, Type: model.TypeFullTime},
			{Id: "emp002", Name: "Jane Roe", Email: "jane@example.com", Role: "QA Engineer", Department: "Engineering", Status: model.StatusActive, Type: model.TypeContract},
			{Id: "emp003", Name: "Max Poe", Email: "max@example.com", Role: "Designer", Department: "Design", Status: model.StatusInactive, Type: model.TypePartTime},
		},
		Roles: []model.Role{{Id: "role_qa", Label: "QA Lead", Badges: []string{"QA"}}},
		Teams: []model.Team{{Id: "team001", Name: "Frontend", Members: []string{"emp001"}}},
	}))
	services := service.NewServices(bus, repo.NewRepositories(store), cache.NewFastCache(cache.FastCacheConfig{}), service.Sink{}, service.ExportConf{}, nil, m)
	t.Cleanup(services.Changes.Close)

	server, err := metrics.NewMetricsServer(metrics.MetricsConfig{}, m, metrics.NewCronMetrics())
	require.NoError(t, err)
	return NewRouter(&http.Http{ExposeMetrics: true}, services, server, shutdown.NewManager())
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestRouter_Health(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	status, env := do(t, app, fiber.MethodGet, "/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.NotFound.Code, env.Code)
}

func TestRouter_HealthDraining(t *testing.T) {
	mgr := shutdown.NewManager()
	app := NewRouter(&http.Http{}, nil, nil, mgr).Router()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	mgr.Shutdown()
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_Employees(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, fiber.MethodGet, "/api/v1/employees?q=engineering&type=Contract", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []model.Employee
	require.NoError(t, json.Unmarshal(env.Detail, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "emp002", list[0].Id)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/employees?colour=red", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, http.BadRequest.Code, env.Code)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/employees", `{"name":"A","email":"bad"}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.ErrMsg, &fields))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")

	status, env = do(t, app, fiber.MethodPost, "/api/v1/employees", `{"name":"Ann Lee","email":"ann@example.com"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created model.Employee
	require.NoError(t, json.Unmarshal(env.Detail, &created))
	assert.NotEmpty(t, created.Id)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/employees", `{"name":"Ann Two","email":"ANN@example.com"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, http.EmailAlreadyExist.Code, env.Code)

	status, _ = do(t, app, fiber.MethodPut, "/api/v1/employees/"+created.Id, `{"department":"Design"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, fiber.MethodDelete, "/api/v1/employees/"+created.Id, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, http.Success.Code, env.Code)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/employees/"+created.Id, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.EmployeeNotExist.Code, env.Code)

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/employees", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRouter_UpdateEmployeeThenReuse(t *testing.T) {
	app := newApp(t)

	status, _ := do(t, app, fiber.MethodPut, "/api/v1/employees/emp001", `{"department":"Design"}`)
	require.Equal(t, fiber.StatusOK, status)

	for range 5 {
		status, _ = do(t, app, fiber.MethodGet, "/api/v1/employees/XXXXXX", "")
		assert.Equal(t, fiber.StatusNotFound, status)
		status, _ = do(t, app, fiber.MethodGet, "/api/v1/roles/ZZZZZZZZZZZZZZZZ", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	}

	status, env := do(t, app, fiber.MethodGet, "/api/v1/employees/emp001", "")
	require.Equal(t, fiber.StatusOK, status)
	var e model.Employee
	require.NoError(t, json.Unmarshal(env.Detail, &e))
	assert.Equal(t, "emp001", e.Id)
	assert.Equal(t, "Design", e.Department)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/teams/team001", "")
	require.Equal(t, fiber.StatusOK, status)
	var team model.TeamResp
	require.NoError(t, json.Unmarshal(env.Detail, &team))
	require.Len(t, team.Members, 1)
	assert.Equal(t, "emp001", team.Members[0].Id)
}

type frame struct {
	Type   ws.MessageType  `json:"type"`
	Detail json.RawMessage `json:"detail"`
}

func TestRouter_ChangeStream(t *testing.T) {
	rt := newRouter(t)
	app := rt.Router()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v1/ws/changes", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() frame {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		return f
	}

	hello := read()
	require.Equal(t, ws.Hello, hello.Type)

	added, err := rt.Services.Store.AddEmployee(model.Employee{Name: "Ann Lee", Email: "ann@example.com"})
	require.NoError(t, err)

	change := read()
	require.Equal(t, ws.Change, change.Type)
	var ch model.Change
	require.NoError(t, json.Unmarshal(change.Detail, &ch))
	assert.Equal(t, model.OpAddEmployee, ch.Op)
	assert.Equal(t, added.Id, ch.Id)
	assert.Equal(t, uint64(2), ch.Revision)

	require.True(t, rt.Shutdown.Shutdown())
	assert.Equal(t, ws.Closed, read().Type)
}

func TestRouter_Roles(t *testing.T) {
	app := newApp(t)

	status, _ := do(t, app, fiber.MethodPost, "/api/v1/roles/role_qa/users", `{"employeeIds":["emp002","emp003"]}`)
	require.Equal(t, fiber.StatusOK, status)
	status, env := do(t, app, fiber.MethodPost, "/api/v1/roles/role_qa/users", `{"employeeIds":["emp002"]}`)
	require.Equal(t, fiber.StatusOK, status)
	var role model.RoleResp
	require.NoError(t, json.Unmarshal(env.Detail, &role))
	assert.Len(t, role.Users, 2)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/roles/role_qa/users", `{"employeeIds":["ghost"]}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.EmployeeNotExist.Code, env.Code)

	status, env = do(t, app, fiber.MethodDelete, "/api/v1/roles/role_qa/users/emp002", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Detail, &role))
	assert.Len(t, role.Users, 1)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/roles", `{"label":"qa lead"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, http.LabelAlreadyExist.Code, env.Code)

	status, _ = do(t, app, fiber.MethodPut, "/api/v1/roles/role_qa/manager", `{"employeeId":"emp001","mode":"snapshot"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/roles/by-label/QA%20LEAD", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Detail, &role))
	require.NotNil(t, role.Manager)
	assert.Equal(t, "emp001", role.Manager.Id)

	status, _ = do(t, app, fiber.MethodDelete, "/api/v1/roles/role_qa", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, env = do(t, app, fiber.MethodGet, "/api/v1/roles/role_qa", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.RoleNotExist.Code, env.Code)
}

func TestRouter_Teams(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, fiber.MethodPost, "/api/v1/teams", `{"name":"QA"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var team model.TeamResp
	require.NoError(t, json.Unmarshal(env.Detail, &team))

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/teams/"+team.Id+"/members", `{"employeeIds":["emp002"]}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/teams?size=1-5", "")
	require.Equal(t, fiber.StatusOK, status)
	var teams []model.TeamResp
	require.NoError(t, json.Unmarshal(env.Detail, &teams))
	assert.Len(t, teams, 2)

	status, env = do(t, app, fiber.MethodDelete, "/api/v1/teams/ghost", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.TeamNotExist.Code, env.Code)
}

func TestRouter_Dialog(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, fiber.MethodGet, "/api/v1/forms/employee", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, env.Detail)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/forms/unknown", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.FormNotExist.Code, env.Code)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/dialogs", `{"purpose":"assign-role","target":"role_qa"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var dialog service.DialogResp
	require.NoError(t, json.Unmarshal(env.Detail, &dialog))
	require.NotEmpty(t, dialog.Id)

	base := "/api/v1/dialogs/" + dialog.Id
	status, _ = do(t, app, fiber.MethodPost, base+"/toggle/emp002", "")
	require.Equal(t, fiber.StatusOK, status)
	status, env = do(t, app, fiber.MethodPost, base+"/toggle/ghost", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = do(t, app, fiber.MethodGet, base+"/candidates?q=jane", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Detail, &dialog))
	assert.Len(t, dialog.Candidates, 1)
	assert.Equal(t, []string{"emp002"}, dialog.Selected)

	status, _ = do(t, app, fiber.MethodPost, base+"/confirm", "")
	require.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, fiber.MethodGet, "/api/v1/roles/role_qa", "")
	require.Equal(t, fiber.StatusOK, status)
	var role model.RoleResp
	require.NoError(t, json.Unmarshal(env.Detail, &role))
	require.Len(t, role.Users, 1)
	assert.Equal(t, "emp002", role.Users[0].Id)

	status, _ = do(t, app, fiber.MethodDelete, base, "")
	assert.Equal(t, fiber.StatusOK, status)
	status, env = do(t, app, fiber.MethodGet, base, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, http.DialogNotExist.Code, env.Code)
}

func TestRouter_Export(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/employees/export?format=json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Equal(t, "1", resp.Header.Get(http.HeaderRevision))
	var list []model.Employee
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 3)
	for _, e := range list {
		assert.NotNil(t, e.Teams)
	}

	status, env := do(t, app, fiber.MethodGet, "/api/v1/employees/export?format=pdf", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, http.UnsupportedFormat.Code, env.Code)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/employees/export/sink", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, http.SinkNotConfigured.Code, env.Code)
}

func TestFilters(t *testing.T) {
	app := fiber.New()
	var got map[string][]string
	app.Get("/", func(c *fiber.Ctx) error {
		got = filters(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?q=x&format=json&status=Active&status=Inactive&teams=", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"status": {"Active", "Inactive"}, "teams": {}}, got)
}
