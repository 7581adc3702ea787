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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/form"
	"github.com/mustafaazad03/rbac-ui/pkg/id"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

// dialog purposes
const (
	PurposeCreateEmployee  = "create-employee"
	PurposeCreateRole      = "create-role"
	PurposeAssignRole      = "assign-role"
	PurposeAssignTeam      = "assign-team"
	PurposeEditPermissions = "edit-permissions"
	PurposeEditEmployee    = "edit-employee"
)

const dialogTTL = 30 * time.Minute

var (
	ErrDialogNotFound = errors.New("dialog not found")
	ErrFormNotFound   = errors.New("form not found")
)

type OpenDialogReq struct {
	Purpose     string            `json:"purpose" validate:"required,oneof=create-employee create-role assign-role assign-team edit-permissions edit-employee"`
	Target      string            `json:"target"` // role, team or employee id the dialog acts on
	Preselected []string          `json:"preselected"`
	Values      map[string]string `json:"values"`
}

type DialogResp struct {
	Id          string             `json:"id"`
	Purpose     string             `json:"purpose"`
	Target      string             `json:"target,omitempty"`
	Title       string             `json:"title"`
	Mode        form.Mode          `json:"mode"`
	Open        bool               `json:"open"`
	Fields      []form.Field       `json:"fields,omitempty"`
	Values      map[string]string  `json:"values,omitempty"`
	Candidates  []model.Employee   `json:"candidates,omitempty"`
	Selected    []string           `json:"selected,omitempty"`
	Permissions []model.Permission `json:"permissions,omitempty"`
}

// ConfirmResp carries what the confirmed dialog created or changed.
type ConfirmResp struct {
	Id      string `json:"id"`
	Purpose string `json:"purpose"`
	Result  any    `json:"result"`
}

type dialogSession struct {
	id      string
	purpose string
	target  string
	opened  time.Time
	dialog  *form.Dialog[model.Employee]
	result  any
}

// DialogService keeps the open dialogs of HTTP clients and binds each
// purpose to the store operation its confirm performs.
type DialogService struct {
	mu       sync.Mutex
	sessions map[string]*dialogSession
	rules    []form.RuleConf
	now      func() time.Time

	employees   *EmployeeService
	roles       *RoleService
	teams       *TeamService
	permissions *PermissionService
}

func NewDialogService(employees *EmployeeService, roles *RoleService, teams *TeamService, permissions *PermissionService, rules []form.RuleConf) *DialogService {
	return &DialogService{
		sessions:    make(map[string]*dialogSession),
		rules:       rules,
		now:         time.Now,
		employees:   employees,
		roles:       roles,
		teams:       teams,
		permissions: permissions,
	}
}

// Form returns the fields of a named form with configured rules applied.
func (s *DialogService) Form(name string) ([]form.Field, error) {
	switch name {
	case form.FormEmployee:
		return form.WithRules(form.FormEmployee, form.EmployeeFields(s.roles.RoleLabels()), s.rules)
	case form.FormRole:
		return form.WithRules(form.FormRole, form.RoleFields(), s.rules)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
}

func (s *DialogService) Open(req *OpenDialogReq) (*DialogResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	sess := &dialogSession{
		purpose: req.Purpose,
		target:  req.Target,
		opened:  s.now(),
		dialog:  form.NewDialog[model.Employee](),
	}
	cfg, err := s.config(sess, req)
	if err != nil {
		return nil, err
	}
	if err := sess.dialog.Open(cfg); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.prune()
	sess.id = id.WithPrefix("dlg")
	for _, taken := s.sessions[sess.id]; taken; _, taken = s.sessions[sess.id] {
		sess.id = id.WithPrefix("dlg")
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Debugw("dialog opened", "dialogId", sess.id, "purpose", sess.purpose, "target", sess.target)
	return sess.resp(), nil
}

// config builds the dialog for a purpose. Confirm handlers keep their
// result on the session.
func (s *DialogService) config(sess *dialogSession, req *OpenDialogReq) (form.Config[model.Employee], error) {
	cfg := form.Config[model.Employee]{
		Preselected: req.Preselected,
		Values:      req.Values,
	}
	all, _ := s.employees.ListEmployees("", nil)

	switch req.Purpose {
	case PurposeCreateEmployee:
		fields, err := s.Form(form.FormEmployee)
		if err != nil {
			return cfg, err
		}
		cfg.Title, cfg.Mode, cfg.Fields = "Add New Employee", form.ModeCreate, fields
		cfg.OnConfirm = func(_ []model.Employee, data map[string]string) error {
			return s.confirmCreateEmployee(sess, data)
		}

	case PurposeCreateRole:
		fields, err := s.Form(form.FormRole)
		if err != nil {
			return cfg, err
		}
		cfg.Title, cfg.Mode, cfg.Fields = "Create New Role", form.ModeCreate, fields
		cfg.WithSelection, cfg.Candidates = true, all
		cfg.OnConfirm = func(selected []model.Employee, data map[string]string) error {
			r, err := s.roles.CreateRole(&model.CreateRoleReq{
				Label:       data[form.FieldRoleName],
				Description: data[form.FieldRoleDescription],
				Users:       employeeIds(selected),
			})
			if err != nil {
				return err
			}
			sess.result = r
			return nil
		}

	case PurposeAssignRole:
		r, err := s.roles.GetRole(req.Target)
		if err != nil {
			return cfg, err
		}
		cfg.Title, cfg.Mode, cfg.Candidates = "Assign Users to "+r.Label, form.ModeAssign, all
		cfg.OnConfirm = func(selected []model.Employee, _ map[string]string) error {
			r, err := s.roles.AssignUsers(sess.target, &model.AssignUsersReq{EmployeeIds: employeeIds(selected)})
			if err != nil {
				return err
			}
			sess.result = r
			return nil
		}

	case PurposeAssignTeam:
		t, err := s.teams.GetTeam(req.Target)
		if err != nil {
			return cfg, err
		}
		cfg.Title, cfg.Mode, cfg.Candidates = "Add Members to "+t.Name, form.ModeAssign, all
		cfg.OnConfirm = func(selected []model.Employee, _ map[string]string) error {
			t, err := s.teams.AssignMembers(sess.target, &model.AssignUsersReq{EmployeeIds: employeeIds(selected)})
			if err != nil {
				return err
			}
			sess.result = t
			return nil
		}

	case PurposeEditPermissions:
		r, err := s.roles.GetRole(req.Target)
		if err != nil {
			return cfg, err
		}
		perms := r.Permissions
		if len(perms) == 0 {
			perms, _ = s.permissions.ListPermissions("", nil)
		}
		cfg.Title, cfg.Mode, cfg.Permissions = "Edit Permissions for "+r.Label, form.ModePermissions, perms
		cfg.OnPermissions = func(perms []model.Permission) error {
			r, err := s.roles.UpdatePermissions(sess.target, &model.UpdatePermissionsReq{Permissions: perms})
			if err != nil {
				return err
			}
			sess.result = r
			return nil
		}

	case PurposeEditEmployee:
		e, err := s.employees.GetEmployee(req.Target)
		if err != nil {
			return cfg, err
		}
		fields, err := form.WithRules(form.FormEmployee, form.EditEmployeeFields(), s.rules)
		if err != nil {
			return cfg, err
		}
		values := map[string]string{
			form.FieldName:       e.Name,
			form.FieldEmail:      e.Email,
			form.FieldJobTitle:   e.Role,
			form.FieldDepartment: e.Department,
			form.FieldStatus:     e.Status,
			form.FieldType:       e.Type,
		}
		for k, v := range req.Values {
			values[k] = v
		}
		cfg.Title, cfg.Mode, cfg.Fields, cfg.Values = "Edit Employee", form.ModeCreate, fields, values
		cfg.OnConfirm = func(_ []model.Employee, data map[string]string) error {
			return s.confirmEditEmployee(sess, data)
		}
	}
	return cfg, nil
}

func (s *DialogService) confirmCreateEmployee(sess *dialogSession, data map[string]string) error {
	var role *model.RoleResp
	if label := data[form.FieldRole]; label != "" {
		r, err := s.roles.GetRoleByLabel(label)
		if err != nil {
			return err
		}
		role = r
	}
	e, err := s.employees.CreateEmployee(&model.CreateEmployeeReq{
		Name:       data[form.FieldName],
		Email:      data[form.FieldEmail],
		Department: data[form.FieldDepartment],
		Type:       data[form.FieldType],
	})
	if err != nil {
		return err
	}
	if role != nil {
		// the employee stays created when the role is gone by now
		if _, err := s.roles.AssignUsers(role.Id, &model.AssignUsersReq{EmployeeIds: []string{e.Id}}); err != nil {
			log.Warnw("assign new employee to role failed", "employeeId", e.Id, "roleId", role.Id, "error", err)
		}
	}
	sess.result = e
	return nil
}

func (s *DialogService) confirmEditEmployee(sess *dialogSession, data map[string]string) error {
	name, email, title := data[form.FieldName], data[form.FieldEmail], data[form.FieldJobTitle]
	dept, status, typ := data[form.FieldDepartment], data[form.FieldStatus], data[form.FieldType]
	e, err := s.employees.UpdateEmployee(sess.target, &model.UpdateEmployeeReq{
		Name:       &name,
		Email:      &email,
		Role:       &title,
		Department: &dept,
		Status:     &status,
		Type:       &typ,
	})
	if err != nil {
		return err
	}
	sess.result = e
	return nil
}

func employeeIds(employees []model.Employee) []string {
	out := make([]string, len(employees))
	for i, e := range employees {
		out[i] = e.Id
	}
	return out
}

// prune drops sessions left open for longer than dialogTTL.
func (s *DialogService) prune() {
	cutoff := s.now().Add(-dialogTTL)
	for k, sess := range s.sessions {
		if sess.opened.Before(cutoff) || !sess.dialog.IsOpen() {
			delete(s.sessions, k)
		}
	}
}

func (s *DialogService) session(dialogId string) (*dialogSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[dialogId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDialogNotFound, dialogId)
	}
	return sess, nil
}

func (s *DialogService) Get(dialogId string) (*DialogResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	return sess.resp(), nil
}

func (s *DialogService) SetValues(dialogId string, values map[string]string) (*DialogResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		if err := sess.dialog.SetValue(k, v); err != nil {
			return nil, err
		}
	}
	return sess.resp(), nil
}

// Candidates narrows the candidate list by q and returns the dialog.
func (s *DialogService) Candidates(dialogId, q string) (*DialogResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	sess.dialog.Search(q)
	return sess.resp(), nil
}

// Toggle flips a candidate, or a permission in permission dialogs.
func (s *DialogService) Toggle(dialogId, candidateId string) (*DialogResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	if sess.dialog.Mode() == form.ModePermissions {
		err = sess.dialog.TogglePermission(candidateId)
	} else {
		err = sess.dialog.Toggle(candidateId)
	}
	if err != nil {
		return nil, err
	}
	return sess.resp(), nil
}

func (s *DialogService) SelectAll(dialogId string, ids []string) (*DialogResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	if err := sess.dialog.SelectAll(ids); err != nil {
		return nil, err
	}
	return sess.resp(), nil
}

// Confirm runs the dialog's confirm. The session ends on success and
// stays open on validation or store failures.
func (s *DialogService) Confirm(dialogId string) (*ConfirmResp, error) {
	sess, err := s.session(dialogId)
	if err != nil {
		return nil, err
	}
	if err := sess.dialog.Confirm(); err != nil {
		log.Debugw("dialog confirm rejected", "dialogId", dialogId, "purpose", sess.purpose, "error", err)
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, dialogId)
	s.mu.Unlock()
	log.Infow("dialog confirmed", "dialogId", dialogId, "purpose", sess.purpose)
	return &ConfirmResp{Id: dialogId, Purpose: sess.purpose, Result: sess.result}, nil
}

func (s *DialogService) Close(dialogId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[dialogId]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDialogNotFound, dialogId)
	}
	sess.dialog.Close()
	delete(s.sessions, dialogId)
	return nil
}

// OpenSessions reports the number of open sessions.
func (s *DialogService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (sess *dialogSession) resp() *DialogResp {
	d := sess.dialog
	resp := &DialogResp{
		Id:          sess.id,
		Purpose:     sess.purpose,
		Target:      sess.target,
		Title:       d.Title(),
		Mode:        d.Mode(),
		Open:        d.IsOpen(),
		Fields:      d.Fields(),
		Candidates:  d.Candidates(),
		Permissions: d.Permissions(),
	}
	if resp.Mode == form.ModeCreate {
		resp.Values = d.Values()
	}
	resp.Selected = employeeIds(d.Selected())
	return resp
}
