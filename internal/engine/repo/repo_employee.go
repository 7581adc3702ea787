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
	"slices"
	"strings"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/pkg/id"
)

type IEmployeeRepository interface {
	AddEmployee(e model.Employee) (model.Employee, error)
	UpdateEmployee(employeeId string, patch *model.UpdateEmployeeReq) (model.Employee, error)
	RemoveEmployee(employeeId string) error
	ListEmployees() []model.Employee
	GetEmployee(employeeId string) (model.Employee, error)
}

// AddEmployee stores e. An empty id is replaced with a fresh one.
func (s *OrgStore) AddEmployee(e model.Employee) (model.Employee, error) {
	var out model.Employee
	err := s.update(model.OpAddEmployee, model.KindEmployee, func(st *state, ch *model.Change) error {
		added, err := st.addEmployee(e.Clone())
		if err != nil {
			return err
		}
		ch.Id = added.Id
		out = added.Clone()
		return nil
	})
	return out, err
}

func (st *state) addEmployee(e model.Employee) (model.Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	if e.Name == "" || e.Email == "" {
		return e, wrapf(ErrInvalidArgument, "employee name and email are required")
	}
	if e.Id == "" {
		e.Id = id.WithPrefix("emp")
		for e.Id == "emp" || st.employeeIndex(e.Id) >= 0 {
			e.Id = id.WithPrefix("emp")
		}
	} else if st.employeeIndex(e.Id) >= 0 {
		return e, wrapf(ErrDuplicateID, "employee %q", e.Id)
	}
	if st.emailTaken(e.Email, "") {
		return e, wrapf(ErrDuplicateEmail, "%s", e.Email)
	}
	if e.Teams == nil {
		e.Teams = []string{}
	}
	st.employees = append(st.employees, e)
	return e, nil
}

// UpdateEmployee patches one employee. Roles and teams reference employees
// by id, so every resolved copy reflects the patch.
func (s *OrgStore) UpdateEmployee(employeeId string, patch *model.UpdateEmployeeReq) (model.Employee, error) {
	var out model.Employee
	err := s.update(model.OpUpdateEmployee, model.KindEmployee, func(st *state, ch *model.Change) error {
		i := st.employeeIndex(employeeId)
		if i < 0 {
			return wrapf(ErrEmployeeNotFound, "employee %q", employeeId)
		}
		e := st.employees[i].Clone()
		if patch != nil {
			patch.Apply(&e)
		}
		e.Name = strings.TrimSpace(e.Name)
		e.Email = strings.TrimSpace(e.Email)
		if e.Name == "" || e.Email == "" {
			return wrapf(ErrInvalidArgument, "employee name and email are required")
		}
		if model.NormalizeEmail(e.Email) != model.NormalizeEmail(st.employees[i].Email) && st.emailTaken(e.Email, employeeId) {
			return wrapf(ErrDuplicateEmail, "%s", e.Email)
		}
		if e.Teams == nil {
			e.Teams = []string{}
		}
		st.employees[i] = e
		ch.Id = employeeId
		ch.Affected = st.referencing(employeeId)
		out = e.Clone()
		return nil
	})
	return out, err
}

// RemoveEmployee deletes the employee and every reference to it. Live
// manager references are cleared, snapshot ones are kept.
func (s *OrgStore) RemoveEmployee(employeeId string) error {
	return s.update(model.OpRemoveEmployee, model.KindEmployee, func(st *state, ch *model.Change) error {
		i := st.employeeIndex(employeeId)
		if i < 0 {
			return wrapf(ErrEmployeeNotFound, "employee %q", employeeId)
		}
		ch.Id = employeeId
		ch.Affected = st.referencing(employeeId)
		st.employees = slices.Delete(st.employees, i, i+1)
		for ri := range st.roles {
			r := &st.roles[ri]
			r.Users, _ = removeId(r.Users, employeeId)
			if r.Manager != nil && r.Manager.Mode != model.ManagerSnapshot && r.Manager.EmployeeId == employeeId {
				r.Manager = nil
			}
		}
		for ti := range st.teams {
			st.teams[ti].Members, _ = removeId(st.teams[ti].Members, employeeId)
		}
		return nil
	})
}

// referencing lists the roles and teams that hold employeeId.
func (st *state) referencing(employeeId string) []string {
	var out []string
	for _, r := range st.roles {
		if slices.Contains(r.Users, employeeId) || (r.Manager != nil && r.Manager.EmployeeId == employeeId) {
			out = append(out, r.Id)
		}
	}
	for _, t := range st.teams {
		if slices.Contains(t.Members, employeeId) {
			out = append(out, t.Id)
		}
	}
	return out
}

func (s *OrgStore) ListEmployees() []model.Employee {
	var out []model.Employee
	s.view(func(st *state) {
		out = make([]model.Employee, len(st.employees))
		for i, e := range st.employees {
			out[i] = e.Clone()
		}
	})
	return out
}

func (s *OrgStore) GetEmployee(employeeId string) (model.Employee, error) {
	var (
		out model.Employee
		err error
	)
	s.view(func(st *state) {
		i := st.employeeIndex(employeeId)
		if i < 0 {
			err = wrapf(ErrEmployeeNotFound, "employee %q", employeeId)
			return
		}
		out = st.employees[i].Clone()
	})
	return out, err
}
