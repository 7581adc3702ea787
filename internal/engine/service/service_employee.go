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
	"fmt"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/pkg/query"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
)

type EmployeeService struct {
	employeeRepo repo.IEmployeeRepository
}

func NewEmployeeService(employeeRepo repo.IEmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// ListEmployees searches and filters the employee list.
func (s *EmployeeService) ListEmployees(q string, filters query.Filters) ([]model.Employee, error) {
	return query.Employees(s.employeeRepo.ListEmployees(), q, filters)
}

func (s *EmployeeService) GetEmployee(employeeId string) (*model.Employee, error) {
	e, err := s.employeeRepo.GetEmployee(employeeId)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EmployeeService) CreateEmployee(req *model.CreateEmployeeReq) (*model.Employee, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if req.Type != "" && !model.IsEmploymentType(req.Type) {
		return nil, invalidField("type", "Please select a valid option")
	}

	e, err := s.employeeRepo.AddEmployee(req.Employee())
	if err != nil {
		log.Errorw("create employee failed", "email", req.Email, "error", err)
		return nil, fmt.Errorf("create employee failed: %w", err)
	}
	log.Infow("success create employee", "employeeId", e.Id, "name", e.Name)
	return &e, nil
}

func (s *EmployeeService) UpdateEmployee(employeeId string, req *model.UpdateEmployeeReq) (*model.Employee, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, fmt.Errorf("nothing to update: %w", repo.ErrInvalidArgument)
	}
	if req.Type != nil && !model.IsEmploymentType(*req.Type) {
		return nil, invalidField("type", "Please select a valid option")
	}

	e, err := s.employeeRepo.UpdateEmployee(employeeId, req)
	if err != nil {
		log.Errorw("update employee failed", "employeeId", employeeId, "error", err)
		return nil, fmt.Errorf("update employee failed: %w", err)
	}
	log.Infow("success update employee", "employeeId", employeeId)
	return &e, nil
}

// DeleteEmployee removes the employee from every role and team as well.
func (s *EmployeeService) DeleteEmployee(employeeId string) error {
	if err := s.employeeRepo.RemoveEmployee(employeeId); err != nil {
		log.Errorw("delete employee failed", "employeeId", employeeId, "error", err)
		return fmt.Errorf("delete employee failed: %w", err)
	}
	log.Infow("success delete employee", "employeeId", employeeId)
	return nil
}
