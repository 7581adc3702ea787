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

package model

import "slices"

// employee status
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// employment type
const (
	TypeFullTime  = "Full time"
	TypePartTime  = "Part time"
	TypeContract  = "Contract"
	TypeAssociate = "Associate"
)

var (
	Statuses = []string{StatusActive, StatusInactive}

	EmploymentTypes = []Option{
		{Value: TypeFullTime, Label: "Full Time"},
		{Value: TypePartTime, Label: "Part Time"},
		{Value: TypeContract, Label: "Contract"},
		{Value: TypeAssociate, Label: "Associate"},
	}

	Departments = []string{"Engineering", "Design", "Marketing", "Sales", "HR", "Finance", "Support", "Product"}
)

// IsEmploymentType reports whether t is a known employment type.
func IsEmploymentType(t string) bool {
	return slices.ContainsFunc(EmploymentTypes, func(o Option) bool { return o.Value == t })
}

// Employee is a person in the organization.
type Employee struct {
	Id         string   `json:"id"`
	EmployeeId string   `json:"employeeId"` // display code, e.g. EMP-0001
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"` // job title, free text
	Department string   `json:"department"`
	Status     string   `json:"status"`
	Teams      []string `json:"teams"` // team names, not kept in sync with Team.Members
	Type       string   `json:"type"`
	Avatar     string   `json:"avatar,omitempty"`
}

func (e Employee) Clone() Employee {
	e.Teams = cloneStrings(e.Teams)
	return e
}

func (e Employee) CandidateId() string {
	return e.Id
}

// SearchValues are the fields a selection dialog matches against.
func (e Employee) SearchValues() []string {
	out := []string{e.Name, e.Email, e.Role, e.Department}
	return append(out, e.Teams...)
}

// AllValues are every field value, for list search.
func (e Employee) AllValues() []string {
	out := []string{e.Id, e.EmployeeId, e.Name, e.Email, e.Role, e.Department, e.Status, e.Type, e.Avatar}
	return append(out, e.Teams...)
}

// CreateEmployeeReq adds an employee. Id is optional.
type CreateEmployeeReq struct {
	Id         string   `json:"id"`
	EmployeeId string   `json:"employeeId"`
	Name       string   `json:"name" validate:"required,min=2"`
	Email      string   `json:"email" validate:"required,email"`
	Role       string   `json:"role"`
	Department string   `json:"department"`
	Status     string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Teams      []string `json:"teams"`
	Type       string   `json:"type"`
	Avatar     string   `json:"avatar"`
}

func (r *CreateEmployeeReq) Employee() Employee {
	e := Employee{
		Id:         r.Id,
		EmployeeId: r.EmployeeId,
		Name:       r.Name,
		Email:      r.Email,
		Role:       r.Role,
		Department: r.Department,
		Status:     r.Status,
		Teams:      cloneStrings(r.Teams),
		Type:       r.Type,
		Avatar:     r.Avatar,
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.Type == "" {
		e.Type = TypeFullTime
	}
	if e.Teams == nil {
		e.Teams = []string{}
	}
	return e
}

// UpdateEmployeeReq is a partial update; nil fields are left unchanged.
type UpdateEmployeeReq struct {
	EmployeeId *string   `json:"employeeId"`
	Name       *string   `json:"name" validate:"omitempty,min=2"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Role       *string   `json:"role"`
	Department *string   `json:"department"`
	Status     *string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Teams      *[]string `json:"teams"`
	Type       *string   `json:"type"`
	Avatar     *string   `json:"avatar"`
}

// IsEmpty reports whether the patch changes nothing.
func (r *UpdateEmployeeReq) IsEmpty() bool {
	return r.EmployeeId == nil && r.Name == nil && r.Email == nil && r.Role == nil &&
		r.Department == nil && r.Status == nil && r.Teams == nil && r.Type == nil && r.Avatar == nil
}

// Apply patches e in place.
func (r *UpdateEmployeeReq) Apply(e *Employee) {
	if r.EmployeeId != nil {
		e.EmployeeId = *r.EmployeeId
	}
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Email != nil {
		e.Email = *r.Email
	}
	if r.Role != nil {
		e.Role = *r.Role
	}
	if r.Department != nil {
		e.Department = *r.Department
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
	if r.Teams != nil {
		e.Teams = cloneStrings(*r.Teams)
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Avatar != nil {
		e.Avatar = *r.Avatar
	}
}
