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

package form

import (
	"fmt"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

// form names used by RuleConf
const (
	FormEmployee = "employee"
	FormRole     = "role"
)

// employee field ids
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldRole       = "assign_existing_role"
	FieldDepartment = "department"
	FieldType       = "type"
	FieldStatus     = "status"
	FieldJobTitle   = "role"
)

// role field ids
const (
	FieldRoleName        = "role_name"
	FieldRoleDescription = "role_description"
)

// RuleConf attaches an expression rule to a field of a form.
type RuleConf struct {
	Form    string `mapstructure:"form"`
	Field   string `mapstructure:"field"`
	Expr    string `mapstructure:"expr"`
	Message string `mapstructure:"message"`
}

// EmployeeFields is the employee creation form. roleLabels feed the
// optional role select.
func EmployeeFields(roleLabels []string) []Field {
	return []Field{
		{
			ID:          FieldName,
			Label:       "Full Name",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Enter full name",
			Validators:  []Validator{MinLength(2, "Name must be at least 2 characters")},
		},
		{
			ID:          FieldEmail,
			Label:       "Email Address",
			Kind:        KindEmail,
			Required:    true,
			Placeholder: "Enter email address",
			Validators:  []Validator{Email("Please enter a valid email address")},
		},
		{
			ID:      FieldRole,
			Label:   "Assign Existing Role",
			Kind:    KindSelect,
			Options: Options(roleLabels...),
		},
		{
			ID:       FieldDepartment,
			Label:    "Department",
			Kind:     KindSelect,
			Required: true,
			Options:  Options(model.Departments...),
		},
		{
			ID:       FieldType,
			Label:    "Employment Type",
			Kind:     KindSelect,
			Required: true,
			Options:  model.EmploymentTypes,
		},
	}
}

// EditEmployeeFields is the employee edit form.
func EditEmployeeFields() []Field {
	return []Field{
		{
			ID:         FieldName,
			Label:      "Full Name",
			Kind:       KindText,
			Required:   true,
			Validators: []Validator{MinLength(2, "Name must be at least 2 characters")},
		},
		{
			ID:         FieldEmail,
			Label:      "Email Address",
			Kind:       KindEmail,
			Required:   true,
			Validators: []Validator{Email("Please enter a valid email address")},
		},
		{ID: FieldJobTitle, Label: "Role", Kind: KindText},
		{ID: FieldDepartment, Label: "Department", Kind: KindSelect, Required: true, Options: Options(model.Departments...)},
		{ID: FieldStatus, Label: "Status", Kind: KindSelect, Required: true, Options: Options(model.Statuses...)},
		{ID: FieldType, Label: "Employment Type", Kind: KindSelect, Required: true, Options: model.EmploymentTypes},
	}
}

func RoleFields() []Field {
	return []Field{
		{
			ID:          FieldRoleName,
			Label:       "Role Name",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Enter role name",
			Validators:  []Validator{MinLength(3, "Role name must be at least 3 characters")},
		},
		{
			ID:          FieldRoleDescription,
			Label:       "Description",
			Kind:        KindTextarea,
			Placeholder: "Describe the role",
		},
	}
}

// WithRules appends the rules configured for form to the matching fields.
// The returned fields are a copy.
func WithRules(form string, fields []Field, rules []RuleConf) ([]Field, error) {
	out := make([]Field, len(fields))
	copy(out, fields)
	for _, r := range rules {
		if r.Form != form {
			continue
		}
		i := indexOf(out, r.Field)
		if i < 0 {
			return nil, fmt.Errorf("form %s has no field %q", form, r.Field)
		}
		v, err := Rule(r.Expr, r.Message)
		if err != nil {
			return nil, err
		}
		out[i].Validators = append(append([]Validator{}, out[i].Validators...), v)
	}
	return out, nil
}

// CheckRules compiles every rule and reports the first bad one.
func CheckRules(rules []RuleConf) error {
	for _, r := range rules {
		var fields []Field
		switch r.Form {
		case FormEmployee:
			fields = EmployeeFields(nil)
		case FormRole:
			fields = RoleFields()
		default:
			return fmt.Errorf("unknown form %q", r.Form)
		}
		if _, err := WithRules(r.Form, fields, []RuleConf{r}); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(fields []Field, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
