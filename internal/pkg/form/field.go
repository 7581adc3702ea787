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

// Package form describes dialog fields, validates the values entered
// into them and drives selection dialogs over candidate lists.
package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

// Kind is the input type of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
)

// Validator returns an error message, or "" when value is valid.
type Validator func(value string) string

type Field struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Kind        Kind           `json:"type"`
	Required    bool           `json:"required"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []model.Option `json:"options,omitempty"`
	Default     string         `json:"defaultValue,omitempty"`
	Validators  []Validator    `json:"-"`
}

// Errors maps field ids to their error message.
type Errors map[string]string

// ValidationError is returned by Confirm when fields fail validation.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	ids := make([]string, 0, len(e.Fields))
	for id := range e.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s: %s", id, e.Fields[id])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks data against fields and collects every field error.
// An empty required value fails with "<Label> is required"; a non-empty
// value runs the field's validators and the first failure wins. Select
// fields with options only accept one of them and number fields only
// accept numbers.
func Validate(fields []Field, data map[string]string) Errors {
	errs := Errors{}
	for _, f := range fields {
		value := strings.TrimSpace(data[f.ID])
		if value == "" {
			if f.Required {
				errs[f.ID] = f.Label + " is required"
			}
			continue
		}
		validators := f.Validators
		if f.Kind == KindSelect && len(f.Options) > 0 {
			validators = append([]Validator{OneOf(f.Options...)}, validators...)
		}
		if f.Kind == KindNumber {
			validators = append([]Validator{Numeric(f.Label + " must be a number")}, validators...)
		}
		for _, v := range validators {
			if msg := v(value); msg != "" {
				errs[f.ID] = msg
				break
			}
		}
	}
	return errs
}

// Defaults returns the default value of every field.
func Defaults(fields []Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.ID] = f.Default
	}
	return out
}

// Options turns plain values into options labelled by themselves.
func Options(values ...string) []model.Option {
	out := make([]model.Option, len(values))
	for i, v := range values {
		out[i] = model.Option{Value: v, Label: v}
	}
	return out
}
