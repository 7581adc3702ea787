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
	"strconv"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-playground/validator/v10"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

var validate = validator.New()

func MinLength(n int, message string) Validator {
	return func(value string) string {
		if utf8.RuneCountInString(value) < n {
			return message
		}
		return ""
	}
}

func Email(message string) Validator {
	return func(value string) string {
		if validate.Var(value, "email") != nil {
			return message
		}
		return ""
	}
}

// OneOf accepts the values of options.
func OneOf(options ...model.Option) Validator {
	return func(value string) string {
		for _, o := range options {
			if o.Value == value {
				return ""
			}
		}
		return "Please select a valid option"
	}
}

func Numeric(message string) Validator {
	return func(value string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return message
		}
		return ""
	}
}

// ruleEnv is what a rule expression sees.
type ruleEnv struct {
	Value  string `expr:"value"`
	Length int    `expr:"length"`
}

// Rule compiles a boolean expression over value and length. The value
// fails with message when the expression is false or cannot run.
func Rule(source, message string) (Validator, error) {
	program, err := expr.Compile(source, expr.Env(ruleEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", source, err)
	}
	return func(value string) string {
		if ok, err := runRule(program, value); err != nil || !ok {
			return message
		}
		return ""
	}, nil
}

func runRule(program *vm.Program, value string) (bool, error) {
	out, err := expr.Run(program, ruleEnv{Value: value, Length: utf8.RuneCountInString(value)})
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}
