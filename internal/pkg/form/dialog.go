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
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
)

var (
	ErrClosed           = errors.New("dialog is not open")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrWrongMode        = errors.New("operation not available in this mode")
)

// Candidate is an item a dialog can list and select.
type Candidate interface {
	CandidateId() string
	SearchValues() []string
}

type Mode string

const (
	// ModeCreate collects field values, optionally with a candidate list.
	ModeCreate Mode = "create"
	// ModeAssign only selects candidates.
	ModeAssign Mode = "assign"
	// ModePermissions edits a permission checklist.
	ModePermissions Mode = "permissions"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCreate, ModeAssign, ModePermissions:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown dialog mode %q", s)
}

// Config describes one dialog session.
type Config[T Candidate] struct {
	Title       string
	Mode        Mode
	Fields      []Field
	Values      map[string]string // initial values over field defaults
	Candidates  []T
	Preselected []string
	// WithSelection shows the candidate list in create mode.
	WithSelection bool
	Permissions   []model.Permission

	OnConfirm     func(selected []T, data map[string]string) error
	OnPermissions func(permissions []model.Permission) error
}

// Dialog is a modal session: it is opened with a config, edited and
// confirmed or closed. Opening again discards all previous state.
type Dialog[T Candidate] struct {
	mu          sync.Mutex
	open        bool
	cfg         Config[T]
	values      map[string]string
	selected    map[string]bool
	term        string
	permissions []model.Permission
}

func NewDialog[T Candidate]() *Dialog[T] {
	return &Dialog[T]{}
}

// Open starts a session. Values reset to field defaults and selection is
// derived from cfg.Preselected only.
func (d *Dialog[T]) Open(cfg Config[T]) error {
	if cfg.Mode == "" {
		cfg.Mode = ModeCreate
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cfg = cfg
	d.values = Defaults(cfg.Fields)
	for k, v := range cfg.Values {
		if indexOf(cfg.Fields, k) >= 0 {
			d.values[k] = v
		}
	}
	d.selected = make(map[string]bool, len(cfg.Preselected))
	for _, c := range cfg.Candidates {
		if slices.Contains(cfg.Preselected, c.CandidateId()) {
			d.selected[c.CandidateId()] = true
		}
	}
	d.term = ""
	d.permissions = model.ClonePermissions(cfg.Permissions)
	d.open = true
	return nil
}

func (d *Dialog[T]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Close ends the session without confirming.
func (d *Dialog[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Dialog[T]) reset() {
	d.open = false
	d.values = nil
	d.selected = nil
	d.term = ""
	d.permissions = nil
}

func (d *Dialog[T]) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Mode
}

func (d *Dialog[T]) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Title
}

// Fields returns the fields shown, none outside create mode.
func (d *Dialog[T]) Fields() []Field {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Mode != ModeCreate {
		return nil
	}
	return slices.Clone(d.cfg.Fields)
}

func (d *Dialog[T]) SetValue(fieldId, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrClosed
	}
	if d.cfg.Mode != ModeCreate {
		return ErrWrongMode
	}
	if indexOf(d.cfg.Fields, fieldId) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldId)
	}
	d.values[fieldId] = value
	return nil
}

func (d *Dialog[T]) Values() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

func (d *Dialog[T]) listsCandidates() bool {
	return d.cfg.Mode == ModeAssign || (d.cfg.Mode == ModeCreate && d.cfg.WithSelection)
}

// Search sets the filter term and returns the matching candidates.
func (d *Dialog[T]) Search(term string) []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.term = term
	return d.visible()
}

// Candidates returns the candidates matching the current term.
func (d *Dialog[T]) Candidates() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible()
}

func (d *Dialog[T]) visible() []T {
	if !d.open || !d.listsCandidates() {
		return nil
	}
	term := strings.ToLower(strings.TrimSpace(d.term))
	out := make([]T, 0, len(d.cfg.Candidates))
	for _, c := range d.cfg.Candidates {
		if term == "" || matches(c.SearchValues(), term) {
			out = append(out, c)
		}
	}
	return out
}

func matches(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// Toggle flips the selection of one candidate.
func (d *Dialog[T]) Toggle(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkSelectable(id); err != nil {
		return err
	}
	if d.selected[id] {
		delete(d.selected, id)
	} else {
		d.selected[id] = true
	}
	return nil
}

// SelectAll selects every id in ids, or clears the selection when ids
// is empty.
func (d *Dialog[T]) SelectAll(ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(ids) == 0 {
		if !d.open {
			return ErrClosed
		}
		clear(d.selected)
		return nil
	}
	for _, id := range ids {
		if err := d.checkSelectable(id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		d.selected[id] = true
	}
	return nil
}

func (d *Dialog[T]) checkSelectable(id string) error {
	if !d.open {
		return ErrClosed
	}
	if !d.listsCandidates() {
		return ErrWrongMode
	}
	if !slices.ContainsFunc(d.cfg.Candidates, func(c T) bool { return c.CandidateId() == id }) {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}
	return nil
}

// Selected returns the selected candidates in candidate order.
func (d *Dialog[T]) Selected() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedLocked()
}

func (d *Dialog[T]) selectedLocked() []T {
	out := make([]T, 0, len(d.selected))
	for _, c := range d.cfg.Candidates {
		if d.selected[c.CandidateId()] {
			out = append(out, c)
		}
	}
	return out
}

// TogglePermission flips the granted flag of one permission.
func (d *Dialog[T]) TogglePermission(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrClosed
	}
	if d.cfg.Mode != ModePermissions {
		return ErrWrongMode
	}
	i := slices.IndexFunc(d.permissions, func(p model.Permission) bool { return p.Id == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}
	d.permissions[i].IsGranted = !d.permissions[i].IsGranted
	return nil
}

func (d *Dialog[T]) Permissions() []model.Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return model.ClonePermissions(d.permissions)
}

// Confirm validates the fields in create mode and hands the result to the
// configured handler. A validation failure returns *ValidationError; a
// handler error is returned as is. Both leave the dialog open. Success
// clears the selection and closes the dialog.
func (d *Dialog[T]) Confirm() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrClosed
	}

	var err error
	switch d.cfg.Mode {
	case ModePermissions:
		if d.cfg.OnPermissions != nil {
			err = d.cfg.OnPermissions(model.ClonePermissions(d.permissions))
		}
	default:
		if d.cfg.Mode == ModeCreate {
			if errs := Validate(d.cfg.Fields, d.values); len(errs) > 0 {
				return &ValidationError{Fields: errs}
			}
		}
		if d.cfg.OnConfirm != nil {
			data := make(map[string]string, len(d.values))
			for k, v := range d.values {
				data[k] = strings.TrimSpace(v)
			}
			err = d.cfg.OnConfirm(d.selectedLocked(), data)
		}
	}
	if err != nil {
		return err
	}
	d.reset()
	return nil
}
