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

type ITeamRepository interface {
	AddTeam(team model.Team) (model.TeamResp, error)
	UpdateTeam(teamId string, patch *model.UpdateTeamReq) (model.TeamResp, error)
	RemoveTeam(teamId string) error
	AssignUsersToTeam(teamId string, employeeIds []string) (model.TeamResp, error)
	UnassignUserFromTeam(teamId, employeeId string) (model.TeamResp, error)
	ListTeams() []model.TeamResp
	GetTeam(teamId string) (model.TeamResp, error)
}

func (s *OrgStore) AddTeam(team model.Team) (model.TeamResp, error) {
	var out model.TeamResp
	err := s.update(model.OpAddTeam, model.KindTeam, func(st *state, ch *model.Change) error {
		added, err := st.addTeam(team.Clone())
		if err != nil {
			return err
		}
		ch.Id = added.Id
		out = resolveTeam(added, st.employeesById())
		return nil
	})
	return out, err
}

func (st *state) addTeam(t model.Team) (model.Team, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return t, wrapf(ErrInvalidArgument, "team name is required")
	}
	if t.Id == "" {
		t.Id = id.WithPrefix("team")
		for t.Id == "team" || st.teamIndex(t.Id) >= 0 {
			t.Id = id.WithPrefix("team")
		}
	} else if st.teamIndex(t.Id) >= 0 {
		return t, wrapf(ErrDuplicateID, "team %q", t.Id)
	}
	members, err := st.checkEmployees(t.Members)
	if err != nil {
		return t, err
	}
	t.Members = members
	st.teams = append(st.teams, t)
	return t, nil
}

func (s *OrgStore) UpdateTeam(teamId string, patch *model.UpdateTeamReq) (model.TeamResp, error) {
	return s.mutateTeam(model.OpUpdateTeam, teamId, func(_ *state, t *model.Team) error {
		if patch == nil {
			return nil
		}
		patch.Apply(t)
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return wrapf(ErrInvalidArgument, "team name is required")
		}
		return nil
	})
}

func (s *OrgStore) RemoveTeam(teamId string) error {
	return s.update(model.OpRemoveTeam, model.KindTeam, func(st *state, ch *model.Change) error {
		i := st.teamIndex(teamId)
		if i < 0 {
			return wrapf(ErrTeamNotFound, "team %q", teamId)
		}
		st.teams = slices.Delete(st.teams, i, i+1)
		ch.Id = teamId
		return nil
	})
}

// AssignUsersToTeam merges employeeIds into the members. Ids already
// present are skipped; any unknown id fails the whole call.
func (s *OrgStore) AssignUsersToTeam(teamId string, employeeIds []string) (model.TeamResp, error) {
	return s.mutateTeam(model.OpAssignUsersToTeam, teamId, func(st *state, t *model.Team) error {
		ids, err := st.checkEmployees(employeeIds)
		if err != nil {
			return err
		}
		t.Members, _ = mergeIds(t.Members, ids)
		return nil
	})
}

func (s *OrgStore) UnassignUserFromTeam(teamId, employeeId string) (model.TeamResp, error) {
	return s.mutateTeam(model.OpUnassignUserFromTeam, teamId, func(st *state, t *model.Team) error {
		if st.employeeIndex(employeeId) < 0 {
			return wrapf(ErrEmployeeNotFound, "employee %q", employeeId)
		}
		t.Members, _ = removeId(t.Members, employeeId)
		return nil
	})
}

func (s *OrgStore) mutateTeam(op, teamId string, fn func(st *state, t *model.Team) error) (model.TeamResp, error) {
	var out model.TeamResp
	err := s.update(op, model.KindTeam, func(st *state, ch *model.Change) error {
		i := st.teamIndex(teamId)
		if i < 0 {
			return wrapf(ErrTeamNotFound, "team %q", teamId)
		}
		if err := fn(st, &st.teams[i]); err != nil {
			return err
		}
		ch.Id = teamId
		out = resolveTeam(st.teams[i], st.employeesById())
		return nil
	})
	return out, err
}

func (s *OrgStore) ListTeams() []model.TeamResp {
	var out []model.TeamResp
	s.view(func(st *state) {
		known := st.employeesById()
		out = make([]model.TeamResp, len(st.teams))
		for i, t := range st.teams {
			out[i] = resolveTeam(t, known)
		}
	})
	return out
}

func (s *OrgStore) GetTeam(teamId string) (model.TeamResp, error) {
	var (
		out model.TeamResp
		err error
	)
	s.view(func(st *state) {
		i := st.teamIndex(teamId)
		if i < 0 {
			err = wrapf(ErrTeamNotFound, "team %q", teamId)
			return
		}
		out = resolveTeam(st.teams[i], st.employeesById())
	})
	return out, err
}

func resolveTeam(t model.Team, known map[string]model.Employee) model.TeamResp {
	return model.TeamResp{
		Id:          t.Id,
		Name:        t.Name,
		Lead:        t.Lead,
		Description: t.Description,
		Members:     resolveEmployees(t.Members, known),
	}
}
