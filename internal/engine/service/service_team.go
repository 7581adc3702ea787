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

type TeamService struct {
	teamRepo repo.ITeamRepository
}

func NewTeamService(teamRepo repo.ITeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) ListTeams(q string, filters query.Filters) ([]model.TeamResp, error) {
	return query.TeamList(s.teamRepo.ListTeams(), q, filters)
}

func (s *TeamService) GetTeam(teamId string) (*model.TeamResp, error) {
	t, err := s.teamRepo.GetTeam(teamId)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TeamService) CreateTeam(req *model.CreateTeamReq) (*model.TeamResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	t, err := s.teamRepo.AddTeam(model.Team{
		Id:          req.Id,
		Name:        req.Name,
		Lead:        req.Lead,
		Description: req.Description,
		Members:     req.Members,
	})
	if err != nil {
		log.Errorw("create team failed", "name", req.Name, "error", err)
		return nil, fmt.Errorf("create team failed: %w", err)
	}
	log.Infow("success create team", "teamId", t.Id, "name", t.Name)
	return &t, nil
}

func (s *TeamService) UpdateTeam(teamId string, req *model.UpdateTeamReq) (*model.TeamResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	t, err := s.teamRepo.UpdateTeam(teamId, req)
	if err != nil {
		log.Errorw("update team failed", "teamId", teamId, "error", err)
		return nil, fmt.Errorf("update team failed: %w", err)
	}
	log.Infow("success update team", "teamId", teamId)
	return &t, nil
}

func (s *TeamService) DeleteTeam(teamId string) error {
	if err := s.teamRepo.RemoveTeam(teamId); err != nil {
		log.Errorw("delete team failed", "teamId", teamId, "error", err)
		return fmt.Errorf("delete team failed: %w", err)
	}
	log.Infow("success delete team", "teamId", teamId)
	return nil
}

func (s *TeamService) AssignMembers(teamId string, req *model.AssignUsersReq) (*model.TeamResp, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	t, err := s.teamRepo.AssignUsersToTeam(teamId, req.EmployeeIds)
	if err != nil {
		log.Errorw("assign members to team failed", "teamId", teamId, "employeeIds", req.EmployeeIds, "error", err)
		return nil, fmt.Errorf("assign members to team failed: %w", err)
	}
	log.Infow("success assign members to team", "teamId", teamId, "members", len(t.Members))
	return &t, nil
}

func (s *TeamService) RemoveMember(teamId, employeeId string) (*model.TeamResp, error) {
	t, err := s.teamRepo.UnassignUserFromTeam(teamId, employeeId)
	if err != nil {
		log.Errorw("remove team member failed", "teamId", teamId, "employeeId", employeeId, "error", err)
		return nil, fmt.Errorf("remove team member failed: %w", err)
	}
	return &t, nil
}
