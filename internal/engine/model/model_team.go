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

// Team is a named group of employees. Names are not unique.
type Team struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Lead        string   `json:"lead"` // display name, free text
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (t Team) Clone() Team {
	t.Members = cloneStrings(t.Members)
	return t
}

type CreateTeamReq struct {
	Id          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Lead        string   `json:"lead"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// UpdateTeamReq is a partial update; nil fields are left unchanged.
type UpdateTeamReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Lead        *string `json:"lead"`
	Description *string `json:"description"`
}

func (r *UpdateTeamReq) Apply(t *Team) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Lead != nil {
		t.Lead = *r.Lead
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
}

// TeamResp is a team with members resolved.
type TeamResp struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Lead        string     `json:"lead"`
	Description string     `json:"description"`
	Members     []Employee `json:"members"`
}

func (t TeamResp) CandidateId() string {
	return t.Id
}

func (t TeamResp) SearchValues() []string {
	return []string{t.Name, t.Lead, t.Description}
}

// AllValues include member names.
func (t TeamResp) AllValues() []string {
	out := []string{t.Id, t.Name, t.Lead, t.Description}
	for _, m := range t.Members {
		out = append(out, m.Name)
	}
	return out
}
