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

package id

import "github.com/teris-io/shortid"

// GetShortId returns a short url-safe id, or "" if generation failed.
func GetShortId() string {
	id, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return id
}

// WithPrefix returns prefix followed by a short id.
func WithPrefix(prefix string) string {
	return prefix + GetShortId()
}
