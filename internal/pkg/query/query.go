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

// Package query narrows collections by free-text search and faceted
// filters.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownFilter = errors.New("unknown filter category")

// Filters maps a category to the accepted values. An empty set accepts
// everything.
type Filters map[string][]string

// Facets maps a category to the values an item has for it.
type Facets[T any] map[string]func(item T) []string

// Search keeps the items having a value that contains term, ignoring
// case. An empty term keeps everything. Order is preserved.
func Search[T any](items []T, term string, values func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if term == "" || containsTerm(values(item), term) {
			out = append(out, item)
		}
	}
	return out
}

func containsTerm(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// Filter keeps the items that pass every category: an item passes when
// one of its values for the category is accepted.
func Filter[T any](items []T, filters Filters, facets Facets[T]) ([]T, error) {
	for category := range filters {
		if _, ok := facets[category]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, category)
		}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if passes(item, filters, facets) {
			out = append(out, item)
		}
	}
	return out, nil
}

func passes[T any](item T, filters Filters, facets Facets[T]) bool {
	for category, accepted := range filters {
		if len(accepted) == 0 {
			continue
		}
		if !slices.ContainsFunc(facets[category](item), func(v string) bool {
			return slices.Contains(accepted, v)
		}) {
			return false
		}
	}
	return true
}

// Apply filters then searches.
func Apply[T any](items []T, term string, filters Filters, facets Facets[T], values func(T) []string) ([]T, error) {
	filtered, err := Filter(items, filters, facets)
	if err != nil {
		return nil, err
	}
	return Search(filtered, term, values), nil
}
