// (c) Copyright 2024 The passmeter Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package match defines the record every pattern matcher produces. A match is
// a tagged record: the header fields are common to all patterns, the remaining
// fields are populated only for the pattern named by the tag.
package match

import (
	"fmt"
	"sort"
	"strings"
)

// Pattern tags the weakness class a match belongs to.
type Pattern string

// The recognized weakness classes.
const (
	Dictionary Pattern = "dictionary"
	Spatial    Pattern = "spatial"
	Repeat     Pattern = "repeat"
	Sequence   Pattern = "sequence"
	Regex      Pattern = "regex"
	Date       Pattern = "date"
	Bruteforce Pattern = "bruteforce"
)

// Match describes one substring of the password recognized by a matcher.
// I and J are inclusive 0-based indices into the password; Token is the
// literal substring password[I..J].
type Match struct {
	Pattern     Pattern `json:"pattern"`
	I           int     `json:"i"`
	J           int     `json:"j"`
	Token       string  `json:"token"`
	Cardinality int     `json:"cardinality"`
	Entropy     float64 `json:"entropy"`

	// dictionary
	DictionaryName   string  `json:"dictionary_name,omitempty"`
	MatchedWord      string  `json:"matched_word,omitempty"`
	Rank             int     `json:"rank,omitempty"`
	BaseEntropy      float64 `json:"base_entropy,omitempty"`
	UppercaseEntropy float64 `json:"uppercase_entropy,omitempty"`

	// l33t variant of a dictionary match
	L33t        bool              `json:"l33t,omitempty"`
	Subs        map[string]string `json:"subs,omitempty"`
	L33tEntropy float64           `json:"l33t_entropy,omitempty"`

	// spatial
	GraphName    string `json:"graph_name,omitempty"`
	Turns        int    `json:"turns,omitempty"`
	ShiftedCount int    `json:"shifted_count,omitempty"`

	// sequence
	SequenceName string `json:"sequence_name,omitempty"`
	Ascending    bool   `json:"ascending,omitempty"`

	// regex
	RegexName string `json:"regex_name,omitempty"`

	// date
	Day       int    `json:"day,omitempty"`
	Month     int    `json:"month,omitempty"`
	Year      int    `json:"year,omitempty"`
	Separator string `json:"separator,omitempty"`
}

// Length returns the number of characters the match covers.
func (m Match) Length() int {
	return m.J - m.I + 1
}

// key folds every discriminating field into a string so two matches produced
// by different matchers can be compared by value.
func (m Match) key() string {
	subs := make([]string, 0, len(m.Subs))
	for from, to := range m.Subs {
		subs = append(subs, from+to)
	}
	sort.Strings(subs)
	return fmt.Sprintf("%s|%d|%d|%s|%s|%d|%t|%s|%s|%d|%d|%s|%t|%s|%d|%d|%d|%s",
		m.Pattern, m.I, m.J, m.DictionaryName, m.MatchedWord, m.Rank, m.L33t,
		strings.Join(subs, ","), m.GraphName, m.Turns, m.ShiftedCount,
		m.SequenceName, m.Ascending, m.RegexName, m.Day, m.Month, m.Year, m.Separator)
}

// Dedupe unions matches by value equality, preserving first occurrence order.
func Dedupe(matches []Match) []Match {
	seen := make(map[string]bool, len(matches))
	out := matches[:0]
	for _, m := range matches {
		k := m.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// Matches orders matches by start index, then end index. Sorting makes the
// orchestrator output independent of matcher run order.
type Matches []Match

func (m Matches) Len() int      { return len(m) }
func (m Matches) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m Matches) Less(i, j int) bool {
	if m[i].I != m[j].I {
		return m[i].I < m[j].I
	}
	if m[i].J != m[j].J {
		return m[i].J < m[j].J
	}
	return m[i].key() < m[j].key()
}
