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

// Package adjacency builds keyboard adjacency graphs from embedded layout
// text. A graph maps every reachable character to an ordered list of
// neighbouring key tokens; the slot order encodes direction, which the
// spatial matcher uses to count turns.
package adjacency

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed layouts/*.txt
var layoutFS embed.FS

// Graph is one keyboard adjacency graph. Adjacency maps a character (both the
// plain and the shifted form of a key) to its neighbour tokens; a token holds
// the unshifted character first, the shifted one second, and an empty slot
// means no key in that direction.
type Graph struct {
	Name      string
	Adjacency map[string][]string

	startingPositions float64
	averageDegree     float64
}

// Layout names recognized by the spatial matcher.
const (
	Qwerty    = "qwerty"
	Dvorak    = "dvorak"
	Keypad    = "keypad"
	MacKeypad = "mac_keypad"
)

// slanted keyboards have six neighbours per key, aligned keypads eight.
var slantedDeltas = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {1, -1}, {-1, 1}, {0, 1}}

var alignedDeltas = [][2]int{{-1, 0}, {1, 0}, {-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {0, 1}, {1, 1}}

// Graphs holds every built-in graph, keyed by layout name.
var Graphs = map[string]Graph{
	Qwerty:    buildGraph(Qwerty, 2, true),
	Dvorak:    buildGraph(Dvorak, 2, true),
	Keypad:    buildGraph(Keypad, 1, false),
	MacKeypad: buildGraph(MacKeypad, 1, false),
}

// StartingPositions is the number of keys an attacker may start a spatial
// pattern on, counting shifted and unshifted forms separately.
func (g Graph) StartingPositions() float64 {
	return g.startingPositions
}

// AverageDegree is the mean number of neighbours over all keys in the graph.
func (g Graph) AverageDegree() float64 {
	return g.averageDegree
}

type position struct {
	x, y int
}

func buildGraph(name string, tokenSize int, slanted bool) Graph {
	raw, err := layoutFS.ReadFile("layouts/" + name + ".txt")
	if err != nil {
		panic("adjacency: missing layout " + name)
	}

	byPosition := make(map[position]string)
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	y := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		col := 0
		for col < len(line) {
			if line[col] == ' ' {
				col++
				continue
			}
			end := col
			for end < len(line) && line[end] != ' ' {
				end++
			}
			byPosition[position{col / (tokenSize + 1), y}] = line[col:end]
			col = end
		}
		y++
	}

	deltas := alignedDeltas
	if slanted {
		deltas = slantedDeltas
	}

	adjacency := make(map[string][]string)
	degreeSum := 0.0
	keys := 0.0
	for pos, token := range byPosition {
		neighbours := make([]string, len(deltas))
		degree := 0.0
		for d, delta := range deltas {
			if n, ok := byPosition[position{pos.x + delta[0], pos.y + delta[1]}]; ok {
				neighbours[d] = n
				degree++
			}
		}
		for _, c := range token {
			adjacency[string(c)] = neighbours
			degreeSum += degree
			keys++
		}
	}

	return Graph{
		Name:              name,
		Adjacency:         adjacency,
		startingPositions: keys,
		averageDegree:     degreeSum / keys,
	}
}
