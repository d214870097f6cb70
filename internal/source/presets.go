/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package source

import (
	"sort"

	"gradientdesigner/internal/domain"
)

// DefaultPreset is what the designer shows when nothing else is configured.
const DefaultPreset = "blue-red"

func hex(s string) domain.Colour {
	c, err := domain.ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var presets = map[string][]domain.Stop{
	"blue-red": {
		{Position: 0, Colour: domain.Blue},
		{Position: 1, Colour: domain.Red},
	},
	"greyscale": {
		{Position: 0, Colour: domain.Black},
		{Position: 1, Colour: domain.White},
	},
	"rainbow": {
		{Position: 0, Colour: hex("#ff0000")},
		{Position: 1.0 / 6, Colour: hex("#ff7f00")},
		{Position: 2.0 / 6, Colour: hex("#ffff00")},
		{Position: 3.0 / 6, Colour: hex("#00ff00")},
		{Position: 4.0 / 6, Colour: hex("#0000ff")},
		{Position: 5.0 / 6, Colour: hex("#4b0082")},
		{Position: 1, Colour: hex("#8f00ff")},
	},
	"sunset": {
		{Position: 0, Colour: hex("#2b1055")},
		{Position: 0.45, Colour: hex("#d53369")},
		{Position: 0.8, Colour: hex("#f7971e")},
		{Position: 1, Colour: hex("#ffd20000")},
	},
}

// Preset returns a copy of the named built-in gradient.
func Preset(name string) (domain.Gradient, bool) {
	stops, ok := presets[name]
	if !ok {
		return domain.Gradient{}, false
	}
	return domain.Gradient{Name: name, Stops: append([]domain.Stop(nil), stops...)}, true
}

// PresetNames lists the built-in gradients alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
