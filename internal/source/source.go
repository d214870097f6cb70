/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package source reads and writes gradient JSON files and provides the
// built-in presets.
//
// A gradient file looks like
//
//	{"name": "sunset", "stops": [
//	  {"position": 0, "colour": "#2b1055"},
//	  {"position": 1, "colour": {"r": 255, "g": 128, "b": 0, "a": 255}}
//	]}
//
// Colours are either hex strings or RGBA objects; alpha defaults to 255.
// Input is validated against an embedded JSON schema before decoding.
package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"gradientdesigner/internal/domain"
)

//go:embed schema.json
var schemaJSON []byte

// ErrSchema is wrapped by every validation failure.
var ErrSchema = errors.New("gradient does not match schema")

// SchemaError lists the individual violations.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSchema, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiled() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks raw JSON against the gradient schema.
func Validate(data []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// not JSON at all
		return &SchemaError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, e := range res.Errors() {
		se.Problems = append(se.Problems, e.String())
	}
	return se
}

type fileStop struct {
	Position float64    `json:"position"`
	Colour   fileColour `json:"colour"`
}

type fileGradient struct {
	Name   string     `json:"name,omitempty"`
	Radial bool       `json:"radial,omitempty"`
	Stops  []fileStop `json:"stops"`
}

// fileColour accepts a hex string or an RGBA object and always writes hex.
type fileColour domain.Colour

func (c *fileColour) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := domain.ParseHex(s)
		if err != nil {
			return err
		}
		*c = fileColour(v)
		return nil
	}
	var o struct {
		R, G, B uint8
		A       *uint8
	}
	if err := json.Unmarshal(b, &o); err != nil {
		return err
	}
	a := uint8(255)
	if o.A != nil {
		a = *o.A
	}
	*c = fileColour{R: o.R, G: o.G, B: o.B, A: a}
	return nil
}

func (c fileColour) MarshalJSON() ([]byte, error) {
	return json.Marshal(domain.Colour(c).Hex())
}

// Decode reads, validates and decodes one gradient.
func Decode(r io.Reader) (domain.Gradient, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Gradient{}, fmt.Errorf("read gradient: %w", err)
	}
	if err := Validate(data); err != nil {
		return domain.Gradient{}, err
	}
	var fg fileGradient
	if err := json.Unmarshal(data, &fg); err != nil {
		return domain.Gradient{}, fmt.Errorf("decode gradient: %w", err)
	}
	g := domain.Gradient{Name: fg.Name, Radial: fg.Radial, Stops: make([]domain.Stop, len(fg.Stops))}
	for i, s := range fg.Stops {
		g.Stops[i] = domain.Stop{Position: s.Position, Colour: domain.Colour(s.Colour)}
	}
	return g, nil
}

// Load decodes the gradient file at path.
func Load(path string) (domain.Gradient, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Gradient{}, err
	}
	defer func() { _ = f.Close() }()
	g, err := Decode(f)
	if err != nil {
		return g, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Encode writes g as indented JSON with hex colours.
func Encode(w io.Writer, g domain.Gradient) error {
	fg := fileGradient{Name: g.Name, Radial: g.Radial, Stops: make([]fileStop, len(g.Stops))}
	for i, s := range g.Stops {
		fg.Stops[i] = fileStop{Position: s.Position, Colour: fileColour(s.Colour)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fg)
}

// Resolve treats arg as a preset name first and a file path otherwise.
func Resolve(arg string) (domain.Gradient, error) {
	if g, ok := Preset(arg); ok {
		return g, nil
	}
	return Load(arg)
}
