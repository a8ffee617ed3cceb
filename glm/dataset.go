// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package glm

import (
	"errors"
	"fmt"
)

// ErrMissingVariable is returned when a variable the product requires is absent
var ErrMissingVariable = errors.New("missing variable")

// ErrMissingAttribute is returned when a required attribute is absent or not a string
var ErrMissingAttribute = errors.New("missing attribute")

// Dimension is a named netCDF dimension
type Dimension struct {
	Name string
	Size int
}

// Variable is a netCDF variable with its raw (undecoded) values. Values is
// either a single Go value (zero-dimensional variables) or a slice.
type Variable struct {
	Name       string
	Type       string // CDL type name: byte, short, int, float, double, ...
	Dimensions []string
	Attributes map[string]interface{}
	Values     interface{}
}

// IsScalar reports whether the variable has no dimensions
func (v *Variable) IsScalar() bool {
	return len(v.Dimensions) == 0
}

// Attribute returns a variable attribute
func (v *Variable) Attribute(name string) (interface{}, bool) {
	value, ok := v.Attributes[name]
	return value, ok
}

// StringAttribute returns a string variable attribute, or "" when absent
func (v *Variable) StringAttribute(name string) string {
	value, ok := v.Attributes[name]
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// Dataset is read access to a GLM netCDF file
type Dataset interface {
	// Attributes returns the global attributes
	Attributes() map[string]interface{}
	// Dimensions returns the dimensions in file order
	Dimensions() []Dimension
	// VariableNames returns the variable names in file order
	VariableNames() []string
	// Variable reads a variable; ErrMissingVariable if absent
	Variable(name string) (*Variable, error)
	Close() error
}

// HasVariable reports whether ds contains the named variable
func HasVariable(ds Dataset, name string) bool {
	for _, n := range ds.VariableNames() {
		if n == name {
			return true
		}
	}
	return false
}

// MemoryDataset is a Dataset held entirely in memory
type MemoryDataset struct {
	attributes map[string]interface{}
	dimensions []Dimension
	names      []string
	variables  map[string]*Variable
}

// NewMemoryDataset creates an empty in-memory dataset
func NewMemoryDataset(attributes map[string]interface{}) *MemoryDataset {
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	return &MemoryDataset{attributes: attributes, variables: map[string]*Variable{}}
}

// AddDimension appends a dimension
func (m *MemoryDataset) AddDimension(name string, size int) {
	m.dimensions = append(m.dimensions, Dimension{Name: name, Size: size})
}

// AddVariable appends or replaces a variable
func (m *MemoryDataset) AddVariable(v *Variable) {
	if _, exists := m.variables[v.Name]; !exists {
		m.names = append(m.names, v.Name)
	}
	if v.Attributes == nil {
		v.Attributes = map[string]interface{}{}
	}
	m.variables[v.Name] = v
}

// RemoveVariable deletes a variable if present
func (m *MemoryDataset) RemoveVariable(name string) {
	if _, exists := m.variables[name]; !exists {
		return
	}
	delete(m.variables, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

// SetAttribute sets a global attribute
func (m *MemoryDataset) SetAttribute(name string, value interface{}) {
	m.attributes[name] = value
}

// Attributes implements Dataset
func (m *MemoryDataset) Attributes() map[string]interface{} {
	return m.attributes
}

// Dimensions implements Dataset
func (m *MemoryDataset) Dimensions() []Dimension {
	return append([]Dimension{}, m.dimensions...)
}

// VariableNames implements Dataset
func (m *MemoryDataset) VariableNames() []string {
	return append([]string{}, m.names...)
}

// Variable implements Dataset. The returned variable is a copy whose
// attribute map may be modified freely.
func (m *MemoryDataset) Variable(name string) (*Variable, error) {
	v, ok := m.variables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariable, name)
	}
	return copyVariable(v), nil
}

// Close implements Dataset
func (m *MemoryDataset) Close() error {
	return nil
}

func copyVariable(v *Variable) *Variable {
	out := *v
	out.Dimensions = append([]string{}, v.Dimensions...)
	out.Attributes = make(map[string]interface{}, len(v.Attributes))
	for key, value := range v.Attributes {
		out.Attributes[key] = value
	}
	return &out
}
