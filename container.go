// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// File is an insertion-ordered container mapping variable names to
// Variables. The zero value is an empty, ready-to-use File.
//
// Go has no ordered-map type in its standard library; File tracks
// insertion order itself with a key slice alongside the lookup map,
// which gives deterministic iteration.
type File struct {
	order []string
	data  map[string]Variable
}

// NewFile returns an empty File.
func NewFile() *File {
	return &File{data: make(map[string]Variable)}
}

// Insert stores value under name, rejecting invalid MATLAB variable
// names (see isValidVariableName). Re-inserting an existing name
// overwrites its value in place, preserving its original position.
func (f *File) Insert(name string, value Variable) error {
	if !isValidVariableName(name) {
		return accessErrorf("invalid variable name %q", name)
	}
	if f.data == nil {
		f.data = make(map[string]Variable)
	}
	if _, exists := f.data[name]; !exists {
		f.order = append(f.order, name)
	}
	f.data[name] = value
	return nil
}

// Take removes and returns the variable stored under name. ok is false
// if name is absent.
func (f *File) Take(name string) (Variable, bool) {
	v, ok := f.data[name]
	if !ok {
		return Variable{}, false
	}
	delete(f.data, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return v, true
}

// Contains reports whether name is present.
func (f *File) Contains(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Get returns the variable stored under name, or Null if absent. This
// never fails: indexed access into a File behaves like indexed access
// into a Variable.
func (f *File) Get(name string) Variable {
	v, ok := f.data[name]
	if !ok {
		return Null
	}
	return v
}

// Names returns the variable names in insertion order.
func (f *File) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Each calls fn once per variable, in insertion order.
func (f *File) Each(fn func(name string, v Variable)) {
	for _, n := range f.order {
		fn(n, f.data[n])
	}
}
