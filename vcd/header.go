// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

// A ScopeItem is an item declared in a scope: a *Scope or a *Var.
//
type ScopeItem interface {
	scopeItem()
}

// Scope is a named scope: $scope TYPE NAME $end.
//
type Scope struct {
	Type  string // module, task, function, begin or fork
	Name  string
	Items []ScopeItem
}

// Var is a variable declaration: $var TYPE WIDTH ID REFERENCE [INDEX] $end.
//
type Var struct {
	Type      string // wire, reg, ...
	Width     int
	ID        IDCode
	Reference string
	Index     string // optional bit select, like "[3]"
}

func (*Scope) scopeItem() {}
func (*Var) scopeItem()   {}

// Header is the definitions section of a VCD file.
//
type Header struct {
	Date      string
	Version   string
	Comment   string
	Timescale *Timescale // nil if not declared
	Items     []ScopeItem
}

// FindScope returns the scope at the given path of scope names or nil if no
// such scope exists.
//
func (h *Header) FindScope(path ...string) *Scope {
	return findScope(h.Items, path)
}

func findScope(items []ScopeItem, path []string) *Scope {
	if len(path) == 0 {
		return nil
	}
	for _, it := range items {
		s, ok := it.(*Scope)
		if !ok || s.Name != path[0] {
			continue
		}
		if len(path) == 1 {
			return s
		}
		if r := findScope(s.Items, path[1:]); r != nil {
			return r
		}
	}
	return nil
}

// FindVar returns the variable at the given path or nil if there is no such
// variable. The path is a list of scope names followed by the variable
// reference:
//
//	h.FindVar("top", "cpu", "clk")
//
func (h *Header) FindVar(path ...string) *Var {
	return findVar(h.Items, path)
}

func findVar(items []ScopeItem, path []string) *Var {
	switch len(path) {
	case 0:
		return nil
	case 1:
		for _, it := range items {
			if v, ok := it.(*Var); ok && v.Reference == path[0] {
				return v
			}
		}
		return nil
	}
	// scope names are not unique, a scope may be declared more than once.
	for _, it := range items {
		if s, ok := it.(*Scope); ok && s.Name == path[0] {
			if v := findVar(s.Items, path[1:]); v != nil {
				return v
			}
		}
	}
	return nil
}

// Walk calls fn for every variable in the header, in declaration order, with
// the path of scope names leading to it. The path slice is only valid for the
// duration of the call.
//
func (h *Header) Walk(fn func(path []string, v *Var)) {
	walk(h.Items, nil, fn)
}

func walk(items []ScopeItem, path []string, fn func([]string, *Var)) {
	for _, it := range items {
		switch it := it.(type) {
		case *Scope:
			walk(it.Items, append(path, it.Name), fn)
		case *Var:
			fn(path, it)
		}
	}
}
