package matfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for a path that does not parse.
var ErrInvalidPath = errors.New("invalid path")

type stepKind int

const (
	stepCell stepKind = iota
	stepElement
	stepField
)

// PathStep is one component of a parsed path after the variable name.
type PathStep struct {
	kind  stepKind
	index int // zero-based
	field string
}

func (s PathStep) String() string {
	switch s.kind {
	case stepCell:
		return "{" + strconv.Itoa(s.index+1) + "}"
	case stepElement:
		return "(" + strconv.Itoa(s.index+1) + ")"
	default:
		return "." + s.field
	}
}

// ParsePath splits a MATLAB-style path into its variable name and steps.
// Indices are 1-based: "{n}" selects a cell, "(n)" a structure element and
// ".name" a field.
//
// Examples:
//   - "Names{3}" -> "Names", [{3}]
//   - "X(2).w" -> "X", [(2) .w]
//   - "S.inner.c{1}" -> "S", [.inner .c {1}]
func ParsePath(path string) (name string, steps []PathStep, err error) {
	end := strings.IndexAny(path, "{(.")
	if end < 0 {
		end = len(path)
	}
	name = path[:end]
	if name == "" {
		return "", nil, fmt.Errorf("%w: %q has no variable name", ErrInvalidPath, path)
	}
	if strings.ContainsAny(name, "})") {
		return "", nil, fmt.Errorf("%w: unexpected bracket in %q", ErrInvalidPath, path)
	}

	rest := path[end:]
	for rest != "" {
		switch rest[0] {
		case '{', '(':
			closer := byte('}')
			kind := stepCell
			if rest[0] == '(' {
				closer, kind = ')', stepElement
			}
			stop := strings.IndexByte(rest, closer)
			if stop < 0 {
				return "", nil, fmt.Errorf("%w: unterminated %q in %q", ErrInvalidPath, rest[0], path)
			}
			n, err := strconv.Atoi(rest[1:stop])
			if err != nil || n < 1 {
				return "", nil, fmt.Errorf("%w: bad index %q in %q", ErrInvalidPath, rest[1:stop], path)
			}
			steps = append(steps, PathStep{kind: kind, index: n - 1})
			rest = rest[stop+1:]
		case '.':
			stop := strings.IndexAny(rest[1:], "{(.")
			if stop < 0 {
				stop = len(rest) - 1
			}
			field := rest[1 : stop+1]
			if field == "" {
				return "", nil, fmt.Errorf("%w: empty field name in %q", ErrInvalidPath, path)
			}
			steps = append(steps, PathStep{kind: stepField, field: field})
			rest = rest[stop+1:]
		default:
			return "", nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPath, rest[0], path)
		}
	}
	return name, steps, nil
}

// JoinPath renders a variable name and steps back into a path.
func JoinPath(name string, steps []PathStep) string {
	var b strings.Builder
	b.WriteString(name)
	for _, s := range steps {
		b.WriteString(s.String())
	}
	return b.String()
}

// Find resolves a path such as "X(2).w" against the file's variables.
func (f *File) Find(path string) (Array, error) {
	name, steps, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	a, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	return Resolve(a, steps)
}

// Resolve follows steps from a. A field step on a structure array with no
// preceding element step selects element 1. A path may not end at a
// structure element.
func Resolve(a Array, steps []PathStep) (Array, error) {
	root, elem := a.Name(), -1
	for i, s := range steps {
		at := JoinPath(root, steps[:i+1])
		switch s.kind {
		case stepCell:
			c, ok := a.(*Cell)
			if !ok {
				return nil, fmt.Errorf("%w: %s: %s is not a cell", ErrInvalidPath, at, a.Class())
			}
			next, err := c.At(s.index)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			a = next
		case stepElement:
			st, ok := a.(*Struct)
			if !ok {
				return nil, fmt.Errorf("%w: %s: %s is not a struct", ErrInvalidPath, at, a.Class())
			}
			if err := st.checkIndex(s.index); err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			elem = s.index
			continue
		case stepField:
			st, ok := a.(*Struct)
			if !ok {
				return nil, fmt.Errorf("%w: %s: %s is not a struct", ErrInvalidPath, at, a.Class())
			}
			next, err := st.Field(s.field, max(elem, 0))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			a = next
		}
		elem = -1
	}
	if elem >= 0 {
		return nil, fmt.Errorf("%w: path ends at a structure element", ErrInvalidPath)
	}
	return a, nil
}
