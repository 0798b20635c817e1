package matfile

import (
	"fmt"
	"slices"
	"strings"
)

// Struct is a structure array. Every element has the same fields, kept in
// insertion order.
type Struct struct {
	arrayInfo
	fields  []string
	byName  map[string]int
	values  [][]Array // values[element][field], nil until a field exists
	nameLen int
}

// NewStruct creates a structure array with no fields.
func NewStruct(name string, dims []int) (*Struct, error) {
	info, err := newArrayInfo(name, dims, makeFlags(ClassStruct, 0))
	if err != nil {
		return nil, err
	}
	return &Struct{arrayInfo: info, byName: make(map[string]int)}, nil
}

// ValidateFieldName checks a field name against the format's limits.
func ValidateFieldName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidFieldName)
	case len(name) > MaxFieldNameLength:
		return fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidFieldName, name, MaxFieldNameLength)
	case strings.IndexByte(name, 0) >= 0:
		return fmt.Errorf("%w: %q contains NUL", ErrInvalidFieldName, name)
	}
	return nil
}

// FieldNames returns the field names in order.
func (s *Struct) FieldNames() []string { return slices.Clone(s.fields) }

// NumFields returns the number of fields.
func (s *Struct) NumFields() int { return len(s.fields) }

// HasField reports whether the structure has a field called name.
func (s *Struct) HasField(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// AddField adds a field, set to Empty in every element. Adding an existing
// field is a no-op.
func (s *Struct) AddField(name string) error {
	if s.HasField(name) {
		return nil
	}
	if err := ValidateFieldName(name); err != nil {
		return err
	}
	if s.values == nil {
		s.values = make([][]Array, s.count)
	}
	s.byName[name] = len(s.fields)
	s.fields = append(s.fields, name)
	for e := range s.values {
		s.values[e] = append(s.values[e], NewEmpty())
	}
	return nil
}

// Field returns the value of a field in element elem.
func (s *Struct) Field(name string, elem int) (Array, error) {
	if err := s.checkIndex(elem); err != nil {
		return nil, err
	}
	f, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: no field %q", ErrNotFound, name)
	}
	return s.values[elem][f], nil
}

// SetField stores a in a field of element elem, adding the field when it is
// new. A nil a stores Empty.
func (s *Struct) SetField(name string, elem int, a Array) error {
	if err := s.checkIndex(elem); err != nil {
		return err
	}
	if err := s.AddField(name); err != nil {
		return err
	}
	s.values[elem][s.byName[name]] = orEmpty(a)
	return nil
}

// Element returns the field values of element elem, in field order.
func (s *Struct) Element(elem int) ([]Array, error) {
	if err := s.checkIndex(elem); err != nil {
		return nil, err
	}
	if len(s.fields) == 0 {
		return nil, nil
	}
	return slices.Clone(s.values[elem]), nil
}

// FieldNameLength is the per-name width written to the file: the width the
// array was read with, or the longest name plus its terminator.
func (s *Struct) FieldNameLength() int {
	n := s.nameLen
	for _, f := range s.fields {
		n = max(n, len(f)+1)
	}
	return n
}
