package matfile

import "strconv"

// WalkFunc is called for each array during traversal. path locates the
// array in MATLAB syntax, e.g. "Names{3}" or "X(2).w".
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, a Array) error

// Walk visits every array, depth first, starting with each top-level
// array and descending into cells and structure fields. Nil entries in
// arrays are skipped.
//
// Example:
//
//	matfile.Walk(f.Arrays, func(path string, a matfile.Array) error {
//	    fmt.Println(path, a.Class())
//	    return nil
//	})
func Walk(arrays []Array, fn WalkFunc) error {
	for _, a := range arrays {
		if isNil(a) {
			continue
		}
		if err := walkArray(a.Name(), a, fn); err != nil {
			if IsStopWalk(err) {
				return nil
			}
			return err
		}
	}
	return nil
}

func walkArray(path string, a Array, fn WalkFunc) error {
	if err := fn(path, a); err != nil {
		return err
	}

	switch v := a.(type) {
	case *Cell:
		for i, child := range v.cells {
			if err := walkArray(path+"{"+strconv.Itoa(i+1)+"}", child, fn); err != nil {
				return err
			}
		}
	case *Struct:
		for e, values := range v.values {
			prefix := path
			if v.Len() != 1 {
				prefix += "(" + strconv.Itoa(e+1) + ")"
			}
			for f, child := range values {
				if err := walkArray(prefix+"."+v.fields[f], child, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ErrStopWalk can be returned from a WalkFunc to stop walking without an
// error.
var ErrStopWalk = &walkStopError{}

type walkStopError struct{}

func (e *walkStopError) Error() string { return "walk stopped" }

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	_, ok := err.(*walkStopError)
	return ok
}
