// Package matfile reads and writes MATLAB level-5 MAT-files.
//
// A file is a 128-byte header followed by one data element per variable.
// Variables are decoded into the Array variants *Numeric[T] (with aliases
// Double, Single, Int8 ... Uint64), *Char, *Cell, *Struct, *Sparse and
// *Empty. Compressed elements are inflated transparently on read and
// produced on write with WithCompression.
//
//	f, err := matfile.Open("data.mat")
//	if err != nil {
//	    return err
//	}
//	names, err := f.Find("Names{3}")
//
// Writing:
//
//	x, _ := matfile.NewNumeric("x", []int{2, 1}, []float64{1, 2})
//	err := matfile.WriteFile("out.mat", []matfile.Array{x}, matfile.WithCompression(true))
package matfile
