package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/internal/filter"
	"github.com/robert-malhotra/go-matfile/internal/logging"
	"github.com/robert-malhotra/go-matfile/matfile"
)

func demoCmd() *cli.Command {
	var (
		compress bool
		level    int
		seed     int64
	)

	return &cli.Command{
		Name:      "demo",
		Usage:     "Write a sample file holding one variable of every kind",
		ArgsUsage: "OUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "compress", Usage: "compress every variable", Destination: &compress},
			&cli.IntFlag{Name: "level", Usage: "compression level (-2..9, -1 = default)", Value: filter.DefaultLevel, Destination: &level},
			&cli.Int64Flag{Name: "seed", Usage: "seed for the random complex array", Value: 1, Destination: &seed},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			out := c.Args().First()
			if out == "" {
				return cli.Exit("error: demo needs an OUT argument", 1)
			}
			applyWriteConfig(c, LoadConfig(), &compress, &level)
			if err := checkLevel(compress, level); err != nil {
				return err
			}

			arrays, err := demoArrays(seed)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			opts := writeOptions("demo", compress, level, binary.LittleEndian)
			if err := matfile.WriteFile(out, arrays, opts...); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %q: %v", out, err), 1)
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Created %s with:\n", out)
			for _, a := range arrays {
				fmt.Fprintf(w, "  %s\n", a)
			}
			logging.L().Debug().Str("out", out).Int64("seed", seed).Msg("demo written")
			return nil
		},
	}
}

// demoArrays builds the sample variables: a cell of strings, a structure,
// a char array, a sparse diagonal, the extremes of every numeric class and
// a large random complex int64 matrix.
func demoArrays(seed int64) ([]matfile.Array, error) {
	names := []string{"Hello", "World", "I am", "a", "MAT-file"}
	cell, err := matfile.NewCell("Names", []int{len(names), 1})
	if err != nil {
		return nil, err
	}
	for i, s := range names {
		if err := cell.Set(i, matfile.NewChar("", s)); err != nil {
			return nil, err
		}
	}

	x, err := matfile.NewStruct("X", []int{1, 1})
	if err != nil {
		return nil, err
	}
	for i, field := range []string{"w", "y", "z"} {
		if err := x.SetField(field, 0, matfile.NewScalar("", uint8(i+1))); err != nil {
			return nil, err
		}
	}

	sparse, err := matfile.NewSparse("S", 3, 3, 3)
	if err != nil {
		return nil, err
	}
	for i, v := range []float64{1.5, 2.5, 3.5} {
		if err := sparse.Set(i, i, v); err != nil {
			return nil, err
		}
	}

	arrays := []matfile.Array{cell, x, matfile.NewChar("AName", "Hello World v4.0!"), sparse}

	extremes := []func() (matfile.Array, error){
		func() (matfile.Array, error) { return extreme("Double", math.MaxFloat64, -math.MaxFloat64) },
		func() (matfile.Array, error) { return extreme("Single", -math.MaxFloat32, float32(math.MaxFloat32)) },
		func() (matfile.Array, error) { return extreme[int8]("Int8", math.MinInt8, math.MaxInt8) },
		func() (matfile.Array, error) { return extreme[uint8]("UInt8", 0, math.MaxUint8) },
		func() (matfile.Array, error) { return extreme[int16]("Int16", math.MinInt16, math.MaxInt16) },
		func() (matfile.Array, error) { return extreme[uint16]("UInt16", 0, math.MaxUint16) },
		func() (matfile.Array, error) { return extreme[int32]("Int32", math.MinInt32, math.MaxInt32) },
		func() (matfile.Array, error) { return extreme[uint32]("UInt32", 0, math.MaxUint32) },
		func() (matfile.Array, error) { return extreme[int64]("Int64", math.MinInt64, math.MaxInt64) },
		func() (matfile.Array, error) { return extreme[uint64]("UInt64", 0, math.MaxUint64) },
	}
	for _, build := range extremes {
		a, err := build()
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, a)
	}

	ia, err := randomComplex("IA", 2000, 400, seed)
	if err != nil {
		return nil, err
	}
	return append(arrays, ia), nil
}

func extreme[T matfile.Number](name string, lo, hi T) (matfile.Array, error) {
	a, err := matfile.NewNumeric(name, []int{2, 1}, []T{lo, hi})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// randomComplex fills an n-element complex int64 matrix with values in the
// int32 range.
func randomComplex(name string, n, rows int, seed int64) (matfile.Array, error) {
	rng := rand.New(rand.NewSource(seed))
	draw := func() int64 { return rng.Int63n(1<<32) + math.MinInt32 }

	re := make([]int64, n)
	im := make([]int64, n)
	for i := range re {
		re[i] = draw()
		im[i] = draw()
	}
	a, err := matfile.NewComplex(name, []int{rows, n / rows}, re, im)
	if err != nil {
		return nil, err
	}
	return a, nil
}
