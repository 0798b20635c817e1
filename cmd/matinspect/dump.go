package main

import (
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/matfile"
)

func dumpCmd() *cli.Command {
	var (
		path    string
		compact bool
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print variables as JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "dump one element, e.g. 'X(2).w' or 'Names{3}'", Destination: &path},
			&cli.BoolFlag{Name: "compact", Usage: "print without indentation", Destination: &compact},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			file := c.Args().First()
			if file == "" {
				return cli.Exit("error: dump needs a FILE argument", 1)
			}
			f, err := matfile.Open(file, readOptions("dump")...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %q: %v", file, err), 1)
			}

			var v any
			if path != "" {
				a, err := f.Find(path)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				v = toJSON(a)
			} else {
				out := make([]jsonArray, len(f.Arrays))
				for i, a := range f.Arrays {
					out[i] = toJSON(a)
				}
				v = out
			}

			enc := json.NewEncoder(c.Root().Writer)
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(v)
		},
	}
}

// jsonArray is the JSON rendering of one array.
type jsonArray struct {
	Name    string `json:"name,omitempty"`
	Class   string `json:"class"`
	Dims    []int  `json:"dims"`
	Complex bool   `json:"complex,omitempty"`
	Global  bool   `json:"global,omitempty"`
	Logical bool   `json:"logical,omitempty"`

	Real  []any       `json:"real,omitempty"`
	Imag  []any       `json:"imag,omitempty"`
	Text  []string    `json:"text,omitempty"`
	Cells []jsonArray `json:"cells,omitempty"`

	Fields   []string      `json:"fields,omitempty"`
	Elements [][]jsonField `json:"elements,omitempty"`

	NZMax int   `json:"nzmax,omitempty"`
	IR    []int `json:"ir,omitempty"`
	JC    []int `json:"jc,omitempty"`
}

type jsonField struct {
	Name  string    `json:"name"`
	Value jsonArray `json:"value"`
}

func toJSON(a matfile.Array) jsonArray {
	out := jsonArray{
		Name:    a.Name(),
		Class:   a.Class().String(),
		Dims:    a.Dims(),
		Complex: a.IsComplex(),
		Global:  a.IsGlobal(),
		Logical: a.IsLogical(),
	}

	switch v := a.(type) {
	case *matfile.Double:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Single:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Int8:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Uint8:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Int16:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Uint16:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Int32:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Uint32:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Int64:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Uint64:
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Char:
		for r := range v.Rows() {
			row, _ := v.Row(r)
			out.Text = append(out.Text, row)
		}
	case *matfile.Cell:
		for _, child := range v.Cells() {
			out.Cells = append(out.Cells, toJSON(child))
		}
	case *matfile.Struct:
		out.Fields = v.FieldNames()
		if len(out.Fields) == 0 {
			break
		}
		for e := range v.Len() {
			values, _ := v.Element(e)
			el := make([]jsonField, len(values))
			for i, child := range values {
				el[i] = jsonField{Name: out.Fields[i], Value: toJSON(child)}
			}
			out.Elements = append(out.Elements, el)
		}
	case *matfile.Sparse:
		out.NZMax, out.IR, out.JC = v.NZMax(), v.IR(), v.JC()
		out.Real, out.Imag = jsonValues(v.Real()), jsonValues(v.Imag())
	case *matfile.Empty:
		out.Class = "empty"
	}
	return out
}

// jsonValues converts numbers for encoding. Non-finite floats, which JSON
// cannot represent, become the strings "NaN", "Inf" and "-Inf".
func jsonValues[T matfile.Number](values []T) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
		switch f := any(v).(type) {
		case float64:
			out[i] = jsonFloat(f, v)
		case float32:
			out[i] = jsonFloat(float64(f), v)
		}
	}
	return out
}

func jsonFloat(f float64, orig any) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return orig
}
