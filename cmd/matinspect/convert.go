package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/internal/filter"
	"github.com/robert-malhotra/go-matfile/internal/logging"
	"github.com/robert-malhotra/go-matfile/matfile"
)

func convertCmd() *cli.Command {
	var (
		compress  bool
		level     int
		byteOrder string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Rewrite a MAT-file, changing compression or byte order",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "compress", Usage: "compress every variable", Destination: &compress},
			&cli.IntFlag{Name: "level", Usage: "compression level (-2..9, -1 = default)", Value: filter.DefaultLevel, Destination: &level},
			&cli.StringFlag{Name: "byte-order", Usage: "output byte order (keep, little, big)", Value: "keep", Destination: &byteOrder},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return cli.Exit("error: convert needs IN and OUT arguments", 1)
			}
			in, out := c.Args().Get(0), c.Args().Get(1)
			applyWriteConfig(c, LoadConfig(), &compress, &level)
			if err := checkLevel(compress, level); err != nil {
				return err
			}

			f, err := matfile.Open(in, readOptions("convert")...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %q: %v", in, err), 1)
			}

			order, err := parseByteOrder(byteOrder, f.Header.ByteOrder)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			opts := writeOptions("convert", compress, level, order)
			opts = append(opts, matfile.WithDescription(f.Header.Description))
			if err := matfile.WriteFile(out, f.Arrays, opts...); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %q: %v", out, err), 1)
			}

			logging.L().Info().
				Str("in", in).
				Str("out", out).
				Int("arrays", len(f.Arrays)).
				Bool("compressed", compress).
				Str("byte_order", order.String()).
				Msg("converted")
			return nil
		},
	}
}

func parseByteOrder(s string, keep binary.ByteOrder) (binary.ByteOrder, error) {
	switch s {
	case "", "keep":
		return keep, nil
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}

func checkLevel(compress bool, level int) error {
	if compress && !matfile.ValidCompressionLevel(level) {
		return cli.Exit(fmt.Sprintf("error: compression level %d is outside -2..9", level), 1)
	}
	return nil
}

func writeOptions(command string, compress bool, level int, order binary.ByteOrder) []matfile.WriteOption {
	opts := []matfile.WriteOption{
		matfile.WithByteOrder(order),
		matfile.WithWriteLogger(logging.WithCommand(command)),
	}
	if compress {
		opts = append(opts, matfile.WithCompressionLevel(level))
	}
	return opts
}
