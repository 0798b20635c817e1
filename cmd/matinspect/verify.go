package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/internal/logging"
	"github.com/robert-malhotra/go-matfile/matfile"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that files survive an uncompressed and a compressed round trip",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, c *cli.Command) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return cli.Exit("error: verify needs at least one FILE", 1)
			}

			w := c.Root().Writer
			failed := 0
			for _, path := range files {
				if err := verifyFile(path); err != nil {
					failed++
					fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(w, "ok   %s\n", path)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(files)), 1)
			}
			return nil
		},
	}
}

// verifyFile decodes path, re-encodes it both with and without compression
// and checks that every variable decodes back unchanged.
func verifyFile(path string) error {
	f, err := matfile.Open(path, readOptions("verify")...)
	if err != nil {
		return err
	}
	log := logging.WithCommand("verify")

	for _, compress := range []bool{false, true} {
		data, err := matfile.Encode(f.Arrays,
			matfile.WithCompression(compress),
			matfile.WithByteOrder(f.Header.ByteOrder))
		if err != nil {
			return fmt.Errorf("encode (compress=%t): %w", compress, err)
		}
		back, err := matfile.Decode(data)
		if err != nil {
			return fmt.Errorf("decode (compress=%t): %w", compress, err)
		}
		if len(back.Arrays) != len(f.Arrays) {
			return fmt.Errorf("compress=%t: %d arrays became %d", compress, len(f.Arrays), len(back.Arrays))
		}
		for i, a := range f.Arrays {
			if !matfile.Equal(a, back.Arrays[i]) {
				return fmt.Errorf("compress=%t: %s changed", compress, a)
			}
		}
		log.Debug().Str("file", path).Bool("compressed", compress).Int("bytes", len(data)).Msg("round trip ok")
	}
	return nil
}
