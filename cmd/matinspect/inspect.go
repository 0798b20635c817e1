package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/matfile"
)

func inspectCmd() *cli.Command {
	var (
		showContent bool
		showTree    bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and a summary of every variable",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "content", Usage: "print variable contents", Destination: &showContent},
			&cli.BoolFlag{Name: "tree", Usage: "list nested cell and struct elements", Destination: &showTree},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: inspect needs a FILE argument", 1)
			}
			stat, err := os.Stat(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: stat %q: %v", path, err), 1)
			}

			f, err := matfile.Open(path, readOptions("inspect")...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open %q: %v", path, err), 1)
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "MAT-file: %s (%s)\n", filepath.Base(path), formatBytes(stat.Size()))
			printHeader(w, f.Header)
			fmt.Fprintf(w, "Variables: %d\n", len(f.Arrays))

			if showTree {
				return printTree(w, f.Arrays)
			}
			for _, a := range f.Arrays {
				fmt.Fprintf(w, "  %s\n", a)
				if showContent {
					fmt.Fprint(w, indent(a.ContentString(), "    "))
				}
			}
			return nil
		},
	}
}

func printHeader(w io.Writer, h matfile.Header) {
	fmt.Fprintf(w, "Description: %s\n", h.Description)
	fmt.Fprintf(w, "Version: 0x%04x\n", h.Version)
	fmt.Fprintf(w, "Byte order: %s\n", h.ByteOrder)
	if h.SubsystemOffset != 0 {
		fmt.Fprintf(w, "Subsystem offset: %d\n", h.SubsystemOffset)
	}
}

func printTree(w io.Writer, arrays []matfile.Array) error {
	return matfile.Walk(arrays, func(path string, a matfile.Array) error {
		depth := strings.Count(path, "{") + strings.Count(path, ".")
		fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth+1), path, shapeOf(a))
		return nil
	})
}

// shapeOf is a's summary without its name.
func shapeOf(a matfile.Array) string {
	s := a.String()
	if name := a.Name(); name != "" {
		s = strings.TrimPrefix(s, name+": ")
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l != "" {
			b.WriteString(prefix + l)
		}
	}
	return b.String()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
