package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-matfile/internal/logging"
	"github.com/robert-malhotra/go-matfile/matfile"
)

var (
	logLevel  string
	logFormat string
	checksum  string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (json, human)",
			Value:       "human",
			Destination: &logFormat,
		},
		&cli.StringFlag{
			Name:        "checksum",
			Usage:       "compressed element checksum policy (strict, warn)",
			Value:       "strict",
			Destination: &checksum,
		},
	}
}

// setup applies config file defaults and configures logging before any
// command runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	applyGlobalConfig(cmd, LoadConfig())

	var human bool
	switch logFormat {
	case "human", "pretty":
		human = true
	case "json":
	default:
		return ctx, fmt.Errorf("unknown log format %q", logFormat)
	}
	if err := logging.Init(logLevel, human); err != nil {
		return ctx, err
	}
	if _, err := matfile.ParseChecksumPolicy(checksum); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// readOptions builds decoder options from the global flags.
func readOptions(command string) []matfile.ReadOption {
	policy, _ := matfile.ParseChecksumPolicy(checksum)
	return []matfile.ReadOption{
		matfile.WithChecksumPolicy(policy),
		matfile.WithReadLogger(logging.WithCommand(command)),
	}
}
