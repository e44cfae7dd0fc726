package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the root command. Each call binds its flags to a fresh
// settings value, so tests can run the app repeatedly.
func newApp() *cli.Command {
	s := &settings{}
	return &cli.Command{
		Name:    "ryazon",
		Usage:   "Generate text from a word-level markov chain",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Flags: slices.Concat(
			trainingFlags(s),
			generationFlags(s),
			outputFlags(s),
			loggingFlags(s),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runGenerate(ctx, cmd, s)
		},
		Commands: []*cli.Command{
			serveCmd(s),
		},
	}
}
