package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/CTAG07/ryazon/pkg/corpus"
	"github.com/CTAG07/ryazon/pkg/markov"
	"github.com/CTAG07/ryazon/pkg/output"
)

// prepare resolves config file defaults, builds the logger and rejects
// invalid generation bounds before any corpus is read.
func prepare(cmd *cli.Command, s *settings) (*slog.Logger, error) {
	cfg, err := loadConfig(s.configPath)
	if err != nil {
		return nil, err
	}
	applyConfig(cmd, cfg, s)

	logger, err := newLogger(stderrOf(cmd), s.logLevel, s.logFormat)
	if err != nil {
		return nil, err
	}

	if s.order < 1 {
		return nil, fmt.Errorf("invalid order %d: must be at least 1", s.order)
	}
	if err := s.generationOptions().Validate(); err != nil {
		return nil, err
	}
	if s.textsPath == "" {
		return nil, markov.ErrNoPath
	}
	return logger, nil
}

// buildChain loads the corpus and trains a chain on it. rng becomes the
// chain's random source.
func buildChain(ctx context.Context, s *settings, logger *slog.Logger, rng markov.RandSource) (*markov.Chain, error) {
	doc, err := corpus.Load(s.textsPath)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "Corpus loaded",
		slog.String("path", s.textsPath),
		slog.String("shape", doc.Shape.String()),
		slog.Int("texts", len(doc.Texts())))

	chain, err := markov.NewChain(doc.Texts(), s.trainingOptions(),
		markov.WithLogger(logger),
		markov.WithRandSource(rng))
	if err != nil {
		return nil, fmt.Errorf("failed to build chain: %w", err)
	}
	return chain, nil
}

// runGenerate is the root command: train, generate and write the results.
func runGenerate(ctx context.Context, cmd *cli.Command, s *settings) error {
	logger, err := prepare(cmd, s)
	if err != nil {
		return err
	}

	chain, err := buildChain(ctx, s, logger, s.randSource())
	if err != nil {
		return err
	}

	results, err := chain.GenerateBatch(ctx, s.generationOptions())
	if err != nil {
		return err
	}

	sink, closeSink, err := output.Open(s.output, stdoutOf(cmd), initDB)
	if err != nil {
		return err
	}
	writeErr := sink.Write(ctx, results)
	closeErr := closeSink()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return markov.NewIOError(closeErr)
	}

	if s.output != "" {
		logger.InfoContext(ctx, "Results written",
			slog.String("destination", s.output),
			slog.Int("results", len(results)))
	}
	return nil
}

func stdoutOf(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderrOf(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
