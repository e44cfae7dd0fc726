package main

import (
	"github.com/urfave/cli/v3"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// settings collects every value the commands read from flags and the config
// file. Numeric fields match the flag types and are converted when options
// are built.
type settings struct {
	configPath string

	textsPath         string
	order             int64
	removeURLs        bool
	removePunctuation bool
	addPunctuation    string

	output     string
	seed       string
	terminator string
	maxWords   int64
	minWords   int64
	iterations int64
	randSeed   int64

	logLevel  string
	logFormat string

	addr string
}

func trainingFlags(s *settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "texts",
			Aliases:     []string{"t"},
			Usage:       "path to the JSON file of training texts",
			Destination: &s.textsPath,
		},
		&cli.Int64Flag{
			Name:        "order",
			Aliases:     []string{"o"},
			Usage:       "order of the markov chain",
			Value:       markov.DefaultOrder,
			Destination: &s.order,
		},
		&cli.BoolFlag{
			Name:        "remove-urls",
			Usage:       "drop words starting with http://, https:// or www.",
			Destination: &s.removeURLs,
		},
		&cli.BoolFlag{
			Name:        "remove-punctuation",
			Usage:       "strip ASCII punctuation from every word",
			Destination: &s.removePunctuation,
		},
		&cli.StringFlag{
			Name:        "add-punctuation",
			Usage:       "punctuation appended to texts whose last word has none",
			Destination: &s.addPunctuation,
		},
	}
}

func generationFlags(s *settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "seed",
			Aliases:     []string{"s"},
			Usage:       "seed word to start the generation",
			Destination: &s.seed,
		},
		&cli.StringFlag{
			Name:        "terminator",
			Aliases:     []string{"m"},
			Usage:       "character a generated word must end with to stop",
			Destination: &s.terminator,
		},
		&cli.Int64Flag{
			Name:        "max-words",
			Aliases:     []string{"x"},
			Usage:       "maximum words to generate",
			Value:       markov.DefaultMaxWords,
			Destination: &s.maxWords,
		},
		&cli.Int64Flag{
			Name:        "min-words",
			Aliases:     []string{"n"},
			Usage:       "minimum words before the terminator is honored",
			Value:       markov.DefaultMinWords,
			Destination: &s.minWords,
		},
		&cli.Int64Flag{
			Name:        "iterations",
			Aliases:     []string{"i"},
			Usage:       "number of independent generations",
			Value:       markov.DefaultIterations,
			Destination: &s.iterations,
		},
		&cli.Int64Flag{
			Name:        "rand-seed",
			Usage:       "seed for the random source (0 = non-deterministic)",
			Destination: &s.randSeed,
		},
	}
}

func outputFlags(s *settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"O"},
			Usage:       "write results to a .json file or a .db results log instead of stdout",
			Destination: &s.output,
		},
	}
}

func loggingFlags(s *settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a YAML config file",
			Destination: &s.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &s.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &s.logFormat,
		},
	}
}

// trainingOptions converts the flag values to markov.TrainingOptions.
func (s *settings) trainingOptions() markov.TrainingOptions {
	return markov.TrainingOptions{
		Order:             int(s.order),
		Path:              s.textsPath,
		RemoveURLs:        s.removeURLs,
		RemovePunctuation: s.removePunctuation,
		AddPunctuation:    s.addPunctuation,
	}
}

// generationOptions converts the flag values to markov.GenerationOptions.
func (s *settings) generationOptions() markov.GenerationOptions {
	return markov.GenerationOptions{
		Seed:       s.seed,
		Terminator: s.terminator,
		MaxWords:   int(s.maxWords),
		MinWords:   int(s.minWords),
		Iterations: int(s.iterations),
	}
}

// randSource returns a deterministic source when a seed was given.
func (s *settings) randSource() markov.RandSource {
	if s.randSeed == 0 {
		return markov.DefaultRandSource()
	}
	return markov.NewSeededRand(uint64(s.randSeed))
}
