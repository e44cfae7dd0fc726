package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// maxAPIIterations bounds the work a single request can ask for.
const maxAPIIterations = 100

// MarkovAPI holds the dependencies for the markov API handlers. The chain
// is trained once and only read afterwards.
type MarkovAPI struct {
	chain    *markov.Chain
	defaults markov.GenerationOptions
	randSeed uint64
	logger   *slog.Logger
}

// NewMarkovAPI creates a new instance of the MarkovAPI. defaults fill the
// fields a request leaves out. A non-zero randSeed gives every request its
// own source seeded with it, so equal requests get equal responses; zero
// uses the chain's source.
func NewMarkovAPI(chain *markov.Chain, defaults markov.GenerationOptions, randSeed uint64, logger *slog.Logger) *MarkovAPI {
	return &MarkovAPI{
		chain:    chain,
		defaults: defaults,
		randSeed: randSeed,
		logger:   logger,
	}
}

// requestChain returns the chain a single request generates from.
func (m *MarkovAPI) requestChain() *markov.Chain {
	if m.randSeed == 0 {
		return m.chain
	}
	return m.chain.WithRand(markov.NewSeededRand(m.randSeed))
}

// RegisterRoutes sets up the routing for the /api/markov endpoints.
func (m *MarkovAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/markov/generate", m.handleGenerate)
	e.GET("/api/markov/stats", m.handleStats)
	e.GET("/healthz", m.handleHealth)
}

// GenerateRequest is the body of POST /api/markov/generate. Nil fields use
// the server defaults.
type GenerateRequest struct {
	Seed       *string `json:"seed"`
	Terminator *string `json:"terminator"`
	MaxWords   *int    `json:"max_words"`
	MinWords   *int    `json:"min_words"`
	Iterations *int    `json:"iterations"`
}

// GenerateResponse carries one result per iteration.
type GenerateResponse struct {
	Results []markov.Result `json:"results"`
}

// StatsResponse describes the trained chain.
type StatsResponse struct {
	Order int               `json:"order"`
	Stats markov.TableStats `json:"stats"`
}

func (r GenerateRequest) options(defaults markov.GenerationOptions) markov.GenerationOptions {
	opts := defaults
	if r.Seed != nil {
		opts.Seed = *r.Seed
	}
	if r.Terminator != nil {
		opts.Terminator = *r.Terminator
	}
	if r.MaxWords != nil {
		opts.MaxWords = *r.MaxWords
	}
	if r.MinWords != nil {
		opts.MinWords = *r.MinWords
	}
	if r.Iterations != nil {
		opts.Iterations = *r.Iterations
	}
	return opts
}

func (m *MarkovAPI) handleGenerate(c *echo.Context) error {
	var req GenerateRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return respondWithError(c, http.StatusBadRequest, "Invalid JSON request body")
	}

	opts := req.options(m.defaults)
	if opts.Iterations > maxAPIIterations {
		return respondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("iterations must not exceed %d", maxAPIIterations))
	}

	ctx := c.Request().Context()
	results, err := m.requestChain().GenerateBatch(ctx, opts)
	if err != nil {
		m.logger.DebugContext(ctx, "Rejected generation request", slog.String("error", err.Error()))
		return respondWithError(c, http.StatusBadRequest, markov.AsError(err))
	}
	return c.JSON(http.StatusOK, GenerateResponse{Results: results})
}

func (m *MarkovAPI) handleStats(c *echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Order: m.chain.Order(),
		Stats: m.chain.Stats(),
	})
}

func (m *MarkovAPI) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// respondWithError writes {"error": payload}. payload is a message string
// or a tagged *markov.Error.
func respondWithError(c *echo.Context, code int, payload any) error {
	return c.JSON(code, map[string]any{"error": payload})
}
