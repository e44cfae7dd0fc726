package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/CTAG07/ryazon/pkg/markov"
)

const defaultServeAddr = "127.0.0.1:7277"

func serveCmd(s *settings) *cli.Command {
	var readTimeout time.Duration

	return &cli.Command{
		Name:  "serve",
		Usage: "Train once and serve generation over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       defaultServeAddr,
				Destination: &s.addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       10 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := prepare(cmd, s)
			if err != nil {
				return err
			}

			// Handlers run concurrently; a seeded source is created per
			// request by MarkovAPI instead of being shared.
			chain, err := buildChain(ctx, s, logger, markov.DefaultRandSource())
			if err != nil {
				return err
			}

			e := newEcho(NewMarkovAPI(chain, s.generationOptions(), uint64(s.randSeed), logger))
			logger.InfoContext(ctx, "Starting API server",
				slog.String("address", s.addr),
				slog.Int("order", chain.Order()),
				slog.Int("states", chain.Stats().States))

			sc := echo.StartConfig{
				Address: s.addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

// newEcho builds the HTTP server with the markov routes registered.
func newEcho(api *MarkovAPI) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	api.RegisterRoutes(e)
	return e
}
