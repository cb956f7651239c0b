package web

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allisson/go-env"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tonindexer/gasused/cmd/fees"
	"github.com/tonindexer/gasused/internal/api/http"
	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/app/fetcher"
	"github.com/tonindexer/gasused/internal/app/query"
	"github.com/tonindexer/gasused/internal/core"
)

var Command = &cli.Command{
	Name:  "web",
	Usage: "HTTP JSON API",

	Action: func(ctx *cli.Context) error {
		apiKey := env.GetString("ETHERSCAN_API_KEY", "")
		if apiKey == "" {
			return errors.Wrap(core.ErrInvalidArg, "ETHERSCAN_API_KEY is not set")
		}

		qs, err := query.NewService(ctx.Context, &app.QueryConfig{
			Fetcher: fetcher.NewService(&app.FetcherConfig{
				API:      fees.NewExplorer(apiKey),
				PageSize: app.DefaultPageSize,
				MaxPages: int(env.GetInt32("MAX_PAGES", 0)),
			}),
			CacheSize: int(env.GetInt32("CACHE_SIZE", 64)),
			CacheTTL:  time.Duration(env.GetInt32("CACHE_TTL", 60)) * time.Second,
		})
		if err != nil {
			return err
		}

		srv := http.NewServer(
			env.GetString("LISTEN", "0.0.0.0:80"),
		)
		srv.RegisterRoutes(http.NewController(qs))

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-c
			log.Info().Msg("shutting down")
			os.Exit(0)
		}()

		if err = srv.Run(); err != nil {
			return err
		}

		return nil
	},
}
