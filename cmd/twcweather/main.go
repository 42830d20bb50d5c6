package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"twcweather/internal/api"
	"twcweather/internal/httputil"
	"twcweather/internal/scrape"
	"twcweather/internal/twc"
)

type CLI struct {
	Listen       string        `help:"HTTP listen address." default:":8080" env:"LISTEN_ADDR"`
	UserAgent    string        `help:"User-Agent header for page fetches." default:"twcweather/1.0" env:"USER_AGENT"`
	FetchTimeout time.Duration `help:"Per-attempt page fetch timeout." default:"30s" env:"FETCH_TIMEOUT"`
	FetchRPS     float64       `help:"Sustained page fetches per second." default:"2" env:"FETCH_RPS"`
	FetchBurst   int           `help:"Page fetch burst allowance." default:"4" env:"FETCH_BURST"`
	LogLevel     string        `help:"Log level: debug, info, warn, error." default:"info" env:"LOG_LEVEL"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("twcweather"),
		kong.Description("REST facade over forecasts scraped from weather.com."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cli.LogLevel),
	}))

	fetcher := httputil.NewPageClient(cli.FetchTimeout, cli.FetchRPS, cli.FetchBurst, cli.UserAgent, logger)
	searcher := twc.NewClient(httputil.NewClient(), twc.DefaultEndpoint, logger)
	service := scrape.NewService(fetcher, searcher, clockwork.NewRealClock(), logger)
	server := api.NewServer(service, cli.Listen, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := server.Run(ctx)
	kctx.FatalIfErrorf(err)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
