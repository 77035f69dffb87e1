package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/prlens/internal/analysis"
	"github.com/prlens/internal/api"
	"github.com/prlens/internal/config"
	"github.com/prlens/internal/dispatch"
	"github.com/prlens/internal/engine"
	"github.com/prlens/internal/hosting"
	"github.com/prlens/internal/jobqueue"
)

func main() {
	app := &cli.App{
		Name:  "prlens",
		Usage: "automated pull request code review",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			analyzeCommand(),
			initConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("prlens exited")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the webhook server with embedded queue workers",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("database url is required for serve")
			}

			host := hosting.NewClient(cfg.GitHub.Token)
			eng, err := engine.New(c.Context, engine.Options{
				Provider:          cfg.AI.Provider,
				APIKey:            cfg.AI.APIKey,
				Model:             cfg.AI.Model,
				BaseURL:           cfg.AI.BaseURL,
				RequestsPerSecond: cfg.AI.RequestsPerSecond,
			})
			if err != nil {
				return err
			}

			service := analysis.NewService(host, eng)

			queueCfg := jobqueue.DefaultQueueConfig()
			if cfg.Queue.MaxWorkers > 0 {
				queueCfg.MaxWorkers = cfg.Queue.MaxWorkers
			}
			if cfg.Queue.MaxAttempts > 0 {
				queueCfg.MaxAttempts = cfg.Queue.MaxAttempts
			}

			queue, err := jobqueue.New(c.Context, cfg.Database.URL, queueCfg, service, host)
			if err != nil {
				return err
			}
			if err := queue.Start(c.Context); err != nil {
				return fmt.Errorf("failed to start job queue: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := queue.Stop(ctx); err != nil {
					log.Error().Err(err).Msg("Failed to stop job queue")
				}
			}()

			dispatcher := dispatch.NewDispatcher(queue)
			server := api.NewServer(cfg.Server.Port, cfg.GitHub.WebhookSecret, dispatcher, service)

			log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
			return server.Start()
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "analyze one pull request directly and print the report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Required: true, Usage: "repository owner"},
			&cli.StringFlag{Name: "repo", Required: true, Usage: "repository name"},
			&cli.IntFlag{Name: "number", Required: true, Usage: "pull request number"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			host := hosting.NewClient(cfg.GitHub.Token)
			eng, err := engine.New(c.Context, engine.Options{
				Provider:          cfg.AI.Provider,
				APIKey:            cfg.AI.APIKey,
				Model:             cfg.AI.Model,
				BaseURL:           cfg.AI.BaseURL,
				RequestsPerSecond: cfg.AI.RequestsPerSecond,
			})
			if err != nil {
				return err
			}

			service := analysis.NewService(host, eng)
			report, err := service.Analyze(c.Context, analysis.Request{
				Repository:        c.String("owner") + "/" + c.String("repo"),
				Owner:             c.String("owner"),
				Repo:              c.String("repo"),
				PullRequestNumber: c.Int("number"),
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func initConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "init-config",
		Usage: "write a sample configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Value: "./prlens.toml", Usage: "where to write the sample config"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if err := config.InitConfig(path); err != nil {
				return err
			}
			fmt.Printf("Wrote sample configuration to %s\n", path)
			return nil
		},
	}
}
