/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"rssdelivery/articles"
	"rssdelivery/config"
	"rssdelivery/feed"
	"rssdelivery/feed/services"
	"rssdelivery/media"
	"rssdelivery/server"
)

// serveCmd represents the serve command
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the partner feeds",
		Description: `Starts the feed delivery HTTP server.

Loads the site configuration, opens the article database read-only and serves
every registered partner feed at /feed/<identifier>. Registration conflicts
are reported at startup, not on the first request.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the site configuration file",
				EnvVars: []string{"DELIVERY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "SQLite article database file location",
				EnvVars: []string{"DELIVERY_DATABASE"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "Port to listen on",
				EnvVars: []string{"DELIVERY_PORT"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if db := ctx.String("database"); db != "" {
				cfg.Store.Database = db
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			registry := feed.NewRegistry(services.Registrations()...)
			if err := registry.Init(); err != nil {
				return err
			}

			store, err := articles.NewStore(cfg.Store.Database)
			if err != nil {
				return fmt.Errorf("failed to open article database: %w", err)
			}
			defer store.Close()

			var lookup media.Lookup
			if cfg.Media.Endpoint != "" {
				lookup = media.NewClient(cfg.Media.Endpoint, cfg.Media.Timeout)
			}

			app := server.Server(&server.ServerConfig{
				Router:       feed.NewRouter(registry),
				Orchestrator: feed.NewOrchestrator(registry, store, lookup, cfg.Site, loc),
				Site:         cfg.Site,
				Expires:      time.Duration(cfg.Feed.ExpiresHours) * time.Hour,
			})

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)

			go func() {
				<-c
				fmt.Println("Gracefully shutting down...")
				app.ShutdownWithTimeout(60 * time.Second)
			}()

			log.WithFields(log.Fields{
				"port":  ctx.Int("port"),
				"feeds": len(registry.List()),
			}).Info("Starting server")
			if err := app.Listen(fmt.Sprintf(":%d", ctx.Int("port"))); err != nil {
				return err
			}

			fmt.Println("Done!")
			return nil
		},
	}
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	if path := ctx.String("config"); path != "" {
		return config.LoadConfig(path)
	}
	return config.Default(), nil
}
