package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"rssdelivery/config"
	"rssdelivery/feed"
)

type ServerConfig struct {

	// Router resolving request paths to feed identifiers
	Router *feed.Router

	// Orchestrator rendering the resolved feed documents
	Orchestrator *feed.Orchestrator

	// Site settings for response headers
	Site config.Site

	// How long delivered documents stay fresh
	Expires time.Duration
}

// Returns a fiber.App instance serving the partner feed documents
func Server(cfg *ServerConfig) *fiber.App {

	app := fiber.New()

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		// start timer
		start := time.Now()

		// next routes
		err := c.Next()

		// stop timer
		stop := time.Now()

		// Diff
		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"latency": stop.Sub(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	// Rendered documents only change when articles do, so successful
	// responses are cached for the same window the Expires header promises.
	app.Use(cache.New(cache.Config{
		Expiration: cfg.Expires,
		Next: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return true
			}
			_, ok := cfg.Router.Resolve(c.Path())
			return !ok
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Path()
		},
	}))

	charset := cfg.Site.Charset
	if charset == "" {
		charset = "UTF-8"
	}

	app.Get("/feed/:id", func(c *fiber.Ctx) error {
		id, ok := cfg.Router.Resolve(c.Path())
		if !ok {
			// Not one of ours; let the request fall through to the 404
			// handler below.
			return c.Next()
		}

		body, err := cfg.Orchestrator.Render(c.UserContext(), id)
		if err != nil {
			log.WithFields(log.Fields{
				"feed":  id,
				"error": err,
			}).Error("Error rendering feed document")
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		c.Set(fiber.HeaderContentType, fmt.Sprintf("text/xml; charset=%s", charset))
		c.Set(fiber.HeaderExpires, time.Now().Add(cfg.Expires).UTC().Format(http.TimeFormat))
		return c.Send(body)
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	return app
}
