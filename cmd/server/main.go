// Package main is the entry point for the application.
// It loads configuration, wires the gateway client and services,
// and starts the HTTP server.
package main

import (
	"log"
	"time"

	"qrpay/internal/alipay"
	"qrpay/internal/config"
	"qrpay/internal/routes"
	"qrpay/internal/services/notify"
	"qrpay/internal/services/trade"
	"qrpay/internal/sign"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Parse key material once; bad keys must stop the process here.
	signer, err := sign.NewSigner(cfg.AppPrivateKey, cfg.AlipayPublicKey, sign.Algorithm(cfg.SignType))
	if err != nil {
		log.Fatalf("key material error: %v", err)
	}

	client := alipay.NewClient(alipay.Config{
		AppID:      cfg.AppID,
		GatewayURL: cfg.GatewayURL,
		SignType:   cfg.SignType,
		Format:     cfg.Format,
		Charset:    cfg.Charset,
		Timeout:    cfg.GatewayTimeout,
	}, signer)

	tradeService := trade.NewService(client, cfg.NotifyURL)
	notifyService := notify.NewService(signer, notify.LoggingHandler{})

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use("/paynow", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				SendString("too many requests, please try again later")
		},
	}))

	// Routes
	routes.SetupRoutes(app, tradeService, notifyService)

	// Start server
	log.Printf("listening on %s:%s (sandbox=%v, sign_type=%s)", cfg.Host, cfg.Port, cfg.Sandbox, cfg.SignType)
	log.Fatal(app.Listen(cfg.Host + ":" + cfg.Port))
}
