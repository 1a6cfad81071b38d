// Package routes defines the API routing configuration.
package routes

import (
	"qrpay/internal/handlers"
	"qrpay/internal/services/notify"
	"qrpay/internal/services/trade"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the endpoint handlers onto the app.
func SetupRoutes(app *fiber.App, tradeSvc trade.Service, notifySvc notify.Service) {
	paymentHandler := handlers.NewPaymentHandler(tradeSvc)
	orderHandler := handlers.NewOrderHandler(tradeSvc)
	notifyHandler := handlers.NewNotifyHandler(notifySvc)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/paynow", paymentHandler.PayNow)
	app.Get("/pay/:orderID", paymentHandler.PayPage)

	api := app.Group("/api")
	api.Post("/pay/create", paymentHandler.Create)
	api.Get("/order/query/:orderID", orderHandler.Query)
	api.Post("/order/cancel/:orderID", orderHandler.Cancel)
	api.Post("/refund", paymentHandler.Refund)
	api.Post("/notify", notifyHandler.Receive)
	api.Get("/notify", notifyHandler.Probe)
}
