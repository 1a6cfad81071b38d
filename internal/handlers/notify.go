package handlers

import (
	"log"
	"net/url"

	"qrpay/internal/services/notify"

	"github.com/gofiber/fiber/v2"
)

type NotifyHandler struct {
	notify notify.Service
}

func NewNotifyHandler(notifySvc notify.Service) *NotifyHandler {
	return &NotifyHandler{notify: notifySvc}
}

// Receive handles the gateway's asynchronous callback. The plain-text body
// is part of the external contract: the gateway redelivers until it reads
// the literal "success".
func (h *NotifyHandler) Receive(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		log.Printf("notify: malformed callback body: %v", err)
		return c.SendString(notify.AckFail)
	}

	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}

	return c.SendString(h.notify.Handle(c.Context(), params))
}

// Probe answers liveness checks against the callback address.
func (h *NotifyHandler) Probe(c *fiber.Ctx) error {
	return c.SendString("notify endpoint ok")
}
