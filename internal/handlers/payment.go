package handlers

import (
	"log"
	"net/url"
	"strings"

	"qrpay/internal/services/trade"
	"qrpay/internal/utils/response"
	"qrpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	trade trade.Service
}

func NewPaymentHandler(tradeSvc trade.Service) *PaymentHandler {
	return &PaymentHandler{trade: tradeSvc}
}

// PayNow creates a payment straight from a browser link and renders the QR
// page. Errors come back as plain text so the page stays linkable from
// anywhere.
func (h *PaymentHandler) PayNow(c *fiber.Ctx) error {
	raw := c.Query("total_amount")
	if raw == "" {
		raw = c.Query("amount")
	}

	amount, err := validation.Amount("amount", raw)
	if err != nil {
		log.Printf("paynow rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	subject, err := validation.Required("subject", c.Query("subject"))
	if err != nil {
		log.Printf("paynow rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	orderID := validation.OrderID(c.Query("out_trade_no"))

	qrCode, err := h.trade.CreateQRPayment(c.Context(), orderID, amount, subject)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("payment creation failed: " + err.Error())
	}

	c.Type("html", "utf-8")
	return c.SendString(payPage(orderID, qrCode, amount.String(), subject))
}

// PayPage re-renders the QR page for an already created order. The qr query
// parameter carries the code URL returned by Create, so no gateway call is
// needed here.
func (h *PaymentHandler) PayPage(c *fiber.Ctx) error {
	orderID, err := validation.Required("order_id", c.Params("orderID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	qrCode, err := validation.Required("qr", c.Query("qr"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	c.Type("html", "utf-8")
	return c.SendString(payPage(orderID, qrCode, c.Query("amount"), c.Query("subject")))
}

type createRequest struct {
	OutTradeNo  string `json:"out_trade_no"`
	TotalAmount any    `json:"total_amount"`
	Subject     string `json:"subject"`
}

// Create precreates an order and returns the QR code URL as JSON.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	amount, err := validation.Amount("total_amount", req.TotalAmount)
	if err != nil {
		log.Printf("create payment rejected: %v", err)
		return response.BadRequest(c, err.Error())
	}
	subject, err := validation.Required("subject", req.Subject)
	if err != nil {
		log.Printf("create payment rejected: %v", err)
		return response.BadRequest(c, err.Error())
	}
	orderID := validation.OrderID(req.OutTradeNo)

	qrCode, err := h.trade.CreateQRPayment(c.Context(), orderID, amount, subject)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	page := url.Values{}
	page.Set("qr", qrCode)
	page.Set("amount", amount.String())
	page.Set("subject", subject)

	return response.Success(c, fiber.Map{
		"qr_code":  qrCode,
		"pay_url":  c.BaseURL() + "/pay/" + orderID + "?" + page.Encode(),
		"order_id": orderID,
		"amount":   amount.InexactFloat64(),
		"subject":  subject,
	})
}

type refundRequest struct {
	OutTradeNo   string `json:"out_trade_no"`
	RefundAmount any    `json:"refund_amount"`
	Reason       string `json:"reason"`
}

// Refund refunds part or all of a paid order. Amount limits are the
// gateway's check and surface here as business errors.
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	var req refundRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	orderID, err := validation.Required("out_trade_no", req.OutTradeNo)
	if err != nil {
		log.Printf("refund rejected: %v", err)
		return response.BadRequest(c, err.Error())
	}
	amount, err := validation.Amount("refund_amount", req.RefundAmount)
	if err != nil {
		log.Printf("refund rejected: %v", err)
		return response.BadRequest(c, err.Error())
	}

	result, err := h.trade.Refund(c.Context(), orderID, amount, strings.TrimSpace(req.Reason))
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"data":    result,
		"message": "refund succeeded",
	})
}
