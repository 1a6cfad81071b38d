package handlers

import (
	"log"

	"qrpay/internal/services/trade"
	"qrpay/internal/utils/response"
	"qrpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	trade trade.Service
}

func NewOrderHandler(tradeSvc trade.Service) *OrderHandler {
	return &OrderHandler{trade: tradeSvc}
}

// Query returns the gateway's view of an order.
func (h *OrderHandler) Query(c *fiber.Ctx) error {
	orderID, err := validation.Required("order_id", c.Params("orderID"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.trade.QueryOrder(c.Context(), orderID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	log.Printf("order queried: order_id=%s status=%s", orderID, result.String("trade_status"))
	return response.Success(c, fiber.Map{
		"order_id":     orderID,
		"trade_status": result.String("trade_status"),
		"amount":       result.String("total_amount"),
		"data":         result,
	})
}

// Cancel voids an order.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	orderID, err := validation.Required("order_id", c.Params("orderID"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.trade.CancelOrder(c.Context(), orderID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, fiber.Map{"data": result})
}
