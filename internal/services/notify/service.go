// Package notify verifies the gateway's asynchronous payment callbacks and
// dispatches their trade status to the embedding application.
package notify

import (
	"context"
	"log"

	"qrpay/internal/sign"
)

// Acknowledgement bodies the gateway understands. These are bit-exact wire
// contract: anything other than AckSuccess makes the gateway redeliver.
const (
	AckSuccess = "success"
	AckFail    = "fail"
)

// Trade statuses the gateway reports.
const (
	StatusTradeSuccess  = "TRADE_SUCCESS"
	StatusTradeFinished = "TRADE_FINISHED"
	StatusTradeClosed   = "TRADE_CLOSED"
	StatusWaitBuyerPay  = "WAIT_BUYER_PAY"
)

// Verifier checks a gateway signature over canonical content.
type Verifier interface {
	Verify(content, signature string) bool
}

// StatusHandler receives verified notifications. It is the extension point
// for fulfillment, ledger updates, and deduplication; deliveries are not
// deduplicated here, so implementations must tolerate repeats.
type StatusHandler interface {
	OnTradeStatus(ctx context.Context, status, orderID string, params map[string]string) error
}

// LoggingHandler is the default StatusHandler: it logs the notification and
// does nothing else.
type LoggingHandler struct{}

func (LoggingHandler) OnTradeStatus(_ context.Context, status, orderID string, params map[string]string) error {
	log.Printf("notify: trade_status=%s order_id=%s trade_no=%s amount=%s",
		status, orderID, params["trade_no"], params["total_amount"])
	return nil
}

// Service handles one notification delivery and returns the acknowledgement
// body to send back.
type Service interface {
	Handle(ctx context.Context, params map[string]string) string
}

type service struct {
	verifier Verifier
	handler  StatusHandler
}

func NewService(verifier Verifier, handler StatusHandler) Service {
	if handler == nil {
		handler = LoggingHandler{}
	}
	return &service{verifier: verifier, handler: handler}
}

// Handle verifies the callback signature and dispatches the trade status.
// params is consumed: sign and sign_type are removed before the canonical
// content is built, per the gateway's verification rule.
func (s *service) Handle(ctx context.Context, params map[string]string) string {
	signature := params["sign"]
	delete(params, "sign")
	delete(params, "sign_type")

	if signature == "" {
		log.Println("notify: callback without sign field")
		return AckFail
	}

	if !s.verifier.Verify(sign.Content(params), signature) {
		log.Printf("notify: signature check failed: order_id=%s", params["out_trade_no"])
		return AckFail
	}

	status := params["trade_status"]
	orderID := params["out_trade_no"]

	switch status {
	case StatusTradeSuccess, StatusTradeFinished:
		log.Printf("notify: order paid: order_id=%s", orderID)
	case StatusTradeClosed:
		log.Printf("notify: order closed: order_id=%s", orderID)
	case StatusWaitBuyerPay:
		log.Printf("notify: order awaiting payment: order_id=%s", orderID)
	default:
		log.Printf("notify: unhandled trade status %q: order_id=%s", status, orderID)
	}

	// Receipt is acknowledged for every status once the signature checks
	// out; a handler failure must not trigger gateway redelivery.
	if err := s.handler.OnTradeStatus(ctx, status, orderID, params); err != nil {
		log.Printf("notify: status handler: order_id=%s: %v", orderID, err)
	}
	return AckSuccess
}
