// Package trade implements the merchant-side face-to-face payment
// operations: precreate (QR generation), query, cancel, and refund.
package trade

import (
	"context"
	"log"

	"qrpay/internal/alipay"

	"github.com/shopspring/decimal"
)

type service struct {
	client    Executor
	notifyURL string
}

// NewService builds the trade service. notifyURL is the callback address
// attached to every precreate; it is configured once at startup.
func NewService(client Executor, notifyURL string) Service {
	return &service{client: client, notifyURL: notifyURL}
}

type precreateContent struct {
	OutTradeNo  string `json:"out_trade_no"`
	TotalAmount string `json:"total_amount"`
	Subject     string `json:"subject"`
}

type orderContent struct {
	OutTradeNo string `json:"out_trade_no"`
}

type refundContent struct {
	OutTradeNo   string `json:"out_trade_no"`
	RefundAmount string `json:"refund_amount"`
	RefundReason string `json:"refund_reason,omitempty"`
}

func (s *service) CreateQRPayment(ctx context.Context, orderID string, amount decimal.Decimal, subject string) (string, error) {
	result, err := s.client.Execute(ctx, alipay.MethodTradePrecreate, precreateContent{
		OutTradeNo:  orderID,
		TotalAmount: amount.StringFixed(2),
		Subject:     subject,
	}, alipay.WithNotifyURL(s.notifyURL))
	if err != nil {
		log.Printf("precreate failed: order_id=%s: %v", orderID, err)
		return "", err
	}

	qrCode := result.String("qr_code")
	if qrCode == "" {
		log.Printf("precreate succeeded without qr_code: order_id=%s", orderID)
		return "", ErrNoQRCode
	}

	log.Printf("QR payment created: order_id=%s", orderID)
	return qrCode, nil
}

func (s *service) QueryOrder(ctx context.Context, orderID string) (alipay.Result, error) {
	result, err := s.client.Execute(ctx, alipay.MethodTradeQuery, orderContent{OutTradeNo: orderID})
	if err != nil {
		log.Printf("order query failed: order_id=%s: %v", orderID, err)
		return nil, err
	}
	return result, nil
}

func (s *service) CancelOrder(ctx context.Context, orderID string) (alipay.Result, error) {
	result, err := s.client.Execute(ctx, alipay.MethodTradeCancel, orderContent{OutTradeNo: orderID})
	if err != nil {
		log.Printf("order cancel failed: order_id=%s: %v", orderID, err)
		return nil, err
	}
	log.Printf("order cancelled: order_id=%s", orderID)
	return result, nil
}

func (s *service) Refund(ctx context.Context, orderID string, amount decimal.Decimal, reason string) (alipay.Result, error) {
	result, err := s.client.Execute(ctx, alipay.MethodTradeRefund, refundContent{
		OutTradeNo:   orderID,
		RefundAmount: amount.StringFixed(2),
		RefundReason: reason,
	})
	if err != nil {
		log.Printf("refund failed: order_id=%s: %v", orderID, err)
		return nil, err
	}
	log.Printf("refund accepted: order_id=%s amount=%s", orderID, amount.StringFixed(2))
	return result, nil
}
