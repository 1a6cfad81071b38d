package trade

import (
	"context"

	"qrpay/internal/alipay"

	"github.com/shopspring/decimal"
)

// Executor issues one signed gateway call and returns the decoded result.
type Executor interface {
	Execute(ctx context.Context, method string, bizContent any, opts ...alipay.RequestOption) (alipay.Result, error)
}

// Service exposes the face-to-face trade operations. All four report
// transport failures and gateway rejections as a single error; callers must
// not assume any of them is safe to retry.
type Service interface {
	// CreateQRPayment precreates an order and returns the scannable QR
	// code URL.
	CreateQRPayment(ctx context.Context, orderID string, amount decimal.Decimal, subject string) (string, error)

	// QueryOrder returns the full order detail as reported by the gateway.
	QueryOrder(ctx context.Context, orderID string) (alipay.Result, error)

	// CancelOrder voids an unpaid or paid order.
	CancelOrder(ctx context.Context, orderID string) (alipay.Result, error)

	// Refund refunds amount against the original order. Whether the amount
	// exceeds the original is the gateway's check; its rejection surfaces
	// as a business error.
	Refund(ctx context.Context, orderID string, amount decimal.Decimal, reason string) (alipay.Result, error)
}
