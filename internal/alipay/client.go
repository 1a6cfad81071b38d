// Package alipay speaks the gateway's OpenAPI protocol: form-encoded
// requests over HTTPS, signed with the merchant key, answered with a JSON
// envelope keyed by the method name.
package alipay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"qrpay/internal/sign"

	"github.com/go-resty/resty/v2"
)

// Gateway methods used by the face-to-face flow.
const (
	MethodTradePrecreate = "alipay.trade.precreate"
	MethodTradeQuery     = "alipay.trade.query"
	MethodTradeCancel    = "alipay.trade.cancel"
	MethodTradeRefund    = "alipay.trade.refund"
)

const (
	version    = "1.0"
	timeLayout = "2006-01-02 15:04:05"
)

// Config carries the client settings shared by every request.
type Config struct {
	AppID      string
	GatewayURL string
	SignType   string
	Format     string
	Charset    string
	Timeout    time.Duration
}

// Signer produces the sign field for outbound requests.
type Signer interface {
	Sign(content string) (string, error)
}

// Client is a thin gateway client. The signer is injected so key handling
// stays out of the transport layer.
type Client struct {
	cfg    Config
	signer Signer
	http   *resty.Client
}

func NewClient(cfg Config, signer Signer) *Client {
	return &Client{
		cfg:    cfg,
		signer: signer,
		http:   resty.New().SetTimeout(cfg.Timeout),
	}
}

// RequestOption mutates the common parameter set before signing.
type RequestOption func(params map[string]string)

// WithNotifyURL sets the asynchronous callback address for the request.
func WithNotifyURL(notifyURL string) RequestOption {
	return func(params map[string]string) {
		if notifyURL != "" {
			params["notify_url"] = notifyURL
		}
	}
}

// Execute signs and posts one gateway call and returns the decoded business
// result. Transport failures and non-2xx statuses are plain errors;
// business rejections come back as *errors.DomainError from the parser.
// There is no retry at this layer.
func (c *Client) Execute(ctx context.Context, method string, bizContent any, opts ...RequestOption) (Result, error) {
	biz, err := json.Marshal(bizContent)
	if err != nil {
		return nil, fmt.Errorf("marshal biz_content: %w", err)
	}

	params := map[string]string{
		"app_id":      c.cfg.AppID,
		"method":      method,
		"format":      c.cfg.Format,
		"charset":     c.cfg.Charset,
		"sign_type":   c.cfg.SignType,
		"timestamp":   time.Now().Format(timeLayout),
		"version":     version,
		"biz_content": string(biz),
	}
	for _, opt := range opts {
		opt(params)
	}

	signature, err := c.signer.Sign(sign.Content(params))
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	params["sign"] = signature

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded;charset="+c.cfg.Charset).
		SetBody(form.Encode()).
		Post(c.cfg.GatewayURL)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("gateway request: HTTP %d", resp.StatusCode())
	}

	return ParseResponse(resp.Body(), EnvelopeKey(method))
}

// EnvelopeKey maps a method name to its response envelope field, e.g.
// alipay.trade.precreate -> alipay_trade_precreate_response.
func EnvelopeKey(method string) string {
	return strings.ReplaceAll(method, ".", "_") + "_response"
}
