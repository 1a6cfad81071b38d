package handlers_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"qrpay/internal/routes"
	"qrpay/internal/services/notify"
	"qrpay/internal/sign"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSigner(t *testing.T) *sign.Signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	signer, err := sign.NewSigner(
		base64.StdEncoding.EncodeToString(privDER),
		base64.StdEncoding.EncodeToString(pubDER),
		sign.RSA2,
	)
	require.NoError(t, err)
	return signer
}

func newNotifyApp(t *testing.T) (*fiber.App, *sign.Signer) {
	t.Helper()

	signer := mustSigner(t)
	app := fiber.New()
	routes.SetupRoutes(app, &stubTradeService{}, notify.NewService(signer, nil))
	return app, signer
}

func postNotify(t *testing.T, app *fiber.App, form url.Values) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/notify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func signedForm(t *testing.T, signer *sign.Signer, params map[string]string) url.Values {
	t.Helper()

	signature, err := signer.Sign(sign.Content(params))
	require.NoError(t, err)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("sign", signature)
	form.Set("sign_type", "RSA2")
	return form
}

func TestNotifyEndpoint(t *testing.T) {
	params := map[string]string{
		"notify_id":    "2024010112345",
		"out_trade_no": "20240101",
		"trade_no":     "2024010122001",
		"trade_status": "TRADE_SUCCESS",
		"total_amount": "0.01",
	}

	t.Run("missing sign returns the literal fail", func(t *testing.T) {
		app, _ := newNotifyApp(t)

		form := url.Values{}
		for k, v := range params {
			form.Set(k, v)
		}
		assert.Equal(t, "fail", postNotify(t, app, form))
	})

	t.Run("invalid signature returns the literal fail", func(t *testing.T) {
		app, signer := newNotifyApp(t)

		form := signedForm(t, signer, params)
		form.Set("total_amount", "9999.00")
		assert.Equal(t, "fail", postNotify(t, app, form))
	})

	t.Run("valid TRADE_SUCCESS returns the literal success", func(t *testing.T) {
		app, signer := newNotifyApp(t)
		assert.Equal(t, "success", postNotify(t, app, signedForm(t, signer, params)))
	})

	t.Run("valid unknown status still returns success", func(t *testing.T) {
		app, signer := newNotifyApp(t)

		unknown := map[string]string{
			"out_trade_no": "20240101",
			"trade_status": "TRADE_PENDING_SETTLE",
		}
		assert.Equal(t, "success", postNotify(t, app, signedForm(t, signer, unknown)))
	})

	t.Run("liveness probe answers GET", func(t *testing.T) {
		app, _ := newNotifyApp(t)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/notify", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "notify endpoint ok", string(body))
	})
}
