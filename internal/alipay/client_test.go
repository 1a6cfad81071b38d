package alipay

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	appErrors "qrpay/internal/errors"
	"qrpay/internal/sign"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) (*sign.Signer, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	private := base64.StdEncoding.EncodeToString(privDER)
	public := base64.StdEncoding.EncodeToString(pubDER)

	signer, err := sign.NewSigner(private, public, sign.RSA2)
	require.NoError(t, err)
	return signer, public
}

func testConfig(gatewayURL string) Config {
	return Config{
		AppID:      "2021001122334455",
		GatewayURL: gatewayURL,
		SignType:   "RSA2",
		Format:     "json",
		Charset:    "utf-8",
		Timeout:    5 * time.Second,
	}
}

func TestClientExecute(t *testing.T) {
	signer, publicKey := newTestSigner(t)

	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"alipay_trade_precreate_response":{"code":"10000","msg":"Success","qr_code":"https://qr.alipay.com/bax1234"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), signer)

	result, err := client.Execute(context.Background(), MethodTradePrecreate,
		map[string]string{"out_trade_no": "20240101", "total_amount": "0.01", "subject": "test"},
		WithNotifyURL("http://merchant.example/api/notify"))
	require.NoError(t, err)
	assert.Equal(t, "https://qr.alipay.com/bax1234", result.String("qr_code"))

	assert.Equal(t, "2021001122334455", form.Get("app_id"))
	assert.Equal(t, MethodTradePrecreate, form.Get("method"))
	assert.Equal(t, "RSA2", form.Get("sign_type"))
	assert.Equal(t, "http://merchant.example/api/notify", form.Get("notify_url"))
	assert.Contains(t, form.Get("biz_content"), `"out_trade_no":"20240101"`)
	assert.NotEmpty(t, form.Get("timestamp"))

	// The sign field must verify over the canonical content of exactly
	// what was posted.
	params := make(map[string]string, len(form))
	for key := range form {
		params[key] = form.Get(key)
	}
	assert.True(t, sign.Verify(sign.Content(params), form.Get("sign"), publicKey, sign.RSA2))
}

func TestClientExecuteBusinessError(t *testing.T) {
	signer, _ := newTestSigner(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"alipay_trade_query_response":{"code":"40004","msg":"Business Failed","sub_code":"ACQ.TRADE_NOT_EXIST","sub_msg":"交易不存在"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), signer)

	_, err := client.Execute(context.Background(), MethodTradeQuery, map[string]string{"out_trade_no": "missing"})
	require.Error(t, err)

	var domainErr *appErrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACQ.TRADE_NOT_EXIST", domainErr.Code)
}

func TestClientExecuteHTTPError(t *testing.T) {
	signer, _ := newTestSigner(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), signer)

	_, err := client.Execute(context.Background(), MethodTradeCancel, map[string]string{"out_trade_no": "1"})
	require.Error(t, err)

	var domainErr *appErrors.DomainError
	assert.False(t, errors.As(err, &domainErr), "transport failures are not business errors")
}

func TestClientExecuteTransportFailure(t *testing.T) {
	signer, _ := newTestSigner(t)

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(testConfig(srv.URL), signer)

	_, err := client.Execute(context.Background(), MethodTradeQuery, map[string]string{"out_trade_no": "1"})
	assert.Error(t, err)
}

type failingSigner struct{}

func (failingSigner) Sign(string) (string, error) {
	return "", errors.New("no key loaded")
}

func TestClientExecuteSignerFailure(t *testing.T) {
	client := NewClient(testConfig("http://gateway.invalid"), failingSigner{})

	_, err := client.Execute(context.Background(), MethodTradeQuery, map[string]string{"out_trade_no": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign request")
}
