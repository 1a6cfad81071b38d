package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// Gateway endpoints, selected by the sandbox flag.
const (
	gatewayURL        = "https://openapi.alipay.com/gateway.do"
	sandboxGatewayURL = "https://openapi.alipaydev.com/gateway.do"
)

// Config holds everything the service reads from the environment. It is
// loaded once at startup and never mutated afterwards.
type Config struct {
	AppID           string
	AppPrivateKey   string
	AlipayPublicKey string
	SignType        string
	Format          string
	Charset         string
	Sandbox         bool
	GatewayURL      string
	NotifyURL       string
	ReturnURL       string
	Host            string
	Port            string
	GatewayTimeout  time.Duration
}

// Load reads and validates the configuration. A missing credential is a
// fatal startup error: the caller must not start the server.
func Load() (*Config, error) {
	cfg := &Config{
		AppID:           strings.TrimSpace(os.Getenv("ALIPAY_APP_ID")),
		AppPrivateKey:   strings.TrimSpace(os.Getenv("ALIPAY_APP_PRIVATE_KEY")),
		AlipayPublicKey: strings.TrimSpace(os.Getenv("ALIPAY_PUBLIC_KEY")),
		SignType:        strings.ToUpper(GetEnv("ALIPAY_SIGN_TYPE", "RSA2")),
		Format:          strings.ToLower(GetEnv("ALIPAY_FORMAT", "json")),
		Charset:         strings.ToLower(GetEnv("ALIPAY_CHARSET", "utf-8")),
		NotifyURL:       strings.TrimSpace(GetEnv("ALIPAY_NOTIFY_URL", "http://localhost:5000/api/notify")),
		ReturnURL:       strings.TrimSpace(GetEnv("ALIPAY_RETURN_URL", "http://localhost:5000/alipay/return")),
		Host:            GetEnv("HOST", "0.0.0.0"),
		Port:            GetEnv("PORT", "5000"),
	}

	for _, required := range []struct{ name, value string }{
		{"ALIPAY_APP_ID", cfg.AppID},
		{"ALIPAY_APP_PRIVATE_KEY", cfg.AppPrivateKey},
		{"ALIPAY_PUBLIC_KEY", cfg.AlipayPublicKey},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("missing required configuration %s", required.name)
		}
	}

	switch strings.ToLower(GetEnv("ALIPAY_IS_SANDBOX", "false")) {
	case "true", "1", "yes", "on":
		cfg.Sandbox = true
	}
	cfg.GatewayURL = gatewayURL
	if cfg.Sandbox {
		cfg.GatewayURL = sandboxGatewayURL
	}

	timeout, err := time.ParseDuration(GetEnv("GATEWAY_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}
	cfg.GatewayTimeout = timeout

	return cfg, nil
}
