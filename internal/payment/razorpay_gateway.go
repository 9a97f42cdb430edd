package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"velora-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

// Razorpay caps a single online payment regardless of merchant settings.
var gatewayHardCeiling = decimal.NewFromInt(500000)

// GatewayHardCeiling returns the absolute per-payment limit the gateway
// enforces; the configured merchant ceiling can only lower it.
func GatewayHardCeiling() decimal.Decimal {
	return gatewayHardCeiling
}

type razorpayGateway struct {
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("receipt", receipt),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("currency", currency),
	)

	// The gateway bills in minor units.
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	body := map[string]interface{}{
		"amount":   minor,
		"currency": currency,
		"receipt":  receipt,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal order request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", razorpayBaseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Add("Content-Type", "application/json")

	log.Info("creating gateway order")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("gateway request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("gateway error: %s", string(bodyBytes))
	}

	var res struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding gateway response", zap.Error(err))
		return nil, err
	}

	log.Info("gateway order created",
		zap.String("gateway_order_id", res.ID),
		zap.String("status", res.Status),
	)

	return &GatewayOrder{
		ID:       res.ID,
		Amount:   res.Amount,
		Currency: res.Currency,
		Receipt:  res.Receipt,
	}, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	if !ValidSignature(gatewayOrderID, gatewayPaymentID, signature, g.keySecret) {
		return ErrSignatureInvalid
	}
	return nil
}
