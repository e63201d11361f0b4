// Package payment is the card gateway adapter (Paymentsense transactions API).
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

var _ ports.PaymentGateway = (*Gateway)(nil)

// Config gateway endpoint and credentials.
type Config struct {
	URL             string
	Token           string // bearer JWT
	GatewayUsername string
	Timeout         time.Duration
}

// Gateway charges cards through the gateway's REST API using net/http.
type Gateway struct {
	cfg        Config
	httpClient *http.Client
}

// NewGateway builds the adapter.
func NewGateway(cfg Config) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Gateway{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// ── wire format ──────────────────────────────────────────────────────────────

type chargeRequest struct {
	Amount         int64       `json:"amount"` // minor units
	Currency       string      `json:"currency"`
	CardDetails    cardDetails `json:"cardDetails"`
	OrderReference string      `json:"orderReference"`
}

type cardDetails struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	ID            string `json:"id"`
	Message       string `json:"message"`
}

// ── port ─────────────────────────────────────────────────────────────────────

// Charge posts the transaction. The charge succeeded only when the gateway answers status "success";
// any other answer, including non-2xx responses, is a declined result.
func (g *Gateway) Charge(ctx context.Context, in ports.ChargeRequest) (*ports.ChargeResult, error) {
	if g.cfg.URL == "" {
		return nil, fmt.Errorf("payment: gateway URL not configured")
	}
	payload := chargeRequest{
		Amount:   MinorUnits(in.Amount),
		Currency: in.Currency,
		CardDetails: cardDetails{
			CardHolderName: in.CardHolderName,
			CardNumber:     in.CardNumber,
			ExpiryDate:     in.ExpiryDate,
			CVV:            in.CVV,
		},
		OrderReference: in.OrderReference,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payment: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payment: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	req.Header.Set("Gateway-Username", g.cfg.GatewayUsername)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("payment: timeout or cancellation: %w", ctx.Err())
		}
		return nil, fmt.Errorf("payment: call gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("payment: read response: %w", err)
	}

	var out chargeResponse
	_ = json.Unmarshal(raw, &out)
	if out.TransactionID == "" {
		out.TransactionID = out.ID
	}
	res := &ports.ChargeResult{
		Success:       resp.StatusCode/100 == 2 && out.Status == "success",
		TransactionID: out.TransactionID,
		Status:        out.Status,
		Message:       out.Message,
	}
	if resp.StatusCode/100 != 2 {
		res.Status = fmt.Sprintf("http_%d", resp.StatusCode)
		if res.Message == "" {
			res.Message = string(raw)
		}
	}
	return res, nil
}

// MinorUnits converts an amount in pounds to pence, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
