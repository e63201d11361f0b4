package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

func charge() ports.ChargeRequest {
	return ports.ChargeRequest{
		Amount:         decimal.RequireFromString("29.40"),
		Currency:       "GBP",
		CardHolderName: "A Shopkeeper",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/30",
		CVV:            "123",
		OrderReference: "ORDER-1",
	}
}

func TestCharge_Success(t *testing.T) {
	var got chargeRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success","transactionId":"tx-42"}`))
	}))
	defer srv.Close()

	g := NewGateway(Config{URL: srv.URL, Token: "jwt-token", GatewayUsername: "merchant"})
	res, err := g.Charge(context.Background(), charge())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "tx-42", res.TransactionID)
	assert.Equal(t, int64(2940), got.Amount)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, "4111111111111111", got.CardDetails.CardNumber)
	assert.Equal(t, "ORDER-1", got.OrderReference)
	assert.Equal(t, "Bearer jwt-token", headers.Get("Authorization"))
	assert.Equal(t, "merchant", headers.Get("Gateway-Username"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
}

func TestCharge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"declined","message":"insufficient funds"}`))
	}))
	defer srv.Close()

	res, err := NewGateway(Config{URL: srv.URL}).Charge(context.Background(), charge())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "insufficient funds", res.Message)
}

func TestCharge_HTTPErrorIsDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	res, err := NewGateway(Config{URL: srv.URL}).Charge(context.Background(), charge())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "http_401", res.Status)
}

func TestCharge_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewGateway(Config{URL: srv.URL, Timeout: 20 * time.Millisecond}).Charge(context.Background(), charge())
	assert.Error(t, err)

	_, err = NewGateway(Config{}).Charge(context.Background(), charge())
	assert.Error(t, err)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(150), MinorUnits(decimal.RequireFromString("1.5")))
	assert.Equal(t, int64(1), MinorUnits(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(123456), MinorUnits(decimal.RequireFromString("1234.56")))
}
