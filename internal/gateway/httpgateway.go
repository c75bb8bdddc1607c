package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/pkg/clients"
)

// HTTPGateway talks to the payment processor's REST API. Idempotency is
// carried on the Idempotency-Key header, so a retried request cannot
// double-charge.
type HTTPGateway struct {
	baseURL string
	client  clients.HTTPClientI
}

func NewHTTPGateway(baseURL string, client clients.HTTPClientI) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  client,
	}
}

func (g *HTTPGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	var result ChargeResult
	if err := g.post(ctx, "/v1/charges", req.IdempotencyKey, req, &result); err != nil {
		return nil, err
	}
	if result.Status != "succeeded" {
		return nil, fmt.Errorf("%w: gateway status %q", ErrPaymentFailed, result.Status)
	}
	return &result, nil
}

func (g *HTTPGateway) Refund(ctx context.Context, gatewayTxnID string, amount decimal.Decimal) (*RefundResult, error) {
	body := map[string]any{
		"charge": gatewayTxnID,
		"amount": amount,
	}
	var result RefundResult
	if err := g.post(ctx, "/v1/refunds", "", body, &result); err != nil {
		return nil, err
	}
	if result.Status != "succeeded" {
		return nil, fmt.Errorf("%w: gateway status %q", ErrPaymentFailed, result.Status)
	}
	return &result, nil
}

func (g *HTTPGateway) post(ctx context.Context, path, idempotencyKey string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		zap.L().Error("gateway request failed",
			zap.String("path", path),
			zap.String("request", string(payload)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	// Full request and response context is logged before any error is
	// surfaced, whether or not the caller retries.
	switch {
	case resp.StatusCode >= 500:
		zap.L().Error("gateway error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request", string(payload)),
			zap.String("response", string(respBody)),
		)
		return fmt.Errorf("%w: status %d", ErrPaymentGateway, resp.StatusCode)
	case resp.StatusCode >= 400:
		zap.L().Error("gateway declined request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request", string(payload)),
			zap.String("response", string(respBody)),
		)
		return fmt.Errorf("%w: status %d", ErrPaymentFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrPaymentGateway, err)
	}
	return nil
}
