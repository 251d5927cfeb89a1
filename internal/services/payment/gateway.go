package payment

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chefhire_backend/internal/config"
	"chefhire_backend/pkg/apperrors"
)

// GatewayStatus is the raw state reported by the hosted payment page.
type GatewayStatus string

const (
	GatewayPending   GatewayStatus = "PENDING"
	GatewaySuccess   GatewayStatus = "SUCCESS"
	GatewayFailed    GatewayStatus = "FAILED"
	GatewayCancelled GatewayStatus = "CANCELLED"
)

// Gateway talks to the hosted checkout provider. Signatures follow the
// robokassa convention: md5 over colon-joined fields with a shared password.
type Gateway interface {
	// CheckoutURL builds the hosted payment page URL for an order.
	CheckoutURL(invID string, amount float64, description string) string
	// VerifyResultSignature validates a callback signature (password #2).
	VerifyResultSignature(invID string, amount float64, signature string) bool
	// QueryStatus asks the provider for the current state of an invoice.
	QueryStatus(ctx context.Context, invID string) (GatewayStatus, error)
}

type gateway struct {
	cfg    *config.Config
	client *http.Client
}

func NewGateway(cfg *config.Config) Gateway {
	return &gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *gateway) CheckoutURL(invID string, amount float64, description string) string {
	p := g.cfg.Payment
	outSum := formatAmount(amount)
	sig := md5Hex(strings.Join([]string{p.MerchantLogin, outSum, invID, p.Password1}, ":"))

	q := url.Values{}
	q.Set("MerchantLogin", p.MerchantLogin)
	q.Set("OutSum", outSum)
	q.Set("InvId", invID)
	q.Set("Description", description)
	q.Set("SignatureValue", sig)
	q.Set("Culture", "en")

	return p.BaseURL + "?" + q.Encode()
}

func (g *gateway) VerifyResultSignature(invID string, amount float64, signature string) bool {
	p := g.cfg.Payment
	expected := md5Hex(strings.Join([]string{formatAmount(amount), invID, p.Password2}, ":"))
	return strings.EqualFold(expected, signature)
}

type statusReply struct {
	InvID  string `json:"inv_id"`
	Status string `json:"status"`
}

func (g *gateway) QueryStatus(ctx context.Context, invID string) (GatewayStatus, error) {
	p := g.cfg.Payment

	q := url.Values{}
	q.Set("MerchantLogin", p.MerchantLogin)
	q.Set("InvId", invID)
	q.Set("SignatureValue", md5Hex(strings.Join([]string{p.MerchantLogin, invID, p.Password2}, ":")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.StatusURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", gatewayError(err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", gatewayError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", gatewayError(fmt.Errorf("status endpoint returned %d", resp.StatusCode))
	}

	var reply statusReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", gatewayError(err)
	}

	switch GatewayStatus(strings.ToUpper(reply.Status)) {
	case GatewaySuccess:
		return GatewaySuccess, nil
	case GatewayFailed:
		return GatewayFailed, nil
	case GatewayCancelled:
		return GatewayCancelled, nil
	default:
		return GatewayPending, nil
	}
}

func gatewayError(err error) *apperrors.AppError {
	return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "payment",
		"Payment provider error", http.StatusServiceUnavailable)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func md5Hex(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}
