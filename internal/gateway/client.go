// Package gateway is the typed client for the remote CTL-Pay REST API.
// It is the only place that talks to the network: responses are decoded
// into per-endpoint schemas here and every schema mismatch is reported as
// a server rejection, so the services above never see raw JSON.
package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"ctlpay/internal/errors"
	"ctlpay/internal/models"
)

const healthOKMarker = "OK"

// Client calls the remote CTL-Pay service with a bounded timeout per call.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		panic("base URL is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &fasthttp.Client{},
	}
}

// Health probes the liveness endpoint. A transport-level success is not
// enough: the body must carry the OK marker, otherwise the probe fails.
func (c *Client) Health(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return err
	}

	var health healthResponse
	if err := sonic.Unmarshal(body, &health); err != nil {
		return errors.Unreachable(err)
	}
	if health.Status != healthOKMarker {
		return errors.ErrServerUnreachable.WithMessage("réponse serveur invalide")
	}
	return nil
}

// GetTransaction fetches a pending transaction by identifier.
func (c *Client) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/transaction/"+id, nil)
	if err != nil {
		return nil, err
	}

	var resp transactionResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, errors.Rejected("réponse serveur illisible")
	}
	if !resp.Success {
		return nil, errors.Rejected(resp.Error)
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, errors.Rejected("transaction non trouvée")
	}
	return resp.Data, nil
}

// PayTransaction settles a pending transaction against the user balance.
// It returns the server's view of the transaction and the new balance.
func (c *Client) PayTransaction(ctx context.Context, id string) (*models.Transaction, int64, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/transaction/"+id+"/payer", nil)
	if err != nil {
		return nil, 0, err
	}

	var resp payResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, 0, errors.Rejected("réponse serveur illisible")
	}
	if !resp.Success {
		return nil, 0, errors.Rejected(resp.Error)
	}
	if resp.Data == nil || resp.Data.ID == "" || resp.NewBalance == nil {
		return nil, 0, errors.Rejected("réponse de paiement incomplète")
	}
	return resp.Data, *resp.NewBalance, nil
}

// GetBalance fetches the authoritative user balance.
func (c *Client) GetBalance(ctx context.Context) (int64, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/solde/utilisateur", nil)
	if err != nil {
		return 0, err
	}

	var resp balanceResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return 0, errors.Rejected("réponse serveur illisible")
	}
	if !resp.Success {
		return 0, errors.Rejected(resp.Error)
	}
	if resp.Balance == nil {
		return 0, errors.Rejected("réponse de solde incomplète")
	}
	return *resp.Balance, nil
}

// Recharge tops up the user balance through a mobile-money operator. It
// returns the server-declared new balance and confirmation message.
func (c *Client) Recharge(ctx context.Context, amount int64, operator string) (int64, string, error) {
	payload, err := sonic.Marshal(rechargeRequest{Amount: amount, Operator: operator})
	if err != nil {
		return 0, "", errors.Rejected("requête de rechargement invalide")
	}

	body, err := c.do(ctx, http.MethodPost, "/api/solde/utilisateur/recharger", payload)
	if err != nil {
		return 0, "", err
	}

	var resp rechargeResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return 0, "", errors.Rejected("réponse serveur illisible")
	}
	if !resp.Success {
		return 0, "", errors.Rejected(resp.Error)
	}
	if resp.NewBalance == nil {
		return 0, "", errors.Rejected("réponse de rechargement incomplète")
	}
	return *resp.NewBalance, resp.Message, nil
}

// do performs one bounded request and returns the response body. Transport
// failures and non-2xx statuses map to NETWORK_UNREACHABLE. The context is
// honored as an additional upper bound on the call deadline.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if payload != nil {
		req.SetBody(payload)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, errors.Unreachable(ctx.Err())
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, errors.Unreachable(err)
	}

	statusCode := resp.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, errors.ErrServerUnreachable.WithMessage("erreur HTTP: %d", statusCode)
	}

	// The body buffer is reused once the response is released.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
