// Package paypal is the thin REST client for the payment provider. The
// payments service never calls it: orders are created and captured by the
// HTTP layer before reconciliation runs.
package paypal

import (
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		http:         resty.New().SetBaseURL(baseURL),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Order is a provider-side checkout order.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Capture is the authoritative result of capturing an order. Amount is the
// figure the provider settled, which may differ from the list price.
type Capture struct {
	OrderID string
	Status  string
	Amount  float64
}

func (c *Client) accessToken() (string, error) {
	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}

	resp, err := c.http.R().
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&tokenResp).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("paypal auth request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal auth failed: %s", resp.String())
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("paypal auth returned empty token")
	}
	return tokenResp.AccessToken, nil
}

// CreateOrder opens a CAPTURE-intent order for the given amount.
func (c *Client) CreateOrder(amount float64, currency, description string) (*Order, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         strconv.FormatFloat(amount, 'f', 2, 64),
				},
				"description": description,
			},
		},
	}

	var order Order
	resp, err := c.http.R().
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&order).
		Post("/v2/checkout/orders")
	if err != nil {
		return nil, fmt.Errorf("paypal create order failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("paypal create order failed: %s", resp.String())
	}
	return &order, nil
}

// CaptureOrder captures a previously approved order and returns the settled
// amount reported by the provider.
func (c *Client) CaptureOrder(orderID string) (*Capture, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	var captureResp struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						Value string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}

	resp, err := c.http.R().
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetResult(&captureResp).
		Post("/v2/checkout/orders/" + orderID + "/capture")
	if err != nil {
		return nil, fmt.Errorf("paypal capture failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("paypal capture failed: %s", resp.String())
	}

	capture := Capture{OrderID: captureResp.ID, Status: captureResp.Status}
	if len(captureResp.PurchaseUnits) > 0 && len(captureResp.PurchaseUnits[0].Payments.Captures) > 0 {
		value := captureResp.PurchaseUnits[0].Payments.Captures[0].Amount.Value
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("paypal capture returned bad amount %q: %w", value, err)
		}
		capture.Amount = amount
	}
	return &capture, nil
}

// SendPayout sends a single payout item to the recipient's PayPal email and
// returns the batch id.
func (c *Client) SendPayout(email string, amount float64, note string) (string, error) {
	token, err := c.accessToken()
	if err != nil {
		return "", err
	}

	batchID := "Payout-" + uuid.NewString()
	body := map[string]interface{}{
		"sender_batch_header": map[string]string{
			"sender_batch_id": batchID,
			"email_subject":   "You have a payout!",
		},
		"items": []map[string]interface{}{
			{
				"recipient_type": "EMAIL",
				"amount": map[string]string{
					"value":    strconv.FormatFloat(amount, 'f', 2, 64),
					"currency": "USD",
				},
				"receiver": email,
				"note":     note,
			},
		},
	}

	resp, err := c.http.R().
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/v1/payments/payouts")
	if err != nil {
		return "", fmt.Errorf("paypal payout failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal payout failed: %s", resp.String())
	}
	return batchID, nil
}
