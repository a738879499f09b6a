package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type apiClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newAPIClient(apiKey string, timeout time.Duration) *apiClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &apiClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) createIntent(ctx context.Context, values url.Values, idempotencyKey string) (paymentIntent, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/payment_intents", values, idempotencyKey)
}

func (c *apiClient) updateIntent(ctx context.Context, intentID string, values url.Values) (paymentIntent, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/payment_intents/"+intentID, values, "")
}

func (c *apiClient) retrieveIntent(ctx context.Context, intentID string) (paymentIntent, error) {
	return c.doRequest(ctx, http.MethodGet, "/v1/payment_intents/"+intentID, nil, "")
}

func (c *apiClient) doRequest(
	ctx context.Context,
	method string,
	path string,
	values url.Values,
	idempotencyKey string,
) (paymentIntent, error) {
	var bodyReader *strings.Reader
	if values != nil {
		bodyReader = strings.NewReader(values.Encode())
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return paymentIntent{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return paymentIntent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return paymentIntent{}, errors.New("stripe request failed")
		}
		message := strings.TrimSpace(apiErr.Error.Message)
		if message == "" {
			message = "stripe request failed"
		}
		return paymentIntent{}, errors.New(message)
	}

	var intent paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return paymentIntent{}, err
	}
	if intent.ID == "" {
		return paymentIntent{}, errors.New("stripe response missing intent id")
	}
	return intent, nil
}
