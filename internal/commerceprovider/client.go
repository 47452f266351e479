package commerceprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client клиент внешнего e-commerce API.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент e-commerce API.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "JWT "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// CreateOrder отправляет запрос на создание заказа места на курсе.
// Возвращает ответ только при HTTP 200 с корректным JSON телом,
// любой другой исход — ошибка.
func (c *Client) CreateOrder(ctx context.Context, token, sku string) (*CreateOrderResponse, error) {
	const op = "commerceprovider.CreateOrder"

	req, err := c.newRequest(ctx, "POST", "/order", token, CreateOrderRequest{SKU: sku})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp CreateOrderResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, errResp.UserMessage)
	}

	var orderResp CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON response: %w", op, err)
	}
	return &orderResp, nil
}
