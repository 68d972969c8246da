package catalogservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPrice получает цену услуги с выбранными опциями (ткань, размер, срок аренды и т.п.)
func (c *Client) GetPrice(ctx context.Context, serviceType string, selections map[string]string) (float64, error) {
	endpoint := fmt.Sprintf("%s/internal/catalog/services/%s/price", c.baseURL, url.PathEscape(serviceType))

	body, err := json.Marshal(PriceRequest{Selections: selections})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CatalogService: request for service=%s failed: %v", serviceType, err)
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: %s", ErrInvalidSelections, string(msg))
	case http.StatusNotFound:
		return 0, ErrServiceNotFound
	default:
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(msg))
	}

	// Парсим ответ
	var price PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if price.Price < 0 {
		return 0, fmt.Errorf("%w: negative price %.2f", ErrInvalidResponse, price.Price)
	}

	c.log.Info("CatalogService: price for service=%s is %.2f", serviceType, price.Price)
	return price.Price, nil
}
