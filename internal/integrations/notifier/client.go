package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDispatch возвращается, когда диспетчер уведомлений ответил ошибкой
var ErrDispatch = errors.New("notifier client: dispatch failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент диспетчера уведомлений о бронировании.
// Доставка fire-and-forget: ошибки логируются и никогда не влияют
// на результат бронирования.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	log         Logger
	enabled     bool
	sendTimeout time.Duration
}

// NewClient создает новый экземпляр клиента диспетчера уведомлений
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:         log,
		enabled:     enabled,
		sendTimeout: timeout,
	}
}

// DispatchBookingConfirmed асинхронно отправляет подтверждение брони.
// Возвращает управление немедленно; отправка живет в своей горутине
// с собственным контекстом, чтобы не зависеть от жизни HTTP запроса.
func (c *Client) DispatchBookingConfirmed(confirmation *BookingConfirmation) {
	if !c.enabled {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.sendTimeout)
		defer cancel()

		if err := c.send(ctx, confirmation); err != nil {
			c.log.Error("Notifier: failed to dispatch confirmation for meeting=%s: %v",
				confirmation.MeetingID, err)
			return
		}

		c.log.Info("Notifier: confirmation dispatched for meeting=%s", confirmation.MeetingID)
	}()
}

func (c *Client) send(ctx context.Context, confirmation *BookingConfirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrDispatch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/internal/notifications/booking-confirmed", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDispatch, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrDispatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status code %d", ErrDispatch, resp.StatusCode)
	}

	return nil
}
