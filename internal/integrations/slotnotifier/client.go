package slotnotifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/listeners"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client webhook-клиент, доставляющий события слотов внешнему сервису
// Реализует listeners.SlotListener: ошибки доставки логируются менеджером
// и не прерывают мутацию
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// OnSlotEvent отправляет событие слота внешнему получателю
func (c *Client) OnSlotEvent(ctx context.Context, event listeners.SlotEvent, slot *domain.Slot) error {
	payload := SlotEventPayload{
		Event:            string(event),
		SlotID:           slot.ID,
		FormID:           slot.FormID,
		StartingDateTime: slot.Period.StartingDateTime.Format(domain.DateTimeFormat),
		EndingDateTime:   slot.Period.EndingDateTime.Format(domain.DateTimeFormat),
		MaxCapacity:      slot.MaxCapacity,
		NbPlacesTaken:    slot.NbPlacesTaken,
		IsOpen:           slot.IsOpen,
		IsOverbooked:     slot.IsOverbooked(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/slot-events", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
