package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/pkg/config"
	"booking-concierge/internal/pkg/errs"
)

const dateParamLayout = "2006-01-02"

// ProviderError carries the provider's HTTP status and response text so the
// caller can render a diagnostic without unwinding control flow.
type ProviderError struct {
	Status  int
	Details string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed with status %d: %s", e.Status, e.Details)
}

// BookingConfirmation is the provider's answer to a successful booking.
type BookingConfirmation struct {
	ID               int64  `json:"id"`
	UID              string `json:"uid"`
	ConfirmationLink string `json:"confirmationLink"`
}

// Client is a thin adapter over the Cal.com v1 API. It owns the HTTP calls;
// all slot/booking semantics live in the domain layer.
type Client struct {
	httpClient *http.Client
	cfg        config.ProviderConfig
}

func New(cfg config.ProviderConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type slotsResponse struct {
	Slots map[string][]schedule.RawSlot `json:"slots"`
}

// AvailableSlots queries the provider for open slots inside the window.
// Dates travel as calendar dates; the provider resolves them in tzName.
func (c *Client) AvailableSlots(ctx context.Context, window schedule.Window, tzName string) (map[string][]schedule.RawSlot, error) {
	params := url.Values{}
	params.Set("apiKey", c.cfg.APIKey)
	params.Set("eventTypeId", strconv.Itoa(c.cfg.EventTypeID))
	params.Set("startTime", window.Start.Format(dateParamLayout))
	params.Set("endTime", window.End.Format(dateParamLayout))
	params.Set("timeZone", tzName)

	endpoint := c.cfg.BaseURL + "/slots?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(err, "build slots request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "query provider slots")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "read slots response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Status: resp.StatusCode, Details: string(body)}
	}

	var decoded slotsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errs.Wrap(err, "decode slots response")
	}

	return decoded.Slots, nil
}

type bookingRequestBody struct {
	EventTypeID int              `json:"eventTypeId"`
	Username    string           `json:"username"`
	UserEmail   string           `json:"useremail"`
	Start       string           `json:"start"`
	End         string           `json:"end"`
	Responses   bookingResponses `json:"responses"`
	Title       string           `json:"title"`
	Metadata    bookingMetadata  `json:"metadata"`
	TimeZone    string           `json:"timeZone"`
	Language    string           `json:"language"`
}

type bookingResponses struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookingMetadata struct {
	Source string `json:"source"`
	Notes  string `json:"notes"`
}

// CreateBooking submits a validated payload to the provider.
func (c *Client) CreateBooking(ctx context.Context, payload schedule.BookingPayload, tzName string) (*BookingConfirmation, error) {
	body := bookingRequestBody{
		EventTypeID: c.cfg.EventTypeID,
		Username:    c.cfg.Username,
		UserEmail:   c.cfg.UserEmail,
		Start:       payload.StartISO(),
		End:         payload.EndISO(),
		Responses: bookingResponses{
			Name:  payload.Name,
			Email: payload.Email,
		},
		Title: "Reserva de Experiencia Turística",
		Metadata: bookingMetadata{
			Source: "asistente_turismo",
			Notes:  payload.Notes,
		},
		TimeZone: tzName,
		Language: "es",
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "encode booking request")
	}

	endpoint := c.cfg.BaseURL + "/bookings?apiKey=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, errs.Wrap(err, "build booking request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "submit booking")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "read booking response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &ProviderError{Status: resp.StatusCode, Details: string(raw)}
	}

	var confirmation BookingConfirmation
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		return nil, errs.Wrap(err, "decode booking response")
	}
	return &confirmation, nil
}
