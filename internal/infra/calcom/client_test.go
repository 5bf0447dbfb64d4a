//go:build unit

package calcom_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/infra/calcom"
	"booking-concierge/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProviderConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		BaseURL:     baseURL,
		APIKey:      "key123",
		EventTypeID: 42,
		Username:    "concierge",
		UserEmail:   "concierge@example.com",
		Timeout:     2 * time.Second,
	}
}

func TestAvailableSlots(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	window := schedule.Window{
		Start: time.Date(2024, 3, 15, 0, 0, 0, 0, loc),
		End:   time.Date(2024, 3, 22, 0, 0, 0, 0, loc),
	}

	t.Run("shapes query parameters and decodes grouped slots", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/slots", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "key123", q.Get("apiKey"))
			assert.Equal(t, "42", q.Get("eventTypeId"))
			assert.Equal(t, "2024-03-15", q.Get("startTime"))
			assert.Equal(t, "2024-03-22", q.Get("endTime"))
			assert.Equal(t, "America/Mexico_City", q.Get("timeZone"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"slots":{"2024-03-15":[{"time":"2024-03-15T10:00:00-06:00"}]}}`))
		}))
		defer server.Close()

		client := calcom.New(testProviderConfig(server.URL))
		slots, err := client.AvailableSlots(context.Background(), window, "America/Mexico_City")
		require.NoError(t, err)
		require.Len(t, slots["2024-03-15"], 1)
		assert.Equal(t, "2024-03-15T10:00:00-06:00", slots["2024-03-15"][0].Time)
	})

	t.Run("non-200 surfaces a provider error with details", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
		}))
		defer server.Close()

		client := calcom.New(testProviderConfig(server.URL))
		_, err := client.AvailableSlots(context.Background(), window, "America/Mexico_City")

		var provErr *calcom.ProviderError
		require.True(t, errors.As(err, &provErr))
		assert.Equal(t, http.StatusForbidden, provErr.Status)
		assert.Contains(t, provErr.Details, "invalid api key")
	})
}

func TestCreateBooking(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	payload := schedule.BookingPayload{
		Start: time.Date(2024, 4, 11, 10, 0, 0, 0, loc),
		End:   time.Date(2024, 4, 11, 10, 30, 0, 0, loc),
		Name:  "Ana García",
		Email: "ana@example.com",
		Notes: "ventana con vista",
	}

	t.Run("submits offset-qualified instants and decodes the confirmation", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/bookings", r.URL.Path)
			assert.Equal(t, "key123", r.URL.Query().Get("apiKey"))
			require.NoError(t, jsonDecode(r, &gotBody))

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":9876,"uid":"abc","confirmationLink":"https://cal.com/booking/abc"}`))
		}))
		defer server.Close()

		client := calcom.New(testProviderConfig(server.URL))
		confirmation, err := client.CreateBooking(context.Background(), payload, "America/Mexico_City")
		require.NoError(t, err)

		assert.Equal(t, int64(9876), confirmation.ID)
		assert.Equal(t, "https://cal.com/booking/abc", confirmation.ConfirmationLink)

		assert.Equal(t, "2024-04-11T10:00:00-06:00", gotBody["start"])
		assert.Equal(t, "2024-04-11T10:30:00-06:00", gotBody["end"])
		assert.Equal(t, float64(42), gotBody["eventTypeId"])
		assert.Equal(t, "es", gotBody["language"])
		responses, ok := gotBody["responses"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ana García", responses["name"])
	})

	t.Run("provider rejection becomes a provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("no longer available"))
		}))
		defer server.Close()

		client := calcom.New(testProviderConfig(server.URL))
		_, err := client.CreateBooking(context.Background(), payload, "America/Mexico_City")

		var provErr *calcom.ProviderError
		require.True(t, errors.As(err, &provErr))
		assert.Equal(t, http.StatusConflict, provErr.Status)
	})
}

func jsonDecode(r *http.Request, into *map[string]any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}
