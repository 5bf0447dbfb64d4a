//go:build unit

package schedule_test

import (
	"errors"
	"testing"
	"time"

	"booking-concierge/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingValidator(t *testing.T) {
	loc := mexicoCity(t)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, loc)
	validator := schedule.NewBookingValidator(schedule.DefaultBookingDuration)

	valid := schedule.BookingRequest{
		Date:  "2024-04-11",
		Time:  "10:00",
		Name:  "Ana García",
		Email: "ana@example.com",
		Notes: "sin gluten",
	}

	t.Run("valid request produces a localized payload", func(t *testing.T) {
		payload, err := validator.Validate(valid, now, loc)
		require.NoError(t, err)

		want := time.Date(2024, 4, 11, 10, 0, 0, 0, loc)
		assert.True(t, payload.Start.Equal(want))
		assert.Equal(t, 30*time.Minute, payload.End.Sub(payload.Start))
		assert.Equal(t, "2024-04-11T10:00:00-06:00", payload.StartISO())
		assert.Equal(t, "2024-04-11T10:30:00-06:00", payload.EndISO())
		assert.Equal(t, "Ana García", payload.Name)
		assert.Equal(t, "sin gluten", payload.Notes)
	})

	t.Run("missing contact fields", func(t *testing.T) {
		for _, mutate := range []func(*schedule.BookingRequest){
			func(r *schedule.BookingRequest) { r.Name = "" },
			func(r *schedule.BookingRequest) { r.Email = "" },
		} {
			req := valid
			mutate(&req)
			_, err := validator.Validate(req, now, loc)
			assert.True(t, errors.Is(err, schedule.ErrIncompleteContact))
		}
	})

	t.Run("missing schedule fields", func(t *testing.T) {
		for _, mutate := range []func(*schedule.BookingRequest){
			func(r *schedule.BookingRequest) { r.Date = "" },
			func(r *schedule.BookingRequest) { r.Time = "" },
		} {
			req := valid
			mutate(&req)
			_, err := validator.Validate(req, now, loc)
			assert.True(t, errors.Is(err, schedule.ErrIncompleteSchedule))
		}
	})

	t.Run("contact check precedes schedule check", func(t *testing.T) {
		req := valid
		req.Name = ""
		req.Date = ""
		_, err := validator.Validate(req, now, loc)
		assert.True(t, errors.Is(err, schedule.ErrIncompleteContact))
	})

	t.Run("malformed date or time", func(t *testing.T) {
		cases := []schedule.BookingRequest{
			{Date: "11/04/2024", Time: "10:00", Name: "Ana", Email: "a@b.mx"},
			{Date: "2024-04-11", Time: "25:00", Name: "Ana", Email: "a@b.mx"},
			{Date: "2024-02-31", Time: "10:00", Name: "Ana", Email: "a@b.mx"},
		}
		for _, req := range cases {
			_, err := validator.Validate(req, now, loc)
			assert.True(t, errors.Is(err, schedule.ErrMalformedDateTime), "date=%s time=%s", req.Date, req.Time)
		}
	})

	t.Run("one minute in the past is rejected", func(t *testing.T) {
		req := valid
		req.Date = "2024-04-10"
		req.Time = "11:59"
		_, err := validator.Validate(req, now, loc)
		assert.True(t, errors.Is(err, schedule.ErrPastDate))
	})

	t.Run("exactly now is rejected", func(t *testing.T) {
		req := valid
		req.Date = "2024-04-10"
		req.Time = "12:00"
		_, err := validator.Validate(req, now, loc)
		assert.True(t, errors.Is(err, schedule.ErrPastDate))
	})

	t.Run("one minute in the future is accepted", func(t *testing.T) {
		req := valid
		req.Date = "2024-04-10"
		req.Time = "12:01"
		payload, err := validator.Validate(req, now, loc)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, payload.End.Sub(payload.Start))
	})

	t.Run("custom duration is honored", func(t *testing.T) {
		hourly := schedule.NewBookingValidator(time.Hour)
		payload, err := hourly.Validate(valid, now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, payload.End.Sub(payload.Start))
	})

	t.Run("non positive duration falls back to default", func(t *testing.T) {
		v := schedule.NewBookingValidator(0)
		payload, err := v.Validate(valid, now, loc)
		require.NoError(t, err)
		assert.Equal(t, schedule.DefaultBookingDuration, payload.End.Sub(payload.Start))
	})
}
