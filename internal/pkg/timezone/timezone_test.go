//go:build unit

package timezone_test

import (
	"errors"
	"testing"

	"booking-concierge/internal/pkg/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLocation(t *testing.T) {
	catalog := timezone.DefaultCatalog()

	t.Run("resolves supported zone", func(t *testing.T) {
		loc, err := catalog.Location(timezone.ZoneMexico)
		require.NoError(t, err)
		assert.Equal(t, "America/Mexico_City", loc.String())
	})

	t.Run("rejects unknown zone", func(t *testing.T) {
		_, err := catalog.Location(timezone.Zone("atlantis"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, timezone.ErrUnsupportedZone))
	})

	t.Run("custom catalog does not leak into default", func(t *testing.T) {
		custom := timezone.NewCatalog(map[timezone.Zone]string{
			timezone.Zone("tokyo"): "Asia/Tokyo",
		})

		loc, err := custom.Location(timezone.Zone("tokyo"))
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", loc.String())

		_, err = custom.Location(timezone.ZoneMexico)
		assert.True(t, errors.Is(err, timezone.ErrUnsupportedZone))

		_, err = timezone.DefaultCatalog().Location(timezone.Zone("tokyo"))
		assert.True(t, errors.Is(err, timezone.ErrUnsupportedZone))
	})
}
