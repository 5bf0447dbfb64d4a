package timezone

import (
	"time"

	"booking-concierge/internal/pkg/errs"
)

// Zone is a symbolic identifier for a supported timezone. The set is
// deliberately closed: the assistant quotes wall-clock times to end users, so
// every zone it speaks must be vetted here first.
type Zone string

const (
	ZoneMexico Zone = "mexico"
)

const DefaultZone = ZoneMexico

var ErrUnsupportedZone = errs.New("unsupported timezone identifier")

// Catalog maps symbolic zone identifiers to IANA names. It is immutable after
// construction so tests can substitute their own set without process-wide
// side effects.
type Catalog struct {
	zones map[Zone]string
}

func NewCatalog(zones map[Zone]string) *Catalog {
	copied := make(map[Zone]string, len(zones))
	for k, v := range zones {
		copied[k] = v
	}
	return &Catalog{zones: copied}
}

// DefaultCatalog returns the production zone set.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Zone]string{
		ZoneMexico: "America/Mexico_City",
	})
}

// Name returns the IANA name for a symbolic zone identifier.
func (c *Catalog) Name(z Zone) (string, error) {
	name, ok := c.zones[z]
	if !ok {
		return "", errs.Mark(errs.Newf("timezone %q is not supported", z), ErrUnsupportedZone)
	}
	return name, nil
}

// Location resolves a symbolic zone identifier to a usable *time.Location.
func (c *Catalog) Location(z Zone) (*time.Location, error) {
	name, err := c.Name(z)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrap(err, "load timezone location")
	}
	return loc, nil
}
