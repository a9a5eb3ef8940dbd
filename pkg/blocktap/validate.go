package blocktap

import (
	"strings"
	"time"

	"github.com/saturnines/blocktap-go/pkg/errors"
)

func validateMarketID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Validation("marketId", "is required")
	}
	return nil
}

// validateRange requires RFC 3339 date-times with start <= end. A bare
// date such as 2020-01-01 is rejected.
func validateRange(start, end string) error {
	s, err := time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return errors.Validation("start", "not an RFC 3339 timestamp: %q", start)
	}
	e, err := time.Parse(time.RFC3339Nano, end)
	if err != nil {
		return errors.Validation("end", "not an RFC 3339 timestamp: %q", end)
	}
	if s.After(e) {
		return errors.Validation("end", "%s is before start %s", end, start)
	}
	return nil
}
