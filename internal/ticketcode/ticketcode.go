// Package ticketcode derives the human-facing ticket code from the internal
// id and the creation year, and parses it back. The code is never stored:
// every response re-derives it from the row, and every path parameter is
// decoded back to the internal id before touching the database.
package ticketcode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inamhi-tic/helpdesk-service/internal/errs"
)

const (
	prefix    = "SSTI"
	suffix    = "ST"
	delimiter = "-"
)

// Encode formats the code as SSTI-<year>-<id, zero-padded to 4>-ST.
// Ids above 9999 widen the segment instead of truncating.
func Encode(id uint64, createdAt time.Time) string {
	return fmt.Sprintf("%s%s%d%s%04d%s%s", prefix, delimiter, createdAt.Year(), delimiter, id, delimiter, suffix)
}

// Decode extracts the internal id from a display code. The numeric segment
// sits second to last; the last segment is the constant suffix token. Decode
// does not verify prefix, year or suffix — the caller re-encodes from the
// fetched row and compares when an exact match is required.
func Decode(code string) (uint64, error) {
	parts := strings.Split(strings.TrimSpace(code), delimiter)
	if len(parts) < 2 {
		return 0, errs.ErrMalformedCode
	}
	id, err := strconv.ParseUint(parts[len(parts)-2], 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrMalformedCode
	}
	return id, nil
}

// Looks reports whether term has the overall shape of a display code. Used
// by search to decide whether to attempt an exact-code lookup at all.
func Looks(term string) bool {
	parts := strings.Split(strings.TrimSpace(term), delimiter)
	if len(parts) < 2 {
		return false
	}
	_, err := strconv.ParseUint(parts[len(parts)-2], 10, 64)
	return err == nil
}
