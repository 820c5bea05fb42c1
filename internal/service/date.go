package service

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Asia/Jakarta timezone
var jakartaLoc *time.Location

func init() {
	var err error
	jakartaLoc, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback to UTC+7 if timezone data not available
		jakartaLoc = time.FixedZone("WIB", 7*60*60)
	}
}

var ErrInvalidDateFormat = errors.New("tanggal harus berformat YYYY-MM-DD")

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar day at midnight Jakarta time.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(dateLayout, raw, jakartaLoc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := t.In(jakartaLoc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, jakartaLoc), nil
	}
	return time.Time{}, ErrInvalidDateFormat
}
