package validate

import (
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"time"
)

// Error marks a client input problem on a specific field. Handlers map
// it to a 400 with a user-facing message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

var (
	idPattern   = regexp.MustCompile(`^\d+$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// BigIntID parses an identifier sent as a decimal string. Only strings
// of digits are accepted and zero is rejected; values may exceed int64.
func BigIntID(value, field string) (*big.Int, error) {
	if !idPattern.MatchString(value) {
		return nil, newError(field, "ต้องเป็นตัวเลขเท่านั้น (must be a numeric string)")
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, newError(field, "ต้องเป็นตัวเลขเท่านั้น (must be a numeric string)")
	}
	if n.Sign() == 0 {
		return nil, newError(field, "ต้องมากกว่าศูนย์ (must be greater than zero)")
	}
	return n, nil
}

// BookingDate parses a strict YYYY-MM-DD string into UTC midnight and
// rejects days before the current UTC day.
func BookingDate(value string) (time.Time, error) {
	return bookingDateAt(value, time.Now().UTC())
}

func bookingDateAt(value string, now time.Time) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, newError("bookingDate", "รูปแบบวันที่ไม่ถูกต้อง (expected YYYY-MM-DD)")
	}
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, newError("bookingDate", "วันที่ไม่ถูกต้อง (invalid date)")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return time.Time{}, newError("bookingDate", "ไม่สามารถจองวันที่ผ่านมาแล้ว (date is in the past)")
	}
	return d, nil
}

// SlipURL validates an optional payment-slip URL. Empty input passes
// through unchanged. When allowedHosts is non-empty the URL host must
// appear in it.
func SlipURL(raw string, allowedHosts []string) (string, error) {
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return "", newError("slipUrl", "ต้องเป็น https URL (must be an https URL)")
	}
	if len(allowedHosts) > 0 {
		allowed := false
		for _, h := range allowedHosts {
			if u.Hostname() == h {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", newError("slipUrl", "โฮสต์ไม่ได้รับอนุญาต (host not allowed)")
		}
	}
	return raw, nil
}
