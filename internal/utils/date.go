package utils

import (
	"fmt"
	"time"
)

// CalendarDate formats a wall-clock instant as "YYYY-M-D" with no zero
// padding and no timezone normalization. Stored rows use this exact form,
// so it must not change without migrating existing data. Callers pass in
// the clock so tests can pin the date.
func CalendarDate(now time.Time) string {
	return fmt.Sprintf("%d-%d-%d", now.Year(), int(now.Month()), now.Day())
}
