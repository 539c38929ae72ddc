package utils

import "time"

// ISODate is the wire and storage format for calendar dates.
const ISODate = "2006-01-02"

// IsDate reports whether value is a well-formed ISO 8601 calendar date.
func IsDate(value string) bool {
	_, err := time.Parse(ISODate, value)
	return err == nil
}
