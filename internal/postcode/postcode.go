// Package postcode decides service-area eligibility for raw postcodes.
package postcode

import "strings"

// NotServicedMessage is returned whenever a postcode falls outside coverage.
const NotServicedMessage = "Sorry, we do not currently service your area. We cover SW London, Central London, Heathrow, Staines, and Weybridge."

// Rule names a service area for one postcode prefix.
type Rule struct {
	Prefix   string
	AreaName string
}

// Result is the outcome of an eligibility check. The check never fails: an
// unmatched postcode is simply out of area.
type Result struct {
	InServiceArea bool   `json:"inServiceArea"`
	AreaName      string `json:"areaName,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Matcher holds the active service-area rules, read-only after construction.
type Matcher struct {
	areas map[string]string
}

// NewMatcher builds a Matcher from the given rules. Later duplicates of a
// prefix win, though stored prefixes are unique in practice.
func NewMatcher(rules []Rule) *Matcher {
	areas := make(map[string]string, len(rules))
	for _, r := range rules {
		areas[strings.ToUpper(r.Prefix)] = r.AreaName
	}
	return &Matcher{areas: areas}
}

// Area extracts the maximal leading run of alphabetic characters from a raw
// postcode, uppercased. A postcode not starting with a letter yields "".
func Area(raw string) string {
	upper := strings.ToUpper(raw)
	i := 0
	for i < len(upper) && upper[i] >= 'A' && upper[i] <= 'Z' {
		i++
	}
	return upper[:i]
}

// Check reports whether the raw postcode falls inside a serviced area.
func (m *Matcher) Check(raw string) Result {
	if area, ok := m.areas[Area(raw)]; ok {
		return Result{InServiceArea: true, AreaName: area}
	}
	return Result{Message: NotServicedMessage}
}
