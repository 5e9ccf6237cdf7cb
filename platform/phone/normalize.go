// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when the caller passes no region.
const DefaultRegion = "AE"

// NormalizeE164 formats a phone number to E.164 using region for numbers
// without a country prefix. It returns "" when the input is not a valid number.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return ""
	}

	if !phonenumbers.IsValidNumber(number) {
		return ""
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
