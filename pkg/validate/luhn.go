package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsLuhn reports whether s passes the Luhn checksum. Used for manually
// keyed card numbers before they reach the payment gateway.
func IsLuhn(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// GenerateLuhn returns a random numeric string of the given length whose
// last digit is the Luhn check digit for the rest.
func GenerateLuhn(length int) (string, error) {
	number := goluhn.Generate(length)
	return number, nil
}
