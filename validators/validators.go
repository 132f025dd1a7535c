// Package validators holds the field-level format checks applied before a
// record is written or a Stripe call is issued. Anything failing here is a
// validation error and never reaches the gateway.
package validators

import (
	"fmt"
	"regexp"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expMonthRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expYearRe    = regexp.MustCompile(`^\d{4}$`)
	zipRe        = regexp.MustCompile(`^\d{5,6}$`)
	pinCodeRe    = regexp.MustCompile(`^\d{6}$`)
	phoneRe      = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

func ValidateCardNumber(v string) error {
	if !cardNumberRe.MatchString(v) {
		return fmt.Errorf("card number must be 16 digits")
	}
	return nil
}

func ValidateExpMonth(v string) error {
	if !expMonthRe.MatchString(v) {
		return fmt.Errorf("expiry month must be 01-12")
	}
	return nil
}

func ValidateExpYear(v string) error {
	if !expYearRe.MatchString(v) {
		return fmt.Errorf("expiry year must be 4 digits")
	}
	return nil
}

func ValidateZip(v string) error {
	if !zipRe.MatchString(v) {
		return fmt.Errorf("ZIP code must be 5-6 digits")
	}
	return nil
}

func ValidatePinCode(v string) error {
	if !pinCodeRe.MatchString(v) {
		return fmt.Errorf("PIN code must be 6 digits")
	}
	return nil
}

func ValidatePhoneNumber(v string) error {
	if !phoneRe.MatchString(v) {
		return fmt.Errorf("enter a valid phone number")
	}
	return nil
}

func ValidatePrice(v float64) error {
	if v <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}
