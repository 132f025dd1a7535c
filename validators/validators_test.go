package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("4242424242424242"))
	assert.NoError(t, ValidateCardNumber("0000000000004242"))
	assert.Error(t, ValidateCardNumber("4242"))
	assert.Error(t, ValidateCardNumber("42424242424242424"))
	assert.Error(t, ValidateCardNumber("4242-4242-4242-4242"))
	assert.Error(t, ValidateCardNumber(""))
}

func TestValidateExpMonth(t *testing.T) {
	for _, ok := range []string{"01", "09", "10", "12"} {
		assert.NoError(t, ValidateExpMonth(ok), ok)
	}
	for _, bad := range []string{"0", "1", "13", "00", "9", ""} {
		assert.Error(t, ValidateExpMonth(bad), bad)
	}
}

func TestValidateExpYear(t *testing.T) {
	assert.NoError(t, ValidateExpYear("2030"))
	assert.Error(t, ValidateExpYear("30"))
	assert.Error(t, ValidateExpYear("20300"))
	assert.Error(t, ValidateExpYear(""))
}

func TestValidateZip(t *testing.T) {
	assert.NoError(t, ValidateZip("41101"))
	assert.NoError(t, ValidateZip("411014"))
	assert.Error(t, ValidateZip("4110"))
	assert.Error(t, ValidateZip("4110145"))
	assert.Error(t, ValidateZip("4110a"))
}

func TestValidatePinCode(t *testing.T) {
	assert.NoError(t, ValidatePinCode("411014"))
	assert.Error(t, ValidatePinCode("41101"))
	assert.Error(t, ValidatePinCode("4110145"))
}

func TestValidatePhoneNumber(t *testing.T) {
	for _, ok := range []string{"+919812345678", "9812345678", "+11234567890"} {
		assert.NoError(t, ValidatePhoneNumber(ok), ok)
	}
	for _, bad := range []string{"12345678", "not-a-phone", "+9198123456789012345"} {
		assert.Error(t, ValidatePhoneNumber(bad), bad)
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(0.01))
	assert.Error(t, ValidatePrice(0))
	assert.Error(t, ValidatePrice(-5))
}
