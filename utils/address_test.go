// Package utils
package utils

import (
	"errors"
	"testing"

	"gotest.tools/assert"
)

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0x1", true},
		{"0xA11CE", true},
		{"0x" + hex64, true},
		{"0x" + hex64 + "0", false},
		{"a11ce", false},
		{"0x", false},
		{"0xowner", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsValidAddress(c.in), c.in)
	}
}

func TestValidateAccount(t *testing.T) {
	got, err := ValidateAccount(" 0xA11CE ")
	assert.NilError(t, err)
	assert.Equal(t, "0xa11ce", got)

	_, err = ValidateAccount("alice")
	assert.Assert(t, errors.Is(err, ErrInvalidAccount))
}

const hex64 = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
