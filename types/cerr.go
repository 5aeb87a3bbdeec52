// Package types
package types

import (
	"errors"
)

var ErrUnknownSymbol = errors.New("unknown coin symbol")
var ErrUnknownToken = errors.New("unknown token")
var ErrNoAddress = errors.New("no wallet address connected")
var ErrInvalidTransition = errors.New("invalid onboarding transition")
var ErrRecordNotFound = errors.New("record not found")
