/*
 *  Copyright 2018 KardiaChain
 *  This file is part of the go-kardia library.
 *
 *  The go-kardia library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The go-kardia library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 *  GNU Lesser General Public License for more details.
 *
 *  You should have received a copy of the GNU Lesser General Public License
 *  along with the go-kardia library. If not, see <http://www.gnu.org/licenses/>.
 */
// Package utils
package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Account addresses are up to 32 bytes; leading zeros may be trimmed.
var accountRe = regexp.MustCompile("^0x[0-9a-fA-F]{1,64}$")

var ErrInvalidAccount = errors.New("invalid account address")

func CleanUpHex(s string) string {
	s = strings.Replace(strings.TrimPrefix(s, "0x"), " ", "", -1)

	return strings.ToLower(s)
}

func IsValidAddress(v string) bool {
	return accountRe.MatchString(v)
}

// ValidateAccount returns the canonical 0x-prefixed lowercase form of accountAddress.
func ValidateAccount(accountAddress string) (string, error) {
	if !IsValidAddress(strings.TrimSpace(accountAddress)) {
		return "", ErrInvalidAccount
	}
	return "0x" + CleanUpHex(strings.TrimSpace(accountAddress)), nil
}
