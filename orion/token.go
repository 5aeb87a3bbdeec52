// Package orion
package orion

import (
	"fmt"
	"strings"

	"github.com/mayur-samrutwar/orion/types"
)

// Token selects one of the two metal tokens.
type Token int

const (
	Gold Token = iota + 1
	Silver
)

func (t Token) String() string {
	switch t {
	case Gold:
		return "oGold"
	case Silver:
		return "oSilver"
	}
	return "unknown"
}

// ParseToken accepts the selector spellings used by clients: oGold, oGOLD, xGOLD,
// gold, xau and their silver counterparts, case-insensitively.
func ParseToken(s string) (Token, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ogold", "xgold", "gold", "xau":
		return Gold, nil
	case "osilver", "xsilver", "silver", "xag":
		return Silver, nil
	}
	return 0, fmt.Errorf("%w: %q", types.ErrUnknownToken, s)
}
