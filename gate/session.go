// Package gate
package gate

import (
	"context"
	"fmt"
	"strings"
)

// Session is the connected wallet, normalized once at the provider boundary.
type Session struct {
	address string
}

// NewSession accepts whatever shape the wallet provider hands out (a string, a
// *string, or a value with a String method) and keeps the canonical string.
func NewSession(address interface{}) Session {
	var s string
	switch v := address.(type) {
	case nil:
	case string:
		s = v
	case *string:
		if v != nil {
			s = *v
		}
	case fmt.Stringer:
		s = v.String()
	}
	return Session{address: strings.TrimSpace(s)}
}

func (s Session) Address() string {
	return s.address
}

func (s Session) Connected() bool {
	return s.address != ""
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx, or a disconnected one.
func SessionFrom(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
