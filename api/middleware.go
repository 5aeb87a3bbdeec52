// Package api
package api

import (
	"context"

	"github.com/labstack/echo"

	"github.com/mayur-samrutwar/orion/gate"
)

// ResidencyChecker reports whether address may use protected features.
type ResidencyChecker interface {
	CanAccess(ctx context.Context, address string) bool
}

// RequireResidency rejects requests whose X-Wallet-Address is not verified.
// A missing header is the same as an unverified address. Accepted requests carry
// the wallet session in their context, see gate.SessionFrom.
func RequireResidency(checker ResidencyChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			session := gate.NewSession(c.Request().Header.Get(HeaderWalletAddress))
			if !session.Connected() || !checker.CanAccess(ctx, session.Address()) {
				return Forbidden.Build(c)
			}
			c.SetRequest(c.Request().WithContext(gate.WithSession(ctx, session)))
			return next(c)
		}
	}
}

// RequireSecret guards admin routes. An empty secret disables them entirely.
func RequireSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" || c.Request().Header.Get(HeaderAuthorization) != secret {
				return Unauthorized.Build(c)
			}
			return next(c)
		}
	}
}
