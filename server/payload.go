// Package server
package server

import (
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/api"
	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/orion"
)

// Amounts in request bodies are human decimals ("1.5"); they are encoded to 6-decimal
// fixed point here. Unparsable, negative or out of range amounts encode to "0".
// These handlers sit behind api.RequireResidency, which puts the verified wallet
// session in the request context.

func (s *Server) payload(c echo.Context, data interface{}) error {
	session := gate.SessionFrom(c.Request().Context())
	s.logger.Debug("Payload built", zap.String("address", session.Address()), zap.String("path", c.Path()))
	return api.OK.SetData(data).Build(c)
}

type tradeRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

type mintRequest struct {
	Token     string `json:"token"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type liquidityRequest struct {
	Token       string `json:"token"`
	TokenAmount string `json:"tokenAmount"`
	USDCAmount  string `json:"usdcAmount"`
}

func (s *Server) BuyPayload(c echo.Context) error {
	var req tradeRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	t, err := orion.ParseToken(req.Token)
	if err != nil {
		return s.fail(c, err)
	}
	return s.payload(c, s.enc.BuildBuyPayload(t, orion.EncodeAmount(req.Amount)))
}

func (s *Server) SellPayload(c echo.Context) error {
	var req tradeRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	t, err := orion.ParseToken(req.Token)
	if err != nil {
		return s.fail(c, err)
	}
	return s.payload(c, s.enc.BuildSellPayload(t, orion.EncodeAmount(req.Amount)))
}

func (s *Server) MintPayload(c echo.Context) error {
	var req mintRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	t, err := orion.ParseToken(req.Token)
	if err != nil {
		return s.fail(c, err)
	}
	// an omitted recipient mints to the connected wallet
	recipient := req.Recipient
	if recipient == "" {
		recipient = gate.SessionFrom(c.Request().Context()).Address()
	}
	return s.payload(c, s.enc.BuildMintPayload(t, recipient, orion.EncodeAmount(req.Amount)))
}

func (s *Server) LiquidityPayload(c echo.Context) error {
	var req liquidityRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	t, err := orion.ParseToken(req.Token)
	if err != nil {
		return s.fail(c, err)
	}
	return s.payload(c, s.enc.BuildAddLiquidityPayload(t,
		orion.EncodeAmount(req.TokenAmount), orion.EncodeAmount(req.USDCAmount)))
}

// RegisterPayloads returns both registrations in submission order.
func (s *Server) RegisterPayloads(c echo.Context) error {
	t, err := orion.ParseToken(c.Param("token"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.payload(c, s.enc.BuildRegistrationPayloads(t))
}
