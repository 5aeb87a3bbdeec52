// Package server
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/api"
	"github.com/mayur-samrutwar/orion/aptos"
	"github.com/mayur-samrutwar/orion/external"
	"github.com/mayur-samrutwar/orion/orion"
	"github.com/mayur-samrutwar/orion/types"
	"github.com/mayur-samrutwar/orion/utils"
)

var _ api.EchoServer = (*Server)(nil)

func (s *Server) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), s.apiTimeout)
}

// fail maps err onto the response envelope.
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, types.ErrUnknownSymbol),
		errors.Is(err, types.ErrUnknownToken),
		errors.Is(err, types.ErrNoAddress),
		errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, utils.ErrInvalidAccount):
		return api.Invalid.SetMsg(err.Error()).Build(c)
	case errors.Is(err, types.ErrRecordNotFound):
		return api.NotFound.Build(c)
	}
	var httpErr *aptos.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return api.NotFound.Build(c)
	}
	s.Logger.Warn("request failed", zap.String("path", c.Path()), zap.Error(err))
	return api.InternalServer.Build(c)
}

func (s *Server) Ping(c echo.Context) error {
	return api.OK.SetData("pong").Build(c)
}

func (s *Server) ServerStatus(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	if s.cache != nil {
		if status, err := s.cache.ServerStatus(ctx); err == nil {
			return api.OK.SetData(status).Build(c)
		}
	}
	return api.OK.SetData(s.status()).Build(c)
}

//region Prices

func (s *Server) Prices(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	prices, err := s.prices(ctx, external.FeedMetal)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(prices).Build(c)
}

func (s *Server) ContractPrices(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	prices, err := s.prices(ctx, external.FeedContract)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(prices).Build(c)
}

type QuoteResult struct {
	Token      string          `json:"token"`
	Side       string          `json:"side"`
	Amount     string          `json:"amount"`
	USDPerGram float64         `json:"usdPerGram"`
	Receive    decimal.Decimal `json:"receive"`
	Source     string          `json:"source"`
}

// Quote estimates the other side of a trade at the contract price.
// side=buy pays USDC for grams, side=sell pays grams for USDC.
func (s *Server) Quote(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	t, err := orion.ParseToken(c.QueryParam("token"))
	if err != nil {
		return s.fail(c, err)
	}
	side := strings.ToLower(c.QueryParam("side"))
	if side == "" {
		side = "buy"
	}
	if side != "buy" && side != "sell" {
		return api.Invalid.SetMsg("side must be buy or sell").Build(c)
	}
	prices, err := s.prices(ctx, external.FeedContract)
	if err != nil {
		return s.fail(c, err)
	}
	price := prices.Gold.USDPerGram
	if t == orion.Silver {
		price = prices.Silver.USDPerGram
	}
	amount := c.QueryParam("amount")
	return api.OK.SetData(&QuoteResult{
		Token:      s.enc.TokenSymbol(t),
		Side:       side,
		Amount:     amount,
		USDPerGram: price,
		Receive:    orion.Quote(side == "buy", amount, price),
		Source:     prices.Source,
	}).Build(c)
}

//endregion Prices

//region Chain reads

func (s *Server) Coin(c echo.Context) error {
	symbol := c.Param("symbol")
	coinType, err := s.enc.ResolveCoinTypeTag(symbol)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(map[string]string{
		"symbol":   symbol,
		"coinType": coinType,
	}).Build(c)
}

func (s *Server) Balances(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	owner, err := utils.ValidateAccount(c.Param("owner"))
	if err != nil {
		return s.fail(c, err)
	}
	balances, err := s.reader.Balances(ctx, owner)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(balances).Build(c)
}

func (s *Server) Balance(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	owner, err := utils.ValidateAccount(c.Param("owner"))
	if err != nil {
		return s.fail(c, err)
	}
	balance, err := s.reader.Balance(ctx, owner, c.Param("symbol"))
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(balance).Build(c)
}

func (s *Server) Pool(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	t, err := orion.ParseToken(c.Param("token"))
	if err != nil {
		return s.fail(c, err)
	}
	pool, err := s.reader.Pool(ctx, t)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(pool).Build(c)
}

func (s *Server) Oracle(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	oracle, err := s.reader.Oracle(ctx)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(oracle).Build(c)
}

func (s *Server) ProofOfReserve(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	por, err := s.reader.ProofOfReserve(ctx)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(por).Build(c)
}

//endregion Chain reads
