// Package server
package server

import (
	"strconv"

	"github.com/labstack/echo"

	"github.com/mayur-samrutwar/orion/api"
	"github.com/mayur-samrutwar/orion/orion"
)

// Admin routes sit behind api.RequireSecret.

type oraclePricesRequest struct {
	Gold   string `json:"gold"`
	Silver string `json:"silver"`
}

type backUSDCRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

type mintUSDCRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

func (s *Server) SetOraclePricesPayload(c echo.Context) error {
	var req oraclePricesRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	return api.OK.SetData(s.enc.BuildSetOraclePricesPayload(
		orion.EncodeAmount(req.Gold), orion.EncodeAmount(req.Silver))).Build(c)
}

func (s *Server) BackUSDCPayload(c echo.Context) error {
	var req backUSDCRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	t, err := orion.ParseToken(req.Token)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(s.enc.BuildBackUSDCPayload(t, orion.EncodeAmount(req.Amount))).Build(c)
}

func (s *Server) InitUSDCPayload(c echo.Context) error {
	return api.OK.SetData(s.enc.BuildInitUSDCPayload()).Build(c)
}

func (s *Server) MintUSDCPayload(c echo.Context) error {
	var req mintUSDCRequest
	if err := c.Bind(&req); err != nil {
		return api.Invalid.Build(c)
	}
	return api.OK.SetData(s.enc.BuildMintUSDCPayload(req.Recipient, orion.EncodeAmount(req.Amount))).Build(c)
}

// ResidencyRecords lists stored decisions when the residency store supports it.
func (s *Server) ResidencyRecords(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	lister, ok := s.store.(recordLister)
	if !ok {
		return api.Invalid.SetMsg("residency store cannot list records").Build(c)
	}
	var (
		page, limit int64
		err         error
	)
	if page, err = strconv.ParseInt(c.QueryParam("page"), 10, 64); err != nil || page < 0 {
		page = 0
	}
	if limit, err = strconv.ParseInt(c.QueryParam("limit"), 10, 64); err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}
	records, err := lister.Records(ctx, page*limit, limit)
	if err != nil {
		return s.fail(c, err)
	}
	total, err := lister.CountRecords(ctx)
	if err != nil {
		return s.fail(c, err)
	}
	return api.OK.SetData(api.PagingResponse{
		Pagination: api.Pagination{
			Skip:  page * limit,
			Limit: limit,
			Total: total,
		},
		Data: records,
	}).Build(c)
}
