// Package server
package server

import (
	"github.com/labstack/echo"

	"github.com/mayur-samrutwar/orion/api"
	"github.com/mayur-samrutwar/orion/gate"
)

func (s *Server) Residency(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	return api.OK.SetData(s.residency(ctx, c.Param("address"))).Build(c)
}

// ResidencyFlow drives the onboarding dialog of an address one action at a time.
// Confirm is the only action that can grant access.
func (s *Server) ResidencyFlow(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	session := gate.NewSession(c.Param("address"))
	step, err := s.flows.Apply(ctx, session, gate.Action(c.Param("action")))
	if err != nil {
		return s.fail(c, err)
	}
	view := s.residency(ctx, session.Address())
	view.Step = step.String()
	return api.OK.SetData(view).Build(c)
}
