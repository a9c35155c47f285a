// Package api provides HTTP handler implementations for the menu service.
package api

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/solatis/menukeeper/internal/core/auth"
	"github.com/solatis/menukeeper/internal/registry"
	"github.com/solatis/menukeeper/internal/resolve"
	"github.com/solatis/menukeeper/internal/types"
)

// Service implements the menu endpoints. Thin orchestration layer
// delegating to the registry and resolver packages.
type Service struct {
	registry *registry.Registry
	resolver *resolve.Resolver
	log      *logrus.Logger
}

// NewService creates service instance with dependencies.
func NewService(reg *registry.Registry, res *resolve.Resolver, log *logrus.Logger) (*Service, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if res == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("log cannot be nil")
	}
	return &Service{registry: reg, resolver: res, log: log}, nil
}

// buildRequest assembles the resolution context from the HTTP request:
// the extracted actor, the query parameters, and the request ID for
// log correlation.
func (s *Service) buildRequest(c fiber.Ctx) *types.Request {
	params := url.Values{}
	for k, v := range c.Queries() {
		params.Set(k, v)
	}
	return &types.Request{
		Actor:     auth.ActorFromContext(c),
		Params:    params,
		RequestID: requestid.FromContext(c),
	}
}
