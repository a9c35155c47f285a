package api

import (
	"github.com/gofiber/fiber/v3"
)

// GetMenu serves GET /v1/menu: the main navigation tree resolved for
// the requesting actor. Anonymous requests resolve against ungated
// nodes only.
func (s *Service) GetMenu(c fiber.Ctx) error {
	req := s.buildRequest(c)

	nodes := s.registry.Menu(req)
	entries, err := s.resolver.Serialize(nodes, req)
	if err != nil {
		return s.renderError(c, req.RequestID, err)
	}

	s.log.WithFields(map[string]interface{}{
		"request_id": req.RequestID,
		"actor_id":   req.ActorID(),
		"entries":    len(entries),
	}).Debug("resolved main menu")

	return c.JSON(fiber.Map{"menu": entries})
}

// GetUserMenu serves GET /v1/menu/user: the per-actor menu with its
// default sign-out entry, resolved and pruned like the main tree.
func (s *Service) GetUserMenu(c fiber.Ctx) error {
	req := s.buildRequest(c)

	m := s.registry.UserMenu(req)
	entries, err := s.resolver.SerializeMenu(m, req)
	if err != nil {
		return s.renderError(c, req.RequestID, err)
	}

	return c.JSON(fiber.Map{"menu": entries})
}
