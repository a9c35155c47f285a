package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/solatis/menukeeper/internal/core/auth"
)

// cacheClearRequest is the POST /v1/admin/cache/clear body. Scope
// selects what to wipe; empty defaults to all.
type cacheClearRequest struct {
	Scope string `json:"scope"`
}

// ClearCache serves POST /v1/admin/cache/clear. Sits behind the admin
// key middleware; used after permission or badge-source changes that
// must take effect before cached TTLs expire.
func (s *Service) ClearCache(c fiber.Ctx) error {
	var body cacheClearRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	scope := body.Scope
	if scope == "" {
		scope = "all"
	}

	var err error
	switch scope {
	case "badge":
		err = s.resolver.ClearBadges()
	case "auth":
		err = s.resolver.ClearAuth()
	case "all":
		if err = s.resolver.ClearBadges(); err == nil {
			err = s.resolver.ClearAuth()
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "scope must be badge, auth or all")
	}
	if err != nil {
		s.log.WithError(err).Error("cache clear failed")
		return fiber.NewError(fiber.StatusServiceUnavailable, "cache unavailable")
	}

	s.log.WithFields(map[string]interface{}{
		"scope":     scope,
		"admin_key": auth.AdminKeyLabel(c),
	}).Info("cache cleared")

	return c.JSON(fiber.Map{"status": "ok", "scope": scope})
}
