package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/solatis/menukeeper/internal/types"
)

// renderError maps resolution failures onto HTTP status codes.
//
// Evaluation failures (an authorization predicate or badge callback
// returned an error) are upstream faults: 502 so callers can tell them
// from menu configuration defects, which are 500 and need a deploy to
// fix. Neither leaks callback error details to the client.
func (s *Service) renderError(c fiber.Ctx, requestID string, err error) error {
	entry := s.log.WithError(err).WithField("request_id", requestID)

	switch {
	case errors.Is(err, types.ErrAuthEvaluation):
		entry.Warn("authorization evaluation failed")
		return fiber.NewError(fiber.StatusBadGateway, "authorization evaluation failed")
	case errors.Is(err, types.ErrBadgeEvaluation):
		entry.Warn("badge evaluation failed")
		return fiber.NewError(fiber.StatusBadGateway, "badge evaluation failed")
	default:
		entry.Error("menu resolution failed")
		return fiber.NewError(fiber.StatusInternalServerError, "menu configuration invalid")
	}
}
