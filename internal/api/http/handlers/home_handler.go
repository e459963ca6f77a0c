package handlers

import "github.com/gofiber/fiber/v2"

// HomeHandler serves the static root payload.
type HomeHandler struct {
	serviceName string
	version     string
}

// NewHomeHandler constructs handler.
func NewHomeHandler(serviceName, version string) *HomeHandler {
	return &HomeHandler{serviceName: serviceName, version: version}
}

// Index handles GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "usuario service",
		"service": h.serviceName,
		"version": h.version,
		"resources": fiber.Map{
			"usuarios": "/usuarios",
		},
	})
}
