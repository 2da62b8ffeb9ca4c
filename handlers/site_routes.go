// handlers/site_routes.go
package handlers

import (
	"time"

	"host-engagement-system/middleware"
	"host-engagement-system/services"
	"host-engagement-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupSiteRoutes(app *fiber.App, siteService *services.SiteService) {
	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/sites", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		sites, err := siteService.ListSites(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(sites)
	})

	securedGroup.Post("/sites", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Name  string `json:"name" validate:"required,max=120"`
			Theme string `json:"theme" validate:"max=64"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		site, err := siteService.CreateSite(userID, req.Name, req.Theme)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(site)
	})

	securedGroup.Post("/sites/:id/publish", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		site, err := siteService.PublishSite(userID, c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(site)
	})

	securedGroup.Post("/sites/:id/schedule", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			PublishAt time.Time `json:"publish_at" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		site, err := siteService.ScheduleSite(userID, c.Params("id"), req.PublishAt)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(site)
	})

	securedGroup.Post("/sites/:id/share", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Channel string `json:"channel" validate:"max=64"`
		}
		var req Req
		// Body is optional — a bare share still counts.
		_ = c.BodyParser(&req)

		if err := siteService.RecordShare(userID, c.Params("id"), req.Channel); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "share recorded"})
	})
}
