// handlers/admin_routes.go
package handlers

import (
	"host-engagement-system/middleware"
	"host-engagement-system/models"
	"host-engagement-system/services"
	"host-engagement-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, verificationService *services.VerificationService, notificationService *services.NotificationService) {
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Get("/verifications/pending", func(c *fiber.Ctx) error {
		subs, err := verificationService.ListPending()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(subs)
	})

	adminGroup.Post("/verifications/:id/decide", func(c *fiber.Ctx) error {
		adminID := c.Locals("admin_id").(string)
		verificationID := c.Params("id")

		type Req struct {
			Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
			Reason   string `json:"reason" validate:"max=500"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := verificationService.Decide(verificationID, adminID, models.Verdict(req.Decision), req.Reason); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"message":         "decision recorded",
			"verification_id": verificationID,
			"decision":        req.Decision,
		})
	})

	adminGroup.Get("/notifications", func(c *fiber.Ctx) error {
		unreadOnly := c.Query("unread") == "true"
		notes, err := notificationService.ListAdminNotifications(unreadOnly)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(notes)
	})

	adminGroup.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		if err := notificationService.MarkAdminRead(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "OK"})
	})

	adminGroup.Delete("/notifications/:id", func(c *fiber.Ctx) error {
		if err := notificationService.RemoveAdmin(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "notification removed"})
	})
}
