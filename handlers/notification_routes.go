// handlers/notification_routes.go
package handlers

import (
	"host-engagement-system/middleware"
	"host-engagement-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, notificationService *services.NotificationService) {
	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		notes, err := notificationService.ListUserNotifications(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(notes)
	})

	securedGroup.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := notificationService.MarkUserRead(c.Params("id"), userID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "OK"})
	})

	securedGroup.Delete("/notifications/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := notificationService.RemoveUser(c.Params("id"), userID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "notification removed"})
	})
}
