// handlers/challenge_routes.go
package handlers

import (
	"host-engagement-system/apperrors"
	"host-engagement-system/middleware"
	"host-engagement-system/models"
	"host-engagement-system/services"
	"host-engagement-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService, verificationService *services.VerificationService) {
	// Catalog is public — no user context needed.
	app.Get("/challenges", func(c *fiber.Ctx) error {
		return c.JSON(challengeService.ListDefinitions())
	})

	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		challenges, err := challengeService.GetUserChallenges(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(challenges)
	})

	securedGroup.Post("/challenges/:type/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeType := models.ChallengeType(c.Params("type"))

		type Req struct {
			Amount   int               `json:"amount" validate:"required,min=1"`
			Metadata map[string]string `json:"metadata"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		prog, err := challengeService.IncrementProgress(userID, challengeType, req.Amount, req.Metadata)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(prog)
	})

	// Evidence submission: multipart photo upload (the evidence-capture
	// collaborator) followed by the verification submit.
	securedGroup.Post("/challenges/:type/verification", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeType := models.ChallengeType(c.Params("type"))

		photoURL := c.FormValue("photo_url")
		description := c.FormValue("description")

		if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
			uploaded, uploadErr := utils.UploadEvidencePhoto(fileHeader, userID)
			if uploadErr != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": uploadErr.Error()})
			}
			photoURL = uploaded
		}

		sub, err := verificationService.Submit(userID, challengeType, photoURL, description)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	})

	securedGroup.Get("/banners", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		challenges, err := challengeService.GetUserChallenges(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(services.ComputeBanners(challenges))
	})

	securedGroup.Get("/banners/next", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		challenges, err := challengeService.GetUserChallenges(userID)
		if err != nil {
			return fail(c, err)
		}
		next := services.NextToUnlock(challenges)
		if next == nil {
			return c.JSON(fiber.Map{"next": nil})
		}
		return c.JSON(fiber.Map{"next": next})
	})
}

// fail renders a classified error with its mapped status so the UI can tell
// "retry is safe" from "someone else got there first".
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.ToStatusCode(err)).JSON(fiber.Map{
		"error": apperrors.Message(err),
		"kind":  apperrors.KindOf(err),
	})
}
