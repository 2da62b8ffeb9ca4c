package services

import (
	"fmt"
	"log"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"github.com/google/uuid"
)

// VerificationStore is the slice of the persistence collaborator the review
// workflow needs. CreateSubmission and ApplyDecision are transactional: the
// submission write, the progress transition and the notification fan-out land
// together or not at all.
type VerificationStore interface {
	ListSubmissionsForChallenge(userID string, challengeType models.ChallengeType) ([]models.VerificationSubmission, error)
	CreateSubmission(sub *models.VerificationSubmission, note *models.AdminNotification, transition models.ProgressTransition) error
	GetSubmission(id string) (*models.VerificationSubmission, error)
	ListPendingSubmissions() ([]models.VerificationSubmission, error)
	ApplyDecision(d *models.Decision) error
}

type VerificationService struct {
	Store VerificationStore
}

func NewVerificationService(store VerificationStore) *VerificationService {
	return &VerificationService{Store: store}
}

// Submit creates a PENDING submission for (userID, challengeType) and flips
// the challenge to PENDING_VERIFICATION. The photo itself is the evidence
// collaborator's business — by the time Submit runs, photoURL must already
// point at stored evidence.
func (s *VerificationService) Submit(userID string, challengeType models.ChallengeType, photoURL, description string) (*models.VerificationSubmission, error) {
	if photoURL == "" {
		return nil, apperrors.Validation("photo evidence is required")
	}
	def := models.DefinitionByType(challengeType)
	if def == nil {
		return nil, apperrors.NotFound("unknown challenge %s", challengeType)
	}

	prior, err := s.Store.ListSubmissionsForChallenge(userID, challengeType)
	if err != nil {
		return nil, err
	}
	switch status := models.DeriveChallengeStatus(prior); status {
	case models.StatusPendingVerification:
		return nil, apperrors.InvalidTransition("challenge %s already has a pending verification", challengeType)
	case models.StatusCompleted:
		return nil, apperrors.InvalidTransition("challenge %s is already completed", challengeType)
	}

	sub := &models.VerificationSubmission{
		ID:               uuid.NewString(),
		UserID:           userID,
		ChallengeType:    challengeType,
		PhotoURL:         photoURL,
		PhotoDescription: description,
		Status:           models.VerificationPending,
		SubmittedAt:      time.Now(),
	}
	note := &models.AdminNotification{
		ID:             uuid.NewString(),
		Type:           models.AdminNotifChallengeVerification,
		UserID:         userID,
		ChallengeType:  &challengeType,
		VerificationID: &sub.ID,
		Title:          "New challenge verification",
		Message:        fmt.Sprintf("A host submitted photo evidence for %q", def.Title),
		PhotoURL:       photoURL,
	}
	transition := models.ProgressTransition{
		UserID:        userID,
		ChallengeType: challengeType,
		Status:        models.StatusPendingVerification,
	}

	if err := s.Store.CreateSubmission(sub, note, transition); err != nil {
		log.Printf("❌ [VERIFY] submit failed for user=%s challenge=%s: %v", userID, challengeType, err)
		return nil, err
	}
	log.Printf("📸 [VERIFY] user=%s submitted evidence for challenge=%s (submission=%s)", userID, challengeType, sub.ID)
	return sub, nil
}

// ListPending is the admin review queue, newest first.
func (s *VerificationService) ListPending() ([]models.VerificationSubmission, error) {
	return s.Store.ListPendingSubmissions()
}

// Decide applies the admin's terminal verdict. The adminID is an explicit
// identity resolved by the caller — never ambient session state. Exactly one
// decision can win per submission; a concurrent second decision fails with a
// conflict.
func (s *VerificationService) Decide(verificationID, adminID string, verdict models.Verdict, reason string) error {
	if adminID == "" {
		return apperrors.Validation("admin identity is required")
	}
	if verdict != models.VerdictApprove && verdict != models.VerdictReject {
		return apperrors.Validation("verdict must be APPROVE or REJECT")
	}

	sub, err := s.Store.GetSubmission(verificationID)
	if err != nil {
		return err
	}
	if sub.Status != models.VerificationPending {
		return apperrors.Conflict("verification %s already decided", verificationID)
	}

	def := models.DefinitionByType(sub.ChallengeType)
	if def == nil {
		// Catalog drift: the submission references a challenge that no longer
		// exists. Fail the decision, never panic.
		log.Printf("⚠️ [VERIFY] decision on %s references unknown challenge %s", verificationID, sub.ChallengeType)
		return apperrors.NotFound("challenge %s no longer exists", sub.ChallengeType)
	}

	now := time.Now()
	decision := &models.Decision{
		SubmissionID: verificationID,
		ReviewedBy:   adminID,
		ReviewedAt:   now,
	}

	if verdict == models.VerdictApprove {
		target := def.Target.Value
		decision.Status = models.VerificationApproved
		decision.Progress = models.ProgressTransition{
			UserID:        sub.UserID,
			ChallengeType: sub.ChallengeType,
			Status:        models.StatusCompleted,
			Current:       &target,
			CompletedAt:   &now,
		}
		decision.Notifications = []models.UserNotification{
			{
				ID:            uuid.NewString(),
				UserID:        sub.UserID,
				Type:          models.UserNotifChallengeApproved,
				ChallengeType: &sub.ChallengeType,
				Title:         "Challenge approved",
				Message:       fmt.Sprintf("Your evidence for %q was approved. Reward: %s", def.Title, def.Reward.Title),
			},
		}
		if def.Reward.Kind == models.RewardBadge {
			decision.Notifications = append(decision.Notifications, models.UserNotification{
				ID:            uuid.NewString(),
				UserID:        sub.UserID,
				Type:          models.UserNotifBadgeUnlocked,
				ChallengeType: &sub.ChallengeType,
				Title:         "Badge unlocked",
				Message:       fmt.Sprintf("You unlocked the %q badge", def.Reward.Title),
			})
		}
	} else {
		decision.Status = models.VerificationRejected
		if reason != "" {
			decision.RejectionReason = &reason
		}
		message := fmt.Sprintf("Your evidence for %q was not approved. You can submit new evidence anytime.", def.Title)
		if reason != "" {
			message = fmt.Sprintf("Your evidence for %q was not approved: %s. You can submit new evidence anytime.", def.Title, reason)
		}
		decision.Progress = models.ProgressTransition{
			UserID:        sub.UserID,
			ChallengeType: sub.ChallengeType,
			Status:        models.StatusRejected,
			ClearComplete: true,
		}
		decision.Notifications = []models.UserNotification{
			{
				ID:            uuid.NewString(),
				UserID:        sub.UserID,
				Type:          models.UserNotifChallengeRejected,
				ChallengeType: &sub.ChallengeType,
				Title:         "Challenge rejected",
				Message:       message,
			},
		}
	}

	if err := s.Store.ApplyDecision(decision); err != nil {
		log.Printf("❌ [VERIFY] decision failed for submission=%s admin=%s: %v", verificationID, adminID, err)
		return err
	}
	log.Printf("⚖️ [VERIFY] submission=%s decided %s by admin=%s", verificationID, decision.Status, adminID)
	return nil
}
