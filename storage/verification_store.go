// storage/verification_store.go
package storage

import (
	"errors"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"gorm.io/gorm"
)

func (s *Store) GetSubmission(id string) (*models.VerificationSubmission, error) {
	var sub models.VerificationSubmission
	if err := s.DB.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("verification %s not found", id)
		}
		return nil, apperrors.Store(err)
	}
	return &sub, nil
}

func (s *Store) ListPendingSubmissions() ([]models.VerificationSubmission, error) {
	var subs []models.VerificationSubmission
	err := s.DB.Where("status = ?", models.VerificationPending).
		Order("submitted_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return subs, nil
}

func (s *Store) ListSubmissionsForUser(userID string) ([]models.VerificationSubmission, error) {
	var subs []models.VerificationSubmission
	err := s.DB.Where("user_id = ?", userID).
		Order("submitted_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return subs, nil
}

func (s *Store) ListSubmissionsForChallenge(userID string, challengeType models.ChallengeType) ([]models.VerificationSubmission, error) {
	var subs []models.VerificationSubmission
	err := s.DB.Where("user_id = ? AND challenge_type = ?", userID, challengeType).
		Order("submitted_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return subs, nil
}

// CreateSubmission writes the submission, its admin notification and the
// progress flip to PENDING_VERIFICATION as one transaction — either the full
// submit lands or none of it does.
func (s *Store) CreateSubmission(sub *models.VerificationSubmission, note *models.AdminNotification, transition models.ProgressTransition) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return applyProgressTransition(tx, transition)
	})
	return wrap(err)
}

// ApplyDecision performs the terminal review transition. The submission
// update is conditional on the row still being PENDING, so under a
// double-decision race exactly one admin wins; the loser gets a conflict,
// never a silent overwrite.
func (s *Store) ApplyDecision(d *models.Decision) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VerificationSubmission{}).
			Where("id = ? AND status = ?", d.SubmissionID, models.VerificationPending).
			Updates(map[string]interface{}{
				"status":           d.Status,
				"reviewed_at":      d.ReviewedAt,
				"reviewed_by":      d.ReviewedBy,
				"rejection_reason": d.RejectionReason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.VerificationSubmission{}).
				Where("id = ?", d.SubmissionID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.NotFound("verification %s not found", d.SubmissionID)
			}
			return apperrors.Conflict("verification %s already decided", d.SubmissionID)
		}

		if err := applyProgressTransition(tx, d.Progress); err != nil {
			return err
		}
		for i := range d.Notifications {
			if err := tx.Create(&d.Notifications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrap(err)
}
