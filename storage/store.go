// storage/store.go
package storage

import (
	"errors"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed persistence collaborator. Services depend on the
// narrow interfaces they declare; Store satisfies all of them.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// wrap keeps already-classified errors intact and marks everything else as a
// store failure, cause unmodified.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Store(err)
}

func (s *Store) ListProgress(userID string) ([]models.ChallengeProgress, error) {
	var rows []models.ChallengeProgress
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return rows, nil
}

// IncrementProgress applies a clamped increment under a row lock so two
// concurrent increments can never lose an update. The row is created with
// zero progress on first touch.
func (s *Store) IncrementProgress(userID string, challengeType models.ChallengeType, amount, max int, metadata map[string]string) (*models.ChallengeProgress, error) {
	var updated *models.ChallengeProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var prog models.ChallengeProgress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND challenge_type = ?", userID, challengeType).
			First(&prog).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prog = models.ChallengeProgress{
				ID:            uuid.NewString(),
				UserID:        userID,
				ChallengeType: challengeType,
				Status:        models.StatusAvailable,
			}
			if err := tx.Create(&prog).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		prog.Current = models.ClampProgress(prog.Current, amount, max)
		if len(metadata) > 0 {
			if prog.Metadata == nil {
				prog.Metadata = make(map[string]string, len(metadata))
			}
			for k, v := range metadata {
				prog.Metadata[k] = v
			}
		}
		prog.LastUpdated = time.Now()

		if err := tx.Save(&prog).Error; err != nil {
			return err
		}
		updated = &prog
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}
	return updated, nil
}

// applyProgressTransition writes the progress side of a verification
// transition inside the caller's transaction.
func applyProgressTransition(tx *gorm.DB, t models.ProgressTransition) error {
	var prog models.ChallengeProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND challenge_type = ?", t.UserID, t.ChallengeType).
		First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.ChallengeProgress{
			ID:            uuid.NewString(),
			UserID:        t.UserID,
			ChallengeType: t.ChallengeType,
			Status:        models.StatusAvailable,
		}
		if err := tx.Create(&prog).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	prog.Status = t.Status
	if t.Current != nil {
		prog.Current = *t.Current
	}
	if t.CompletedAt != nil {
		prog.CompletedAt = t.CompletedAt
	}
	if t.ClearComplete {
		prog.CompletedAt = nil
	}
	prog.LastUpdated = time.Now()

	return tx.Save(&prog).Error
}
