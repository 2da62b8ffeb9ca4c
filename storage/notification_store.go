// storage/notification_store.go
package storage

import (
	"errors"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"gorm.io/gorm"
)

func (s *Store) CreateAdminNotification(n *models.AdminNotification) error {
	if err := s.DB.Create(n).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) CreateUserNotification(n *models.UserNotification) error {
	if err := s.DB.Create(n).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) ListAdminNotifications(unreadOnly bool) ([]models.AdminNotification, error) {
	query := s.DB.Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	var notes []models.AdminNotification
	if err := query.Find(&notes).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return notes, nil
}

func (s *Store) ListUserNotifications(userID string) ([]models.UserNotification, error) {
	var notes []models.UserNotification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return notes, nil
}

// MarkAdminNotificationRead is idempotent: marking an already-read
// notification succeeds without touching the row.
func (s *Store) MarkAdminNotificationRead(id string) error {
	var note models.AdminNotification
	if err := s.DB.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("notification %s not found", id)
		}
		return apperrors.Store(err)
	}
	if note.IsRead {
		return nil
	}
	now := time.Now()
	note.IsRead = true
	note.ReadAt = &now
	if err := s.DB.Save(&note).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) MarkUserNotificationRead(id, userID string) error {
	var note models.UserNotification
	if err := s.DB.First(&note, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("notification %s not found", id)
		}
		return apperrors.Store(err)
	}
	if note.IsRead {
		return nil
	}
	now := time.Now()
	note.IsRead = true
	note.ReadAt = &now
	if err := s.DB.Save(&note).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) DeleteAdminNotification(id string) error {
	res := s.DB.Delete(&models.AdminNotification{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification %s not found", id)
	}
	return nil
}

func (s *Store) DeleteUserNotification(id, userID string) error {
	res := s.DB.Delete(&models.UserNotification{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification %s not found", id)
	}
	return nil
}

// PurgeReadNotifications removes read entries older than the cutoff from both
// inboxes. Used by the retention job.
func (s *Store) PurgeReadNotifications(before time.Time) (int64, error) {
	var purged int64

	res := s.DB.Where("is_read = ? AND created_at < ?", true, before).
		Delete(&models.AdminNotification{})
	if res.Error != nil {
		return 0, apperrors.Store(res.Error)
	}
	purged += res.RowsAffected

	res = s.DB.Where("is_read = ? AND created_at < ?", true, before).
		Delete(&models.UserNotification{})
	if res.Error != nil {
		return purged, apperrors.Store(res.Error)
	}
	purged += res.RowsAffected

	return purged, nil
}
