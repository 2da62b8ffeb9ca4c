// storage/site_store.go
package storage

import (
	"errors"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"gorm.io/gorm"
)

func (s *Store) CreateSite(site *models.Site) error {
	if err := s.DB.Create(site).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("slug %s already taken", site.Slug)
		}
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) ListSitesForUser(userID string) ([]models.Site, error) {
	var sites []models.Site
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sites).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return sites, nil
}

func (s *Store) GetSiteForUser(id, userID string) (*models.Site, error) {
	var site models.Site
	if err := s.DB.First(&site, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("site %s not found", id)
		}
		return nil, apperrors.Store(err)
	}
	return &site, nil
}

func (s *Store) SaveSite(site *models.Site) error {
	if err := s.DB.Save(site).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Store) SlugTaken(slug string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Site{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, apperrors.Store(err)
	}
	return count > 0, nil
}

func (s *Store) ListDueScheduledSites(now time.Time) ([]models.Site, error) {
	var sites []models.Site
	err := s.DB.Where("status = ? AND publish_at <= ?", models.SiteStatusScheduled, now).
		Find(&sites).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return sites, nil
}
