package services

import (
	"fmt"
	"log"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SiteStore is the slice of the persistence collaborator the site lifecycle
// needs.
type SiteStore interface {
	CreateSite(site *models.Site) error
	ListSitesForUser(userID string) ([]models.Site, error)
	GetSiteForUser(id, userID string) (*models.Site, error)
	SaveSite(site *models.Site) error
	SlugTaken(slug string) (bool, error)
	ListDueScheduledSites(now time.Time) ([]models.Site, error)
}

// SiteService owns the minimal site lifecycle (draft → scheduled → published)
// that feeds the publish/share challenge counters. Builder rendering stays
// out of this service.
type SiteService struct {
	Store      SiteStore
	Challenges *ChallengeService
}

func NewSiteService(store SiteStore, challenges *ChallengeService) *SiteService {
	return &SiteService{Store: store, Challenges: challenges}
}

func (s *SiteService) CreateSite(userID, name, theme string) (*models.Site, error) {
	if name == "" {
		return nil, apperrors.Validation("site name is required")
	}

	siteSlug := slug.Make(name)
	taken, err := s.Store.SlugTaken(siteSlug)
	if err != nil {
		return nil, err
	}
	if taken {
		siteSlug = fmt.Sprintf("%s-%s", siteSlug, uuid.NewString()[:8])
	}

	site := &models.Site{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Slug:   siteSlug,
		Status: models.SiteStatusDraft,
	}
	if theme != "" {
		site.Theme = theme
	}
	if err := s.Store.CreateSite(site); err != nil {
		return nil, err
	}
	log.Printf("🏡 [SITE] user=%s created site %s (slug=%s)", userID, site.ID, site.Slug)
	return site, nil
}

func (s *SiteService) ListSites(userID string) ([]models.Site, error) {
	return s.Store.ListSitesForUser(userID)
}

// PublishSite flips the site live and counts it toward the PUBLISH_SITE
// challenge.
func (s *SiteService) PublishSite(userID, siteID string) (*models.Site, error) {
	site, err := s.Store.GetSiteForUser(siteID, userID)
	if err != nil {
		return nil, err
	}
	if site.Status == models.SiteStatusPublished {
		return nil, apperrors.InvalidTransition("site %s is already published", siteID)
	}

	now := time.Now()
	site.Status = models.SiteStatusPublished
	site.PublishAt = nil
	site.PublishedAt = &now
	if err := s.Store.SaveSite(site); err != nil {
		return nil, err
	}

	s.countPublish(userID, site.Slug)
	return site, nil
}

// ScheduleSite queues the site for publication at a future time; the
// scheduler job flips it.
func (s *SiteService) ScheduleSite(userID, siteID string, publishAt time.Time) (*models.Site, error) {
	if publishAt.Before(time.Now()) {
		return nil, apperrors.Validation("publish_at must be in the future")
	}
	site, err := s.Store.GetSiteForUser(siteID, userID)
	if err != nil {
		return nil, err
	}
	if site.Status == models.SiteStatusPublished {
		return nil, apperrors.InvalidTransition("site %s is already published", siteID)
	}

	site.Status = models.SiteStatusScheduled
	site.PublishAt = &publishAt
	if err := s.Store.SaveSite(site); err != nil {
		return nil, err
	}
	return site, nil
}

// RecordShare counts a share of the site link toward the SHARE_SITE
// challenge.
func (s *SiteService) RecordShare(userID, siteID, channel string) error {
	site, err := s.Store.GetSiteForUser(siteID, userID)
	if err != nil {
		return err
	}
	metadata := map[string]string{"site_id": site.ID}
	if channel != "" {
		metadata["channel"] = channel
	}
	_, err = s.Challenges.IncrementProgress(userID, models.ChallengeShareSite, 1, metadata)
	return err
}

func (s *SiteService) countPublish(userID, siteSlug string) {
	_, err := s.Challenges.IncrementProgress(userID, models.ChallengePublishSite, 1, map[string]string{"slug": siteSlug})
	if err != nil {
		log.Printf("⚠️ [SITE] publish counted failed for user=%s: %v", userID, err)
	}
}

// StartPublishScheduler flips scheduled sites to published once a minute.
func (s *SiteService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			sites, err := s.Store.ListDueScheduledSites(time.Now())
			if err != nil {
				log.Printf("[Scheduler] site query failed: %v", err)
				return
			}
			for i := range sites {
				site := &sites[i]
				now := time.Now()
				site.Status = models.SiteStatusPublished
				site.PublishAt = nil
				site.PublishedAt = &now
				if err := s.Store.SaveSite(site); err != nil {
					log.Printf("[Scheduler] failed to publish site %s: %v", site.ID, err)
					continue
				}
				log.Printf("✅ Auto-published site: %s", site.Slug)
				s.countPublish(site.UserID, site.Slug)
			}
		}),
	)
}
