package services

import (
	"testing"
	"time"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"
)

type fakeSiteStore struct {
	CreateSiteFn            func(site *models.Site) error
	ListSitesForUserFn      func(userID string) ([]models.Site, error)
	GetSiteForUserFn        func(id, userID string) (*models.Site, error)
	SaveSiteFn              func(site *models.Site) error
	SlugTakenFn             func(slug string) (bool, error)
	ListDueScheduledSitesFn func(now time.Time) ([]models.Site, error)
}

func (f *fakeSiteStore) CreateSite(site *models.Site) error { return f.CreateSiteFn(site) }

func (f *fakeSiteStore) ListSitesForUser(userID string) ([]models.Site, error) {
	return f.ListSitesForUserFn(userID)
}

func (f *fakeSiteStore) GetSiteForUser(id, userID string) (*models.Site, error) {
	return f.GetSiteForUserFn(id, userID)
}

func (f *fakeSiteStore) SaveSite(site *models.Site) error { return f.SaveSiteFn(site) }

func (f *fakeSiteStore) SlugTaken(slug string) (bool, error) { return f.SlugTakenFn(slug) }

func (f *fakeSiteStore) ListDueScheduledSites(now time.Time) ([]models.Site, error) {
	return f.ListDueScheduledSitesFn(now)
}

// challengeServiceSpy records increments so site tests can assert the
// publish/share counters move.
func challengeServiceSpy(t *testing.T) (*ChallengeService, *[]models.ChallengeType) {
	t.Helper()
	var increments []models.ChallengeType
	store := emptyChallengeStore()
	store.IncrementProgressFn = func(userID string, challengeType models.ChallengeType, amount, max int, metadata map[string]string) (*models.ChallengeProgress, error) {
		increments = append(increments, challengeType)
		return &models.ChallengeProgress{UserID: userID, ChallengeType: challengeType, Current: amount}, nil
	}
	return NewChallengeService(store), &increments
}

func TestCreateSiteSlugifiesName(t *testing.T) {
	var stored *models.Site
	store := &fakeSiteStore{
		SlugTakenFn: func(string) (bool, error) { return false, nil },
		CreateSiteFn: func(site *models.Site) error {
			stored = site
			return nil
		},
	}
	challenges, _ := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	site, err := svc.CreateSite("h1", "Casa Bella al Mare", "")
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if site != stored {
		t.Fatal("returned site must be the stored one")
	}
	if site.Slug != "casa-bella-al-mare" {
		t.Errorf("slug = %s, want casa-bella-al-mare", site.Slug)
	}
	if site.Status != models.SiteStatusDraft {
		t.Errorf("status = %s, want draft", site.Status)
	}
}

func TestCreateSiteDisambiguatesTakenSlug(t *testing.T) {
	store := &fakeSiteStore{
		SlugTakenFn:  func(string) (bool, error) { return true, nil },
		CreateSiteFn: func(*models.Site) error { return nil },
	}
	challenges, _ := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	site, err := svc.CreateSite("h1", "Casa Bella", "")
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if site.Slug == "casa-bella" || len(site.Slug) <= len("casa-bella-") {
		t.Errorf("taken slug must get a suffix, got %s", site.Slug)
	}
}

func TestCreateSiteRequiresName(t *testing.T) {
	challenges, _ := challengeServiceSpy(t)
	svc := NewSiteService(&fakeSiteStore{}, challenges)

	_, err := svc.CreateSite("h1", "", "")
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishSiteCountsChallenge(t *testing.T) {
	site := &models.Site{ID: "s1", UserID: "h1", Slug: "casa-bella", Status: models.SiteStatusDraft}
	store := &fakeSiteStore{
		GetSiteForUserFn: func(string, string) (*models.Site, error) { return site, nil },
		SaveSiteFn:       func(*models.Site) error { return nil },
	}
	challenges, increments := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	published, err := svc.PublishSite("h1", "s1")
	if err != nil {
		t.Fatalf("PublishSite: %v", err)
	}
	if published.Status != models.SiteStatusPublished || published.PublishedAt == nil {
		t.Errorf("site not published: %+v", published)
	}
	if len(*increments) != 1 || (*increments)[0] != models.ChallengePublishSite {
		t.Errorf("expected one PUBLISH_SITE increment, got %v", *increments)
	}
}

func TestPublishSiteTwiceIsInvalidTransition(t *testing.T) {
	now := time.Now()
	site := &models.Site{ID: "s1", UserID: "h1", Status: models.SiteStatusPublished, PublishedAt: &now}
	store := &fakeSiteStore{
		GetSiteForUserFn: func(string, string) (*models.Site, error) { return site, nil },
	}
	challenges, increments := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	_, err := svc.PublishSite("h1", "s1")
	if !apperrors.IsKind(err, apperrors.KindInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if len(*increments) != 0 {
		t.Error("a failed publish must not move the counter")
	}
}

func TestScheduleSiteRejectsPast(t *testing.T) {
	challenges, _ := challengeServiceSpy(t)
	svc := NewSiteService(&fakeSiteStore{}, challenges)

	_, err := svc.ScheduleSite("h1", "s1", time.Now().Add(-time.Hour))
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScheduleSite(t *testing.T) {
	site := &models.Site{ID: "s1", UserID: "h1", Status: models.SiteStatusDraft}
	store := &fakeSiteStore{
		GetSiteForUserFn: func(string, string) (*models.Site, error) { return site, nil },
		SaveSiteFn:       func(*models.Site) error { return nil },
	}
	challenges, _ := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	publishAt := time.Now().Add(24 * time.Hour)
	scheduled, err := svc.ScheduleSite("h1", "s1", publishAt)
	if err != nil {
		t.Fatalf("ScheduleSite: %v", err)
	}
	if scheduled.Status != models.SiteStatusScheduled {
		t.Errorf("status = %s, want scheduled", scheduled.Status)
	}
	if scheduled.PublishAt == nil || !scheduled.PublishAt.Equal(publishAt) {
		t.Errorf("publishAt = %v, want %v", scheduled.PublishAt, publishAt)
	}
}

func TestRecordShareCountsChallenge(t *testing.T) {
	site := &models.Site{ID: "s1", UserID: "h1", Slug: "casa-bella", Status: models.SiteStatusPublished}
	store := &fakeSiteStore{
		GetSiteForUserFn: func(string, string) (*models.Site, error) { return site, nil },
	}
	challenges, increments := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	if err := svc.RecordShare("h1", "s1", "whatsapp"); err != nil {
		t.Fatalf("RecordShare: %v", err)
	}
	if len(*increments) != 1 || (*increments)[0] != models.ChallengeShareSite {
		t.Errorf("expected one SHARE_SITE increment, got %v", *increments)
	}
}

func TestRecordShareUnknownSite(t *testing.T) {
	store := &fakeSiteStore{
		GetSiteForUserFn: func(id, _ string) (*models.Site, error) {
			return nil, apperrors.NotFound("site %s not found", id)
		},
	}
	challenges, increments := challengeServiceSpy(t)
	svc := NewSiteService(store, challenges)

	err := svc.RecordShare("h1", "missing", "")
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(*increments) != 0 {
		t.Error("a failed share must not move the counter")
	}
}
