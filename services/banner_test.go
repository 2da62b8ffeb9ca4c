package services

import (
	"reflect"
	"testing"
	"time"

	"host-engagement-system/models"
)

func challengesWithCompleted(completed map[models.ChallengeType]time.Time) []models.Challenge {
	challenges := make([]models.Challenge, 0, len(models.ChallengeCatalog))
	for _, def := range models.ChallengeCatalog {
		ch := models.Challenge{
			ChallengeDefinition: def,
			Status:              models.StatusAvailable,
		}
		if at, ok := completed[def.Type]; ok {
			done := at
			ch.Status = models.StatusCompleted
			ch.CompletedAt = &done
		}
		challenges = append(challenges, ch)
	}
	return challenges
}

func bannersByID(banners []models.Banner) map[string]models.Banner {
	out := make(map[string]models.Banner, len(banners))
	for _, b := range banners {
		out[b.ID] = b
	}
	return out
}

func TestComputeBannersPartialProgress(t *testing.T) {
	// 2 of the 4 PRIMI_PASSI requirements done → 50%, still locked
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	challenges := challengesWithCompleted(map[models.ChallengeType]time.Time{
		models.ChallengeCompleteProfile: now,
		models.ChallengePublishSite:     now.Add(time.Hour),
	})

	banners := bannersByID(ComputeBanners(challenges))
	primi := banners["PRIMI_PASSI"]
	if primi.IsUnlocked {
		t.Error("PRIMI_PASSI must stay locked at 2/4")
	}
	if primi.Progress.Completed != 2 || primi.Progress.Total != 4 || primi.Progress.Percentage != 50 {
		t.Errorf("PRIMI_PASSI progress = %+v, want 2/4 (50%%)", primi.Progress)
	}
	if primi.UnlockedAt != nil {
		t.Error("a locked banner must not carry an unlock time")
	}
}

func TestComputeBannersUnlock(t *testing.T) {
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	last := base.Add(3 * time.Hour)
	challenges := challengesWithCompleted(map[models.ChallengeType]time.Time{
		models.ChallengeCompleteProfile: base,
		models.ChallengePublishSite:     base.Add(time.Hour),
		models.ChallengeCustomizeTheme:  last,
		models.ChallengeUploadPhotos:    base.Add(2 * time.Hour),
	})

	banners := bannersByID(ComputeBanners(challenges))
	primi := banners["PRIMI_PASSI"]
	if !primi.IsUnlocked {
		t.Fatal("PRIMI_PASSI must unlock at 4/4")
	}
	if primi.Progress.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", primi.Progress.Percentage)
	}
	// unlock time is the latest completion among the required challenges
	if primi.UnlockedAt == nil || !primi.UnlockedAt.Equal(last) {
		t.Errorf("unlockedAt = %v, want %v", primi.UnlockedAt, last)
	}

	// PUBLISH_SITE alone is not enough for IN_VETRINA
	if banners["IN_VETRINA"].IsUnlocked {
		t.Error("IN_VETRINA needs SHARE_SITE too")
	}
}

func TestComputeBannersIsPure(t *testing.T) {
	challenges := challengesWithCompleted(map[models.ChallengeType]time.Time{
		models.ChallengeCompleteProfile: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	})

	first := ComputeBanners(challenges)
	second := ComputeBanners(challenges)
	if !reflect.DeepEqual(first, second) {
		t.Error("same challenges in must give the same banners out")
	}
	if len(first) != len(models.BannerCatalog) {
		t.Errorf("got %d banners, want %d", len(first), len(models.BannerCatalog))
	}
}

func TestUnlockedBanners(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	challenges := challengesWithCompleted(map[models.ChallengeType]time.Time{
		models.ChallengePublishSite: now,
		models.ChallengeShareSite:   now.Add(time.Hour),
	})

	unlocked := UnlockedBanners(challenges)
	if len(unlocked) != 1 || unlocked[0].ID != "IN_VETRINA" {
		t.Fatalf("expected only IN_VETRINA unlocked, got %+v", unlocked)
	}
}

func TestNextToUnlock(t *testing.T) {
	if next := NextToUnlock(challengesWithCompleted(nil)); next != nil {
		t.Errorf("no progress anywhere → no prompt, got %s", next.ID)
	}

	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	challenges := challengesWithCompleted(map[models.ChallengeType]time.Time{
		models.ChallengePublishSite: now,
	})
	next := NextToUnlock(challenges)
	if next == nil || next.ID != "PRIMI_PASSI" {
		t.Fatalf("expected PRIMI_PASSI (first started banner in catalog order), got %+v", next)
	}

	// fully completing everything leaves nothing to prompt for
	all := map[models.ChallengeType]time.Time{}
	for _, def := range models.ChallengeCatalog {
		all[def.Type] = now
	}
	if next := NextToUnlock(challengesWithCompleted(all)); next != nil {
		t.Errorf("all unlocked → no prompt, got %s", next.ID)
	}
}
