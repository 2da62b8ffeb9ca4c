package services

import "host-engagement-system/models"

// Banner derivation is pure: same challenges in, same banners out. Nothing
// here touches storage.

// ComputeBanners derives every banner's unlock state from the user's
// challenge statuses.
func ComputeBanners(challenges []models.Challenge) []models.Banner {
	completed := make(map[models.ChallengeType]*models.Challenge, len(challenges))
	for i := range challenges {
		if challenges[i].Status == models.StatusCompleted {
			completed[challenges[i].Type] = &challenges[i]
		}
	}

	banners := make([]models.Banner, 0, len(models.BannerCatalog))
	for _, def := range models.BannerCatalog {
		banner := models.Banner{BannerDefinition: def}
		total := len(def.RequiredChallenges)

		for _, required := range def.RequiredChallenges {
			ch, ok := completed[required]
			if !ok {
				continue
			}
			banner.Progress.Completed++
			// unlock time = the latest completion among required challenges
			if ch.CompletedAt != nil &&
				(banner.UnlockedAt == nil || ch.CompletedAt.After(*banner.UnlockedAt)) {
				banner.UnlockedAt = ch.CompletedAt
			}
		}

		banner.Progress.Total = total
		banner.Progress.Percentage = models.ProgressPercentage(banner.Progress.Completed, total)
		banner.IsUnlocked = total > 0 && banner.Progress.Completed == total
		if !banner.IsUnlocked {
			banner.UnlockedAt = nil
		}
		banners = append(banners, banner)
	}
	return banners
}

// UnlockedBanners filters ComputeBanners down to unlocked ones.
func UnlockedBanners(challenges []models.Challenge) []models.Banner {
	var unlocked []models.Banner
	for _, b := range ComputeBanners(challenges) {
		if b.IsUnlocked {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// NextToUnlock returns the first banner (in catalog order) that is started
// but not finished — the "almost there" prompt. Nil when nothing qualifies.
func NextToUnlock(challenges []models.Challenge) *models.Banner {
	for _, b := range ComputeBanners(challenges) {
		if !b.IsUnlocked && b.Progress.Completed > 0 {
			next := b
			return &next
		}
	}
	return nil
}
