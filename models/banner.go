package models

import "time"

type BannerRarity string

const (
	RarityCommon   BannerRarity = "COMMON"
	RarityUncommon BannerRarity = "UNCOMMON"
	RarityRare     BannerRarity = "RARE"
)

// BannerDefinition: static config. A banner unlocks when every challenge in
// RequiredChallenges is COMPLETED. Unlock state is never persisted — it is
// recomputed from challenge statuses on every read, so a late status
// correction can never leave a stale banner behind.
type BannerDefinition struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Icon               string          `json:"icon"`
	Rarity             BannerRarity    `json:"rarity"`
	RequiredChallenges []ChallengeType `json:"required_challenges"`
}

type BannerProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Banner is the derived view of a definition for one user.
type Banner struct {
	BannerDefinition
	IsUnlocked bool           `json:"is_unlocked"`
	UnlockedAt *time.Time     `json:"unlocked_at,omitempty"`
	Progress   BannerProgress `json:"progress"`
}

// BannerCatalog: definition order drives the "next to unlock" prompt.
var BannerCatalog = []BannerDefinition{
	{
		ID:          "PRIMI_PASSI",
		Title:       "Primi Passi",
		Description: "You took your first steps as a digital host",
		Icon:        "footprints",
		Rarity:      RarityCommon,
		RequiredChallenges: []ChallengeType{
			ChallengeCompleteProfile,
			ChallengePublishSite,
			ChallengeCustomizeTheme,
			ChallengeUploadPhotos,
		},
	},
	{
		ID:          "PADRONE_DI_CASA",
		Title:       "Padrone di Casa",
		Description: "Your guests find everything they need on your site",
		Icon:        "home-heart",
		Rarity:      RarityUncommon,
		RequiredChallenges: []ChallengeType{
			ChallengeAddServices,
			ChallengeCollectReviews,
			ChallengeCreateGuide,
		},
	},
	{
		ID:          "IN_VETRINA",
		Title:       "In Vetrina",
		Description: "Your property is out there for the world to see",
		Icon:        "megaphone",
		Rarity:      RarityUncommon,
		RequiredChallenges: []ChallengeType{
			ChallengePublishSite,
			ChallengeShareSite,
		},
	},
	{
		ID:          "AMBASCIATORE",
		Title:       "Ambasciatore",
		Description: "You welcome guests from all over the world",
		Icon:        "globe-stand",
		Rarity:      RarityRare,
		RequiredChallenges: []ChallengeType{
			ChallengeShareSite,
			ChallengeConnectSocials,
			ChallengeTranslateSite,
		},
	},
}
