package models

// ChallengeCatalog: the fixed challenge definitions (static config, like the
// banner catalog in banner.go). Keyed by ChallengeType, never by position.
var ChallengeCatalog = []ChallengeDefinition{
	{
		Type:        ChallengeCompleteProfile,
		Title:       "Tell Your Story",
		Description: "Fill in your host profile: photo, bio and property details",
		Icon:        "user-circle",
		Reward:      ChallengeReward{Kind: RewardBadge, Title: "Storyteller", Description: "Profile badge shown on your public page"},
		Target:      ChallengeTarget{Value: 1, Unit: "profile", Description: "Complete your host profile once"},
	},
	{
		Type:        ChallengePublishSite,
		Title:       "Go Live",
		Description: "Publish your website for the first time",
		Icon:        "rocket",
		Reward:      ChallengeReward{Kind: RewardBadge, Title: "Online Host", Description: "Badge for your first published site"},
		Target:      ChallengeTarget{Value: 1, Unit: "site", Description: "Publish your site once"},
	},
	{
		Type:        ChallengeShareSite,
		Title:       "Spread the Word",
		Description: "Share your website link with guests and on social channels",
		Icon:        "share",
		Reward:      ChallengeReward{Kind: RewardConsultation, Title: "Visibility Consultation", Description: "30-minute visibility session with our team"},
		Target:      ChallengeTarget{Value: 10, Unit: "shares", Description: "Share your site 10 times"},
	},
	{
		Type:        ChallengeUploadPhotos,
		Title:       "Show Your Space",
		Description: "Upload photos of your property to the gallery",
		Icon:        "camera",
		Reward:      ChallengeReward{Kind: RewardTemplate, Title: "Gallery Template", Description: "Premium gallery layout unlocked"},
		Target:      ChallengeTarget{Value: 8, Unit: "photos", Description: "Upload 8 gallery photos"},
	},
	{
		Type:        ChallengeCustomizeTheme,
		Title:       "Make It Yours",
		Description: "Customize your theme colors and fonts",
		Icon:        "palette",
		Reward:      ChallengeReward{Kind: RewardBadge, Title: "Designer", Description: "Theme customization badge"},
		Target:      ChallengeTarget{Value: 1, Unit: "theme", Description: "Save a customized theme"},
	},
	{
		Type:        ChallengeAddServices,
		Title:       "List Your Services",
		Description: "Add the services and extras guests can book",
		Icon:        "concierge-bell",
		Reward:      ChallengeReward{Kind: RewardGuide, Title: "Upselling Guide", Description: "Guide to pricing extra services"},
		Target:      ChallengeTarget{Value: 3, Unit: "services", Description: "Add 3 services to your site"},
	},
	{
		Type:        ChallengeConnectSocials,
		Title:       "Get Connected",
		Description: "Link your social media profiles to your website",
		Icon:        "link",
		Reward:      ChallengeReward{Kind: RewardBadge, Title: "Connected", Description: "Social links badge"},
		Target:      ChallengeTarget{Value: 2, Unit: "profiles", Description: "Connect 2 social profiles"},
	},
	{
		Type:        ChallengeCollectReviews,
		Title:       "Guest Voices",
		Description: "Collect guest reviews and publish them on your site",
		Icon:        "star",
		Reward:      ChallengeReward{Kind: RewardShowcase, Title: "Homepage Showcase", Description: "Your property featured in our showcase"},
		Target:      ChallengeTarget{Value: 5, Unit: "reviews", Description: "Publish 5 guest reviews"},
	},
	{
		Type:        ChallengeTranslateSite,
		Title:       "Welcome the World",
		Description: "Add a second language to your website",
		Icon:        "globe",
		Reward:      ChallengeReward{Kind: RewardTranslation, Title: "Professional Translation", Description: "One page professionally translated"},
		Target:      ChallengeTarget{Value: 1, Unit: "language", Description: "Enable one extra language"},
	},
	{
		Type:        ChallengeCreateGuide,
		Title:       "Local Expert",
		Description: "Write a local area guide for your guests",
		Icon:        "map",
		Reward:      ChallengeReward{Kind: RewardGuide, Title: "Guide Toolkit", Description: "Toolkit for printable guest guides"},
		Target:      ChallengeTarget{Value: 1, Unit: "guide", Description: "Publish one area guide"},
	},
}

var definitionIndex = func() map[ChallengeType]*ChallengeDefinition {
	idx := make(map[ChallengeType]*ChallengeDefinition, len(ChallengeCatalog))
	for i := range ChallengeCatalog {
		idx[ChallengeCatalog[i].Type] = &ChallengeCatalog[i]
	}
	return idx
}()

// DefinitionByType returns the catalog entry for t, or nil if unknown.
func DefinitionByType(t ChallengeType) *ChallengeDefinition {
	return definitionIndex[t]
}
