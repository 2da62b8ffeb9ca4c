package models

import (
	"math"
	"time"
)

// ChallengeType is the stable identifier of a challenge definition.
// Never derive challenge identity from catalog position — reordering the
// catalog must not change ids.
type ChallengeType string

const (
	ChallengeCompleteProfile ChallengeType = "COMPLETE_PROFILE"
	ChallengePublishSite     ChallengeType = "PUBLISH_SITE"
	ChallengeShareSite       ChallengeType = "SHARE_SITE"
	ChallengeUploadPhotos    ChallengeType = "UPLOAD_PHOTOS"
	ChallengeCustomizeTheme  ChallengeType = "CUSTOMIZE_THEME"
	ChallengeAddServices     ChallengeType = "ADD_SERVICES"
	ChallengeConnectSocials  ChallengeType = "CONNECT_SOCIALS"
	ChallengeCollectReviews  ChallengeType = "COLLECT_REVIEWS"
	ChallengeTranslateSite   ChallengeType = "TRANSLATE_SITE"
	ChallengeCreateGuide     ChallengeType = "CREATE_GUIDE"
)

// ChallengeStatus is the per-(user, challenge) state machine state.
// IN_PROGRESS and LOCKED are reserved — no transition reaches them yet.
type ChallengeStatus string

const (
	StatusAvailable           ChallengeStatus = "AVAILABLE"
	StatusInProgress          ChallengeStatus = "IN_PROGRESS"
	StatusPendingVerification ChallengeStatus = "PENDING_VERIFICATION"
	StatusCompleted           ChallengeStatus = "COMPLETED"
	StatusRejected            ChallengeStatus = "REJECTED"
	StatusLocked              ChallengeStatus = "LOCKED"
)

type RewardKind string

const (
	RewardBadge        RewardKind = "BADGE"
	RewardConsultation RewardKind = "CONSULTATION"
	RewardTemplate     RewardKind = "TEMPLATE"
	RewardGuide        RewardKind = "GUIDE"
	RewardTranslation  RewardKind = "TRANSLATION"
	RewardShowcase     RewardKind = "SHOWCASE"
)

type ChallengeReward struct {
	Kind        RewardKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type ChallengeTarget struct {
	Value       int    `json:"value"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// ChallengeDefinition: static catalog entry (loaded once, never mutated).
type ChallengeDefinition struct {
	Type        ChallengeType   `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Reward      ChallengeReward `json:"reward"`
	Target      ChallengeTarget `json:"target"`
}

// ChallengeProgress: one row per (user, challenge). Current is clamped to
// [0, target]; reaching the target does NOT advance Status — only the
// verification transitions do.
type ChallengeProgress struct {
	ID            string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID        string            `gorm:"not null;uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeType ChallengeType     `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_challenge" json:"challenge_type"`
	Current       int               `gorm:"not null;default:0" json:"current"`
	Status        ChallengeStatus   `gorm:"type:varchar(32);not null;default:'AVAILABLE'" json:"status"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	LastUpdated   time.Time         `gorm:"autoUpdateTime" json:"last_updated"`
	Metadata      map[string]string `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

// ChallengeProgressView is the derived progress block returned to the UI.
type ChallengeProgressView struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// Challenge is the read-only join of definition and progress.
type Challenge struct {
	ChallengeDefinition
	Status      ChallengeStatus       `json:"status"`
	Progress    ChallengeProgressView `json:"progress"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	LastUpdated time.Time             `json:"last_updated"`
}

// ProgressTransition describes the progress-row mutation that accompanies a
// verification transition. Applied by the store inside the same transaction
// as the submission write, so either the full transition lands or none of it.
type ProgressTransition struct {
	UserID        string
	ChallengeType ChallengeType
	Status        ChallengeStatus
	Current       *int       // set to force a value (COMPLETED forces target)
	CompletedAt   *time.Time // stamped on COMPLETED
	ClearComplete bool       // REJECTED clears a stale completedAt
}

// ClampProgress applies an increment with saturation at [0, max].
func ClampProgress(current, amount, max int) int {
	next := current + amount
	if next > max {
		return max
	}
	if next < 0 {
		return 0
	}
	return next
}

// ProgressPercentage rounds current/target to a whole percentage.
func ProgressPercentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(target) * 100))
}
