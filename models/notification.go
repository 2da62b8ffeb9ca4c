package models

import "time"

type AdminNotificationType string

const (
	AdminNotifChallengeVerification AdminNotificationType = "CHALLENGE_VERIFICATION"
	AdminNotifUserRegistration      AdminNotificationType = "USER_REGISTRATION"
	AdminNotifSubscriptionUpdate    AdminNotificationType = "SUBSCRIPTION_UPDATE"
)

type UserNotificationType string

const (
	UserNotifChallengeApproved  UserNotificationType = "CHALLENGE_APPROVED"
	UserNotifChallengeRejected  UserNotificationType = "CHALLENGE_REJECTED"
	UserNotifBadgeUnlocked      UserNotificationType = "BADGE_UNLOCKED"
	UserNotifSubscriptionUpdate UserNotificationType = "SUBSCRIPTION_UPDATE"
)

// AdminNotification: the back-office inbox. IsRead flips false→true only.
type AdminNotification struct {
	ID             string                `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Type           AdminNotificationType `gorm:"type:varchar(32);not null;index" json:"type"`
	UserID         string                `gorm:"index" json:"user_id,omitempty"`
	ChallengeType  *ChallengeType        `gorm:"type:varchar(32)" json:"challenge_type,omitempty"`
	VerificationID *string               `gorm:"type:uuid" json:"verification_id,omitempty"`
	Title          string                `gorm:"size:255;not null" json:"title"`
	Message        string                `gorm:"type:text;not null" json:"message"`
	PhotoURL       string                `gorm:"type:text" json:"photo_url,omitempty"`
	IsRead         bool                  `gorm:"default:false;index" json:"is_read"`
	CreatedAt      time.Time             `gorm:"autoCreateTime" json:"created_at"`
	ReadAt         *time.Time            `json:"read_at,omitempty"`
}

// UserNotification: the per-host inbox, polled by the dashboard.
type UserNotification struct {
	ID            string               `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID        string               `gorm:"index;not null" json:"user_id"`
	Type          UserNotificationType `gorm:"type:varchar(32);not null" json:"type"`
	ChallengeType *ChallengeType       `gorm:"type:varchar(32)" json:"challenge_type,omitempty"`
	Title         string               `gorm:"size:255;not null" json:"title"`
	Message       string               `gorm:"type:text;not null" json:"message"`
	IsRead        bool                 `gorm:"default:false;index" json:"is_read"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	ReadAt        *time.Time           `json:"read_at,omitempty"`
}
