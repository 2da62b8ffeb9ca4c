package models

import (
	"time"

	"gorm.io/gorm"
)

// HostProfile is a local snapshot of host account data from the auth/profile
// service. Owned solely by this service; populated via sync worker.
type HostProfile struct {
	ID                string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID    string     `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Username          string     `gorm:"index;not null" json:"username"`
	Email             string     `json:"email,omitempty"`
	PropertyName      *string    `json:"property_name,omitempty"`
	PreferredLanguage *string    `json:"preferred_language,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
