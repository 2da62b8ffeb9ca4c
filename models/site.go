package models

import (
	"time"

	"gorm.io/gorm"
)

type SiteStatus string

const (
	SiteStatusDraft     SiteStatus = "draft"
	SiteStatusScheduled SiteStatus = "scheduled"
	SiteStatusPublished SiteStatus = "published"
)

// Site is a host's website. Sections hold the builder's page data as opaque
// jsonb — rendering belongs to the template layer, not this service.
type Site struct {
	ID          string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Theme       string     `gorm:"type:varchar(64);default:'classico'" json:"theme"`
	Sections    string     `gorm:"type:jsonb;default:'[]'" json:"sections"`
	Status      SiteStatus `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	PublishAt   *time.Time `json:"publish_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
