// models/subscription.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus mirrors the payment processor's status enum. The
// processor owns the billing lifecycle; this service only consumes the enum.
type SubscriptionStatus string

const (
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionUnpaid   SubscriptionStatus = "unpaid"
)

// SubscriptionMirror mirrors subscription state from the billing service.
// Table name: subscription_mirror
type SubscriptionMirror struct {
	ID                string             `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID            string             `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Plan              string             `gorm:"type:varchar(64);not null" json:"plan"`
	Status            SubscriptionStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	CurrentPeriodEnd  *time.Time         `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool               `gorm:"not null;default:false" json:"cancel_at_period_end"`
	LastSyncedAt      time.Time          `gorm:"not null" json:"last_synced_at"`
	CreatedAt         time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"not null" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionMirror) TableName() string { return "subscription_mirror" }
