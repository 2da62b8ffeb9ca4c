package models

import (
	"sort"
	"time"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Verdict is the admin's decision on a pending submission.
type Verdict string

const (
	VerdictApprove Verdict = "APPROVE"
	VerdictReject  Verdict = "REJECT"
)

// VerificationSubmission: one photo-evidence package per submit. Exactly one
// terminal transition (APPROVED or REJECTED) is allowed; after that the row
// is immutable. A re-attempt after rejection creates a new row.
type VerificationSubmission struct {
	ID               string             `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID           string             `gorm:"index;not null" json:"user_id"`
	ChallengeType    ChallengeType      `gorm:"type:varchar(32);index;not null" json:"challenge_type"`
	PhotoURL         string             `gorm:"type:text;not null" json:"photo_url"`
	PhotoDescription string             `gorm:"type:text" json:"photo_description,omitempty"`
	Status           VerificationStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	SubmittedAt      time.Time          `gorm:"autoCreateTime" json:"submitted_at"`
	ReviewedAt       *time.Time         `json:"reviewed_at,omitempty"`
	ReviewedBy       *string            `json:"reviewed_by,omitempty"`
	RejectionReason  *string            `json:"rejection_reason,omitempty"`
}

// Decision bundles everything a terminal review writes: the conditional
// submission update, the progress transition and the user-facing
// notifications. The store applies it as one transaction.
type Decision struct {
	SubmissionID    string
	Status          VerificationStatus
	ReviewedBy      string
	ReviewedAt      time.Time
	RejectionReason *string
	Progress        ProgressTransition
	Notifications   []UserNotification
}

// DeriveChallengeStatus folds a (user, challenge) pair's submissions, oldest
// to newest, into the challenge status. No submissions → AVAILABLE. A terminal
// decision beats an older PENDING; among terminals the most recent reviewedAt
// wins; a fresh PENDING submitted after the winning terminal supersedes it
// (re-attempt).
func DeriveChallengeStatus(subs []VerificationSubmission) ChallengeStatus {
	if len(subs) == 0 {
		return StatusAvailable
	}

	ordered := make([]VerificationSubmission, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
	})

	status := StatusAvailable
	var decidedAt time.Time
	for _, sub := range ordered {
		switch sub.Status {
		case VerificationApproved, VerificationRejected:
			if sub.ReviewedAt == nil || !sub.ReviewedAt.Before(decidedAt) {
				if sub.Status == VerificationApproved {
					status = StatusCompleted
				} else {
					status = StatusRejected
				}
				if sub.ReviewedAt != nil {
					decidedAt = *sub.ReviewedAt
				}
			}
		case VerificationPending:
			if status != StatusCompleted {
				status = StatusPendingVerification
			}
		}
	}
	return status
}
