package models

import (
	"testing"
	"time"
)

func TestClampProgress(t *testing.T) {
	cases := []struct {
		name    string
		current int
		amount  int
		max     int
		want    int
	}{
		{"simple add", 2, 3, 10, 5},
		{"clamps at target", 8, 12, 10, 10},
		{"exactly target", 9, 1, 10, 10},
		{"never below zero", 1, -5, 10, 0},
		{"zero amount", 4, 0, 10, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampProgress(tc.current, tc.amount, tc.max); got != tc.want {
				t.Errorf("ClampProgress(%d, %d, %d) = %d, want %d", tc.current, tc.amount, tc.max, got, tc.want)
			}
		})
	}
}

func TestClampProgressNeverEscapesBounds(t *testing.T) {
	// any sequence of increments keeps current inside [0, max]
	current := 0
	max := 10
	for _, amount := range []int{3, 4, 12, -2, 100, -100, 7} {
		current = ClampProgress(current, amount, max)
		if current < 0 || current > max {
			t.Fatalf("current %d escaped [0, %d]", current, max)
		}
	}
}

func TestProgressPercentage(t *testing.T) {
	if got := ProgressPercentage(5, 10); got != 50 {
		t.Errorf("ProgressPercentage(5, 10) = %d, want 50", got)
	}
	if got := ProgressPercentage(10, 10); got != 100 {
		t.Errorf("ProgressPercentage(10, 10) = %d, want 100", got)
	}
	if got := ProgressPercentage(1, 3); got != 33 {
		t.Errorf("ProgressPercentage(1, 3) = %d, want 33", got)
	}
	if got := ProgressPercentage(2, 3); got != 67 {
		t.Errorf("ProgressPercentage(2, 3) = %d, want 67", got)
	}
	if got := ProgressPercentage(3, 0); got != 0 {
		t.Errorf("ProgressPercentage(3, 0) = %d, want 0", got)
	}
}

func ts(minute int) time.Time {
	return time.Date(2026, 8, 1, 10, minute, 0, 0, time.UTC)
}

func sub(status VerificationStatus, submitted time.Time, reviewed *time.Time) VerificationSubmission {
	return VerificationSubmission{
		ID:            "sub-" + string(status) + submitted.Format("04"),
		UserID:        "u1",
		ChallengeType: ChallengeShareSite,
		PhotoURL:      "https://cdn.example/evidence.jpg",
		Status:        status,
		SubmittedAt:   submitted,
		ReviewedAt:    reviewed,
	}
}

func TestDeriveChallengeStatus(t *testing.T) {
	r5 := ts(5)
	r15 := ts(15)

	cases := []struct {
		name string
		subs []VerificationSubmission
		want ChallengeStatus
	}{
		{"no submissions", nil, StatusAvailable},
		{"single pending", []VerificationSubmission{sub(VerificationPending, ts(0), nil)}, StatusPendingVerification},
		{"approved is completed", []VerificationSubmission{sub(VerificationApproved, ts(0), &r5)}, StatusCompleted},
		{"rejected", []VerificationSubmission{sub(VerificationRejected, ts(0), &r5)}, StatusRejected},
		{
			"fresh pending supersedes rejection",
			[]VerificationSubmission{
				sub(VerificationRejected, ts(0), &r5),
				sub(VerificationPending, ts(10), nil),
			},
			StatusPendingVerification,
		},
		{
			"latest terminal wins",
			[]VerificationSubmission{
				sub(VerificationRejected, ts(0), &r5),
				sub(VerificationApproved, ts(10), &r15),
			},
			StatusCompleted,
		},
		{
			"order of input does not matter",
			[]VerificationSubmission{
				sub(VerificationPending, ts(10), nil),
				sub(VerificationRejected, ts(0), &r5),
			},
			StatusPendingVerification,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveChallengeStatus(tc.subs); got != tc.want {
				t.Errorf("DeriveChallengeStatus = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCatalogIsCompleteAndStable(t *testing.T) {
	if len(ChallengeCatalog) != 10 {
		t.Fatalf("catalog has %d definitions, want 10", len(ChallengeCatalog))
	}
	seen := map[ChallengeType]bool{}
	for _, def := range ChallengeCatalog {
		if seen[def.Type] {
			t.Errorf("duplicate challenge type %s", def.Type)
		}
		seen[def.Type] = true
		if def.Target.Value <= 0 {
			t.Errorf("challenge %s has non-positive target %d", def.Type, def.Target.Value)
		}
		if DefinitionByType(def.Type) == nil {
			t.Errorf("DefinitionByType(%s) = nil", def.Type)
		}
	}
	if DefinitionByType("NOT_A_CHALLENGE") != nil {
		t.Error("DefinitionByType should return nil for unknown types")
	}
}

func TestBannerCatalogReferencesKnownChallenges(t *testing.T) {
	for _, banner := range BannerCatalog {
		if len(banner.RequiredChallenges) == 0 {
			t.Errorf("banner %s requires no challenges", banner.ID)
		}
		for _, required := range banner.RequiredChallenges {
			if DefinitionByType(required) == nil {
				t.Errorf("banner %s requires unknown challenge %s", banner.ID, required)
			}
		}
	}
}
