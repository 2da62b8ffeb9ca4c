package services

import (
	"testing"
	"time"

	"host-engagement-system/models"
)

type fakeNotificationStore struct {
	CreateAdminNotificationFn   func(n *models.AdminNotification) error
	CreateUserNotificationFn    func(n *models.UserNotification) error
	ListAdminNotificationsFn    func(unreadOnly bool) ([]models.AdminNotification, error)
	ListUserNotificationsFn     func(userID string) ([]models.UserNotification, error)
	MarkAdminNotificationReadFn func(id string) error
	MarkUserNotificationReadFn  func(id, userID string) error
	DeleteAdminNotificationFn   func(id string) error
	DeleteUserNotificationFn    func(id, userID string) error
	PurgeReadNotificationsFn    func(before time.Time) (int64, error)
}

func (f *fakeNotificationStore) CreateAdminNotification(n *models.AdminNotification) error {
	return f.CreateAdminNotificationFn(n)
}

func (f *fakeNotificationStore) CreateUserNotification(n *models.UserNotification) error {
	return f.CreateUserNotificationFn(n)
}

func (f *fakeNotificationStore) ListAdminNotifications(unreadOnly bool) ([]models.AdminNotification, error) {
	return f.ListAdminNotificationsFn(unreadOnly)
}

func (f *fakeNotificationStore) ListUserNotifications(userID string) ([]models.UserNotification, error) {
	return f.ListUserNotificationsFn(userID)
}

func (f *fakeNotificationStore) MarkAdminNotificationRead(id string) error {
	return f.MarkAdminNotificationReadFn(id)
}

func (f *fakeNotificationStore) MarkUserNotificationRead(id, userID string) error {
	return f.MarkUserNotificationReadFn(id, userID)
}

func (f *fakeNotificationStore) DeleteAdminNotification(id string) error {
	return f.DeleteAdminNotificationFn(id)
}

func (f *fakeNotificationStore) DeleteUserNotification(id, userID string) error {
	return f.DeleteUserNotificationFn(id, userID)
}

func (f *fakeNotificationStore) PurgeReadNotifications(before time.Time) (int64, error) {
	return f.PurgeReadNotificationsFn(before)
}

func TestCreateAdminNotificationAssignsID(t *testing.T) {
	var stored *models.AdminNotification
	store := &fakeNotificationStore{
		CreateAdminNotificationFn: func(n *models.AdminNotification) error {
			stored = n
			return nil
		},
	}
	svc := NewNotificationService(store)

	note := &models.AdminNotification{
		Type:    models.AdminNotifUserRegistration,
		UserID:  "h1",
		Title:   "New host registered",
		Message: "mario just created an account",
	}
	if err := svc.CreateAdminNotification(note); err != nil {
		t.Fatalf("CreateAdminNotification: %v", err)
	}
	if stored.ID == "" {
		t.Error("service must assign an id before storing")
	}
}

func TestCreateUserNotificationKeepsExplicitID(t *testing.T) {
	var stored *models.UserNotification
	store := &fakeNotificationStore{
		CreateUserNotificationFn: func(n *models.UserNotification) error {
			stored = n
			return nil
		},
	}
	svc := NewNotificationService(store)

	note := &models.UserNotification{
		ID:      "pre-assigned",
		UserID:  "h1",
		Type:    models.UserNotifChallengeApproved,
		Title:   "Challenge approved",
		Message: "well done",
	}
	if err := svc.CreateUserNotification(note); err != nil {
		t.Fatalf("CreateUserNotification: %v", err)
	}
	if stored.ID != "pre-assigned" {
		t.Errorf("id = %s, want the pre-assigned one", stored.ID)
	}
}

func TestMarkUserReadIsScopedToOwner(t *testing.T) {
	var gotID, gotUser string
	store := &fakeNotificationStore{
		MarkUserNotificationReadFn: func(id, userID string) error {
			gotID, gotUser = id, userID
			return nil
		},
	}
	svc := NewNotificationService(store)

	if err := svc.MarkUserRead("n1", "h1"); err != nil {
		t.Fatalf("MarkUserRead: %v", err)
	}
	if gotID != "n1" || gotUser != "h1" {
		t.Errorf("store called with (%s, %s), want (n1, h1)", gotID, gotUser)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	calls := 0
	store := &fakeNotificationStore{
		MarkAdminNotificationReadFn: func(string) error {
			calls++
			// the store treats an already-read row as success
			return nil
		},
	}
	svc := NewNotificationService(store)

	if err := svc.MarkAdminRead("n1"); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := svc.MarkAdminRead("n1"); err != nil {
		t.Fatalf("second mark must stay a no-op success, got %v", err)
	}
	if calls != 2 {
		t.Errorf("store called %d times, want 2", calls)
	}
}

func TestRetentionDefault(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{})
	if svc.Retention != 30*24*time.Hour {
		t.Errorf("retention = %s, want 30 days", svc.Retention)
	}
}
