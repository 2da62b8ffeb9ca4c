package services

import (
	"log"
	"time"

	"host-engagement-system/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// NotificationStore is the slice of the persistence collaborator the inboxes
// need.
type NotificationStore interface {
	CreateAdminNotification(n *models.AdminNotification) error
	CreateUserNotification(n *models.UserNotification) error
	ListAdminNotifications(unreadOnly bool) ([]models.AdminNotification, error)
	ListUserNotifications(userID string) ([]models.UserNotification, error)
	MarkAdminNotificationRead(id string) error
	MarkUserNotificationRead(id, userID string) error
	DeleteAdminNotification(id string) error
	DeleteUserNotification(id, userID string) error
	PurgeReadNotifications(before time.Time) (int64, error)
}

type NotificationService struct {
	Store NotificationStore
	// Retention is how long read notifications stay before the purge job
	// removes them.
	Retention time.Duration
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{
		Store:     store,
		Retention: 30 * 24 * time.Hour,
	}
}

func (s *NotificationService) CreateAdminNotification(n *models.AdminNotification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return s.Store.CreateAdminNotification(n)
}

func (s *NotificationService) CreateUserNotification(n *models.UserNotification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return s.Store.CreateUserNotification(n)
}

// ListAdminNotifications returns the admin inbox, newest first.
func (s *NotificationService) ListAdminNotifications(unreadOnly bool) ([]models.AdminNotification, error) {
	return s.Store.ListAdminNotifications(unreadOnly)
}

// ListUserNotifications returns a host's inbox, newest first.
func (s *NotificationService) ListUserNotifications(userID string) ([]models.UserNotification, error) {
	return s.Store.ListUserNotifications(userID)
}

// MarkAdminRead is idempotent: a second mark on the same notification is a
// no-op success.
func (s *NotificationService) MarkAdminRead(id string) error {
	return s.Store.MarkAdminNotificationRead(id)
}

func (s *NotificationService) MarkUserRead(id, userID string) error {
	return s.Store.MarkUserNotificationRead(id, userID)
}

func (s *NotificationService) RemoveAdmin(id string) error {
	return s.Store.DeleteAdminNotification(id)
}

func (s *NotificationService) RemoveUser(id, userID string) error {
	return s.Store.DeleteUserNotification(id, userID)
}

// StartRetentionScheduler purges old read notifications once a day.
func (s *NotificationService) StartRetentionScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-s.Retention)
			purged, err := s.Store.PurgeReadNotifications(cutoff)
			if err != nil {
				log.Printf("[Retention] purge failed: %v", err)
				return
			}
			if purged > 0 {
				log.Printf("🧹 Purged %d read notification(s) older than %s", purged, cutoff.Format(time.RFC3339))
			}
		}),
	)
}
