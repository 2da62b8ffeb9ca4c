// workers/subscription_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"host-engagement-system/models"
	"host-engagement-system/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionSyncClient polls the billing service for subscription changes.
// Only the processor's status enum is consumed — the billing lifecycle
// itself stays with the processor.
type SubscriptionSyncClient struct {
	BaseURL       string
	Token         string
	HTTPClient    *http.Client
	DB            *gorm.DB
	Notifications *services.NotificationService
}

func NewSubscriptionSyncClient(db *gorm.DB, notifications *services.NotificationService) *SubscriptionSyncClient {
	baseURL := os.Getenv("BILLING_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("BILLING_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("ENGAGEMENT_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("ENGAGEMENT_SERVICE_TOKEN environment variable is required for subscription sync")
	}

	return &SubscriptionSyncClient{
		BaseURL:       baseURL,
		Token:         token,
		DB:            db,
		Notifications: notifications,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *SubscriptionSyncClient) GetChangedSubscriptions(ctx context.Context, since time.Time) ([]models.SubscriptionMirror, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/subscriptions", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call billing service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("billing service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Subscriptions []models.SubscriptionMirror `json:"subscriptions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode billing service response: %w", err)
	}

	return response.Subscriptions, nil
}

// PollSubscriptions mirrors changed subscriptions and fans a
// SUBSCRIPTION_UPDATE notification out to the admin inbox and the affected
// host whenever the status enum changed.
func PollSubscriptions(ctx context.Context, client *SubscriptionSyncClient, pollInterval time.Duration) {
	log.Println("Starting subscription polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Subscription polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			subs, err := client.GetChangedSubscriptions(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling subscriptions: %v", err)
				continue
			}
			if len(subs) == 0 {
				continue
			}
			log.Printf("📥 Received %d subscription change(s) from billing service.", len(subs))

			failed := false
			for i := range subs {
				sub := &subs[i]

				var previous models.SubscriptionMirror
				statusChanged := true
				err := client.DB.Where("user_id = ?", sub.UserID).First(&previous).Error
				if err == nil {
					statusChanged = previous.Status != sub.Status
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("❌ Failed to load subscription mirror for user %s: %v", sub.UserID, err)
					failed = true
					continue
				}

				sub.LastSyncedAt = logTime
				if err := client.DB.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "user_id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"plan", "status", "current_period_end",
						"cancel_at_period_end", "last_synced_at", "updated_at",
					}),
				}).Create(sub).Error; err != nil {
					log.Printf("❌ Failed to upsert subscription for user %s: %v", sub.UserID, err)
					failed = true
					continue
				}

				if statusChanged {
					client.notifyStatusChange(sub)
				}
			}

			if failed {
				// Retry the same window next tick rather than losing changes.
				continue
			}
			lastSyncTime = logTime
			log.Printf("✅ Upserted %d subscription(s) into subscription_mirror table.", len(subs))
		}
	}
}

func (c *SubscriptionSyncClient) notifyStatusChange(sub *models.SubscriptionMirror) {
	adminNote := &models.AdminNotification{
		Type:    models.AdminNotifSubscriptionUpdate,
		UserID:  sub.UserID,
		Title:   "Subscription update",
		Message: fmt.Sprintf("Subscription for host %s is now %s (%s plan)", sub.UserID, sub.Status, sub.Plan),
	}
	if err := c.Notifications.CreateAdminNotification(adminNote); err != nil {
		log.Printf("⚠️ Failed to create admin subscription notification: %v", err)
	}

	userNote := &models.UserNotification{
		UserID:  sub.UserID,
		Type:    models.UserNotifSubscriptionUpdate,
		Title:   "Subscription update",
		Message: fmt.Sprintf("Your subscription is now %s", sub.Status),
	}
	if err := c.Notifications.CreateUserNotification(userNote); err != nil {
		log.Printf("⚠️ Failed to create user subscription notification: %v", err)
	}
}
