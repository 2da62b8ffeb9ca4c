// workers/host_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"host-engagement-system/models"
	"host-engagement-system/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MirroredHostFromAuth matches the JSON response from the auth/profile
// service's public sync endpoint.
type MirroredHostFromAuth struct {
	ID                string    `json:"id"`
	ExternalID        string    `json:"external_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PropertyName      *string   `json:"property_name,omitempty"`
	PreferredLanguage *string   `json:"preferred_language,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type GetHostChangesResponse struct {
	Hosts []MirroredHostFromAuth `json:"hosts"`
}

// HostSyncWorker mirrors host accounts from the auth service and raises a
// USER_REGISTRATION admin notification for every newly seen host.
type HostSyncWorker struct {
	db            *gorm.DB
	notifications *services.NotificationService
	interval      time.Duration
	baseURL       string
	endpointPath  string
	serviceToken  string
	httpClient    *http.Client
}

func NewHostSyncWorker(db *gorm.DB, notifications *services.NotificationService, syncServiceBaseURL, endpointPath, serviceToken string) *HostSyncWorker {
	return &HostSyncWorker{
		db:            db,
		notifications: notifications,
		interval:      1 * time.Minute,
		baseURL:       syncServiceBaseURL,
		endpointPath:  endpointPath,
		serviceToken:  serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *HostSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Host Sync Worker (auth-service → host_profiles)…")
	go w.run(ctx)
}

func (w *HostSyncWorker) run(ctx context.Context) {
	// Initial sync backfills from the beginning of time.
	if err := w.syncBatch(ctx, time.Time{}); err != nil {
		log.Printf("⚠️ Initial host sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx, w.getLastSyncTime()); err != nil {
				log.Printf("❌ Host sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Host Sync Worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent UpdatedAt from the local mirror.
func (w *HostSyncWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Raw("SELECT MAX(updated_at) FROM host_profiles WHERE deleted_at IS NULL").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0)
	}
	return lastTime
}

func (w *HostSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	sinceStr := since.UTC().Format(time.RFC3339)

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid auth sync service URL '%s': %w", w.baseURL, err)
	}
	endpointURL := base.JoinPath(w.endpointPath)
	q := endpointURL.Query()
	q.Set("since", sinceStr)
	endpointURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpointURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request to auth sync service failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("auth sync service non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response GetHostChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode auth sync response: %w", err)
	}

	if len(response.Hosts) == 0 {
		return nil
	}
	log.Printf("[SYNC] 📥 Processing %d host(s) from auth service…", len(response.Hosts))

	var upsertCount, errorCount int
	for _, remote := range response.Hosts {
		var existing int64
		w.db.Model(&models.HostProfile{}).
			Where("external_user_id = ?", remote.ExternalID).
			Count(&existing)
		isNew := existing == 0

		local := models.HostProfile{
			ExternalUserID:    remote.ExternalID,
			Username:          remote.Username,
			Email:             remote.Email,
			PropertyName:      remote.PropertyName,
			PreferredLanguage: remote.PreferredLanguage,
			ProfilePictureURL: remote.ProfilePictureURL,
			CreatedAt:         remote.CreatedAt,
			UpdatedAt:         remote.UpdatedAt,
		}

		if err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "email", "property_name", "preferred_language",
				"profile_picture_url", "created_at", "updated_at",
			}),
		}).Create(&local).Error; err != nil {
			errorCount++
			log.Printf("[SYNC] ⚠️ Failed to upsert host (external_id=%q): %v", remote.ExternalID, err)
			continue
		}
		upsertCount++

		if isNew {
			note := &models.AdminNotification{
				Type:    models.AdminNotifUserRegistration,
				UserID:  remote.ExternalID,
				Title:   "New host registered",
				Message: fmt.Sprintf("%s just created an account", remote.Username),
			}
			if err := w.notifications.CreateAdminNotification(note); err != nil {
				log.Printf("[SYNC] ⚠️ Failed to create registration notification for %q: %v", remote.ExternalID, err)
			}
		}
	}

	log.Printf("[SYNC] ✅ Synced %d host(s) (%d upserted, %d errors)", len(response.Hosts), upsertCount, errorCount)
	return nil
}
