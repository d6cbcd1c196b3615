package services

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/config"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// PushPayload is the notification shape handed to the service worker.
type PushPayload struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Tag   string                 `json:"tag"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// PushService fans web push notifications out to every stored
// subscription. Delivery is best effort; it never blocks or fails the
// action that triggered it.
type PushService struct {
	DB       *gorm.DB
	enabled  bool
	settings config.Settings
}

func NewPushService(db *gorm.DB, settings config.Settings) *PushService {
	ps := &PushService{DB: db, settings: settings}
	ps.enabled = ps.validateKeys()
	if ps.enabled {
		utils.InfoLogger.Println("Web push enabled")
	} else {
		utils.InfoLogger.Println("Web push disabled: missing or invalid VAPID keys")
	}
	return ps
}

func (ps *PushService) Enabled() bool { return ps.enabled }

func (ps *PushService) PublicKey() string { return ps.settings.VAPIDPublicKey }

// A VAPID public key decodes to an uncompressed 65-byte P-256 point.
func (ps *PushService) validateKeys() bool {
	if ps.settings.VAPIDPublicKey == "" || ps.settings.VAPIDPrivateKey == "" {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(ps.settings.VAPIDPublicKey)
	if err != nil || len(raw) != 65 {
		utils.ErrorLogger.Printf("Invalid VAPID public key length (%d bytes)", len(raw))
		return false
	}
	return true
}

// Subscribe upserts one subscription by endpoint.
func (ps *PushService) Subscribe(endpoint, p256dh, auth string, username *string) error {
	var sub models.PushSubscription
	return ps.DB.Where("endpoint = ?", endpoint).
		Assign(models.PushSubscription{P256dh: p256dh, Auth: auth, Username: username}).
		FirstOrCreate(&sub, models.PushSubscription{Endpoint: endpoint}).Error
}

// SendToAll delivers the payload to every subscription concurrently. Gone
// endpoints (404/410) are cleaned up; other failures are only logged.
func (ps *PushService) SendToAll(payload PushPayload) {
	if !ps.enabled {
		return
	}

	var subs []models.PushSubscription
	if err := ps.DB.Find(&subs).Error; err != nil {
		utils.ErrorLogger.Printf("Push: failed to load subscriptions: %v", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.ErrorLogger.Printf("Push: failed to marshal payload: %v", err)
		return
	}

	var ok, failed int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			err := ps.sendOne(sub, body)
			mu.Lock()
			if err != nil {
				failed++
			} else {
				ok++
			}
			mu.Unlock()
		}(sub)
	}
	wg.Wait()

	utils.InfoLogger.Printf("Push %q sent: %d ok, %d failed", payload.Tag, ok, failed)
}

func (ps *PushService) sendOne(sub models.PushSubscription, body []byte) error {
	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      ps.settings.PushSubject,
		VAPIDPublicKey:  ps.settings.VAPIDPublicKey,
		VAPIDPrivateKey: ps.settings.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Push send error: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		// Subscription is dead; drop it so we stop retrying.
		ps.DB.Where("endpoint = ?", sub.Endpoint).Delete(&models.PushSubscription{})
		return nil
	}
	return nil
}
