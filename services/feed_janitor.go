package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// FeedJanitor removes live feed events past their retention window on an
// interval. Expiry is advisory: a failed sweep is retried next tick and
// reads never wait on it.
type FeedJanitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	TTLDays  int
}

func NewFeedJanitor(db *gorm.DB, ttlDays int) *FeedJanitor {
	return &FeedJanitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Hour,
		TTLDays:  ttlDays,
	}
}

// Start launches the sweep loop. A TTL of zero or less disables expiry
// entirely and the loop never runs.
func (fj *FeedJanitor) Start() {
	if fj.TTLDays <= 0 {
		utils.InfoLogger.Println("Live feed TTL disabled, janitor not started")
		return
	}

	go func() {
		ticker := time.NewTicker(fj.Interval)
		defer ticker.Stop()

		fj.sweep()
		for {
			select {
			case <-ticker.C:
				fj.sweep()
			case <-fj.StopChan:
				return
			}
		}
	}()
}

func (fj *FeedJanitor) Stop() {
	close(fj.StopChan)
}

func (fj *FeedJanitor) sweep() {
	cutoff := time.Now().AddDate(0, 0, -fj.TTLDays)
	removed, err := feed.ExpireBefore(cutoff)
	if err != nil {
		utils.ErrorLogger.Printf("Feed janitor sweep failed: %v", err)
		return
	}
	if removed > 0 {
		utils.InfoLogger.Printf("Feed janitor removed %d events older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
