package db

import (
	"log"
	"time"

	"gorm.io/gorm"

	"insightboard/internal/config"
)

// runRetentionOnce deletes analytics events whose retention expiry has
// passed as of now. Returns the number of rows removed.
func runRetentionOnce(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&Event{})
	return res.RowsAffected, res.Error
}

// StartRetentionWorker launches the background sweep enforcing the
// event retention window. It sweeps once at startup and then on the
// configured interval. With retention disabled no event ever carries
// an expiry, so no worker is started at all.
func StartRetentionWorker(db *gorm.DB, cfg *config.Config) {
	if cfg.RetentionDays <= 0 {
		return
	}

	go func() {
		sweep := func() {
			n, err := runRetentionOnce(db, time.Now())
			if err != nil {
				log.Printf("event retention sweep failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("event retention sweep removed %d expired analytics events", n)
			}
		}

		sweep()

		ticker := time.NewTicker(cfg.RetentionSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			sweep()
		}
	}()
}
