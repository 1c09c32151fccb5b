package social

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptmarket/models"
)

// UpdateUserStats records one generation event for an account: +2 XP, +1 total
// generations, and a streak update based on UTC calendar dates. The stats row
// is created on the first event. Runs in a transaction; on mysql the row is
// locked so concurrent generations cannot lose an update.
func UpdateUserStats(db *gorm.DB, account string) (*models.UserStats, error) {
	return updateUserStatsAt(db, account, time.Now().UTC())
}

func updateUserStatsAt(db *gorm.DB, account string, now time.Time) (*models.UserStats, error) {
	var stats models.UserStats
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := q.Where("user_account = ?", account).First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.UserStats{UserAccount: account}
		} else if err != nil {
			return err
		}

		stats.XP += 2
		stats.TotalGenerations++

		if stats.LastGeneration == nil {
			stats.StreakDays = 1
		} else {
			last := utcDate(*stats.LastGeneration)
			today := utcDate(now)
			switch {
			case last.Equal(today):
				// Same-day repeat: streak unchanged, timestamp still advances.
			case last.AddDate(0, 0, 1).Equal(today):
				stats.StreakDays++
			default:
				// Skipped a day, or the stored timestamp is ahead of the clock.
				stats.StreakDays = 1
			}
		}

		ts := now
		stats.LastGeneration = &ts
		return tx.Save(&stats).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
