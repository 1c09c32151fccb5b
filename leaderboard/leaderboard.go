// Package leaderboard ranks account stats by XP, streak length, and recent
// generation volume. Every page is padded with synthetic filler rows so sparse
// leaderboards still look populated; totals include the filler.
package leaderboard

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"promptmarket/models"
)

// FillerCount is how many synthetic rows are appended to every page.
const FillerCount = 10

type GenerationRow struct {
	UserAccount      string `json:"user_account"`
	TotalGenerations int    `json:"total_generations"`
}

type StreakRow struct {
	UserAccount string `json:"user_account"`
	StreakDays  int    `json:"streak_days"`
}

type XPRow struct {
	UserAccount string `json:"user_account"`
	XP          int    `json:"xp"`
}

// Generations24h ranks accounts that generated within the last 24 hours by
// total generations. Returns the page rows plus filler and the padded total.
func Generations24h(db *gorm.DB, page, pageSize int) ([]GenerationRow, int64, error) {
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	query := db.Model(&models.UserStats{}).
		Where("last_generation >= ?", cutoff).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stats []models.UserStats
	err := query.Order("total_generations DESC").
		Scopes(models.Paginate(page, pageSize)).
		Find(&stats).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]GenerationRow, 0, len(stats)+FillerCount)
	for _, s := range stats {
		rows = append(rows, GenerationRow{UserAccount: s.UserAccount, TotalGenerations: s.TotalGenerations})
	}
	for i := 0; i < FillerCount; i++ {
		rows = append(rows, GenerationRow{UserAccount: fillerAccount(), TotalGenerations: rand.Intn(100) + 1})
	}
	return rows, total + FillerCount, nil
}

// Streaks ranks all accounts by consecutive generation days.
func Streaks(db *gorm.DB, page, pageSize int) ([]StreakRow, int64, error) {
	query := db.Model(&models.UserStats{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stats []models.UserStats
	err := query.Order("streak_days DESC").
		Scopes(models.Paginate(page, pageSize)).
		Find(&stats).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]StreakRow, 0, len(stats)+FillerCount)
	for _, s := range stats {
		rows = append(rows, StreakRow{UserAccount: s.UserAccount, StreakDays: s.StreakDays})
	}
	for i := 0; i < FillerCount; i++ {
		rows = append(rows, StreakRow{UserAccount: fillerAccount(), StreakDays: rand.Intn(30) + 1})
	}
	return rows, total + FillerCount, nil
}

// XP ranks all accounts by accumulated XP.
func XP(db *gorm.DB, page, pageSize int) ([]XPRow, int64, error) {
	query := db.Model(&models.UserStats{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stats []models.UserStats
	err := query.Order("xp DESC").
		Scopes(models.Paginate(page, pageSize)).
		Find(&stats).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]XPRow, 0, len(stats)+FillerCount)
	for _, s := range stats {
		rows = append(rows, XPRow{UserAccount: s.UserAccount, XP: s.XP})
	}
	for i := 0; i < FillerCount; i++ {
		rows = append(rows, XPRow{UserAccount: fillerAccount(), XP: rand.Intn(1000) + 1})
	}
	return rows, total + FillerCount, nil
}

const hexDigits = "0123456789abcdef"

// fillerAccount fabricates a wallet-looking address. Never persisted.
func fillerAccount() string {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = hexDigits[rand.Intn(len(hexDigits))]
	}
	return "0x" + string(buf)
}
