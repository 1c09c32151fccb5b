package leaderboard

import (
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptmarket/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.UserStats{}))
	return db
}

func seedStats(t *testing.T, db *gorm.DB, account string, xp, generations, streak int, last time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserStats{
		UserAccount:      account,
		XP:               xp,
		TotalGenerations: generations,
		StreakDays:       streak,
		LastGeneration:   &last,
	}).Error)
}

func TestXPPadsSparseResults(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	seedStats(t, db, "u1", 10, 5, 1, now)
	seedStats(t, db, "u2", 40, 20, 3, now)

	rows, total, err := XP(db, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2+FillerCount), total)
	require.Len(t, rows, 2+FillerCount)

	// Real entries first, highest XP on top.
	assert.Equal(t, "u2", rows[0].UserAccount)
	assert.Equal(t, 40, rows[0].XP)
	assert.Equal(t, "u1", rows[1].UserAccount)

	for _, filler := range rows[2:] {
		assert.True(t, strings.HasPrefix(filler.UserAccount, "0x"))
		assert.Len(t, filler.UserAccount, 66)
		assert.GreaterOrEqual(t, filler.XP, 1)
		assert.LessOrEqual(t, filler.XP, 1000)
	}
}

func TestStreaksOrderingAndFiller(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	seedStats(t, db, "short", 2, 1, 2, now)
	seedStats(t, db, "long", 2, 1, 9, now)

	rows, total, err := Streaks(db, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2+FillerCount), total)
	require.Len(t, rows, 2+FillerCount)
	assert.Equal(t, "long", rows[0].UserAccount)
	assert.Equal(t, 9, rows[0].StreakDays)

	for _, filler := range rows[2:] {
		assert.GreaterOrEqual(t, filler.StreakDays, 1)
		assert.LessOrEqual(t, filler.StreakDays, 30)
	}
}

func TestGenerations24hFiltersStale(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	seedStats(t, db, "active", 10, 7, 1, now.Add(-time.Hour))
	seedStats(t, db, "stale", 50, 99, 1, now.Add(-25*time.Hour))

	rows, total, err := Generations24h(db, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1+FillerCount), total)
	require.Len(t, rows, 1+FillerCount)
	assert.Equal(t, "active", rows[0].UserAccount)
	assert.Equal(t, 7, rows[0].TotalGenerations)

	for _, filler := range rows[1:] {
		assert.GreaterOrEqual(t, filler.TotalGenerations, 1)
		assert.LessOrEqual(t, filler.TotalGenerations, 100)
	}
}

func TestEmptyLeaderboardStillPadded(t *testing.T) {
	db := newTestDB(t)

	rows, total, err := XP(db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(FillerCount), total)
	assert.Len(t, rows, FillerCount)
}

func TestLeaderboardPagination(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	for i := 1; i <= 5; i++ {
		seedStats(t, db, string(rune('a'+i)), i*10, i, i, now)
	}

	rows, total, err := XP(db, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(5+FillerCount), total)
	// Two real rows for page 2 plus the filler appended to every page.
	require.Len(t, rows, 2+FillerCount)
	assert.Equal(t, 30, rows[0].XP)
	assert.Equal(t, 20, rows[1].XP)
}
