package social

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptmarket/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection, or each pooled conn would see its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Prompt{},
		&models.PostLike{},
		&models.PostComment{},
		&models.Follow{},
		&models.UserStats{},
	))
	return db
}

func createPrompt(t *testing.T, db *gorm.DB, account string, promptType models.PromptType, createdAt time.Time) models.Prompt {
	t.Helper()

	prompt := models.Prompt{
		IPFSImageURL:   "ipfs://img",
		Prompt:         "a castle in the clouds",
		AccountAddress: account,
		PostName:       "castle",
		Public:         promptType == models.PromptTypePublic,
		PromptTag:      "Fantasy",
		PromptType:     promptType,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(&prompt).Error)
	return prompt
}
