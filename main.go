package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"promptmarket/middleware"
	"promptmarket/models"
)

var (
	cfg         Config
	db          *gorm.DB
	rdb         *redis.Client
	minioClient *minio.Client
	ctx         = context.Background()
)

func main() {
	cfg = loadConfig()
	initRedis()
	initMinio()

	var err error
	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the social package maps to its conflict errors.
	db, err = gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("connection failed: " + err.Error())
	}

	err = db.AutoMigrate(
		&models.Prompt{},
		&models.PostLike{},
		&models.PostComment{},
		&models.Follow{},
		&models.UserStats{},
		&models.EncryptedKey{},
	)
	if err != nil {
		panic("migration failed: " + err.Error())
	}

	go runChallengeFinalizer()

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/health")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Hello": "Service is live"})
	})

	prompts := r.Group("/prompts")
	{
		prompts.POST("/add-public-prompts", addPublicPrompt)
		prompts.GET("/prompt-tags", getPromptTags)
		prompts.GET("/get-public-prompts", getPublicPrompts)
		prompts.POST("/filter-public-prompts", filterPublicPrompts)
		prompts.PUT("/:id/grant_access", grantAccessToPrompt)
		prompts.POST("/upload-image", uploadPromptImage)
	}

	marketplace := r.Group("/marketplace")
	{
		marketplace.POST("/add-premium-prompts", addPremiumPrompt)
		marketplace.GET("/get-premium-prompts", getPremiumPrompts)
		marketplace.GET("/premium-prompt-filters", getPremiumPromptFilters)
		marketplace.POST("/filter-premium-prompts", filterPremiumPrompts)
	}

	socialfeed := r.Group("/socialfeed")
	{
		socialfeed.POST("/like-prompt", likePrompt)
		socialfeed.POST("/comment-prompt", commentPrompt)
		socialfeed.GET("/get-prompt-comments", getPromptComments)
		socialfeed.GET("/prompt-likes", getPromptLikes)
		socialfeed.POST("/follow-creator", followCreator)
		socialfeed.DELETE("/unfollow-creator", unfollowCreator)
		socialfeed.GET("/creator-followers", getCreatorFollowers)
		socialfeed.GET("/user-following", getUserFollowing)
		socialfeed.GET("/feed", getSocialFeed)
		socialfeed.GET("/feed/followers", getFollowersFeed)
		socialfeed.GET("/feed/following", getFollowingFeed)
		socialfeed.GET("/feed/combined", getCombinedFeed)
	}

	board := r.Group("/leaderboard")
	{
		board.GET("/generations-24h", leaderboardGenerations24h)
		board.GET("/streaks", leaderboardStreaks)
		board.GET("/xp", leaderboardXP)
	}

	encrypt := r.Group("/encrypt")
	{
		encrypt.POST("/store-key", storePrivateKey)
		encrypt.POST("/retrieve-key", retrievePrivateKey)
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "error", err)
	}
}

func initRedis() {
	rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: "",
		DB:       0,
	})
}

func initMinio() {
	var err error
	minioClient, err = minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		panic("failed to connect minio: " + err.Error())
	}
}
