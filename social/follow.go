package social

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"promptmarket/models"
)

// FollowCreator adds a follower -> creator edge. The pair is unique; a repeat
// follow fails with ErrAlreadyFollowing.
func FollowCreator(db *gorm.DB, followerAccount, creatorAccount string) error {
	var n int64
	err := db.Model(&models.Follow{}).
		Where("follower_account = ? AND creator_account = ?", followerAccount, creatorAccount).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyFollowing
	}

	edge := models.Follow{FollowerAccount: followerAccount, CreatorAccount: creatorAccount}
	if err := db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// UnfollowCreator removes the edge; absence fails with ErrNotFollowing.
func UnfollowCreator(db *gorm.DB, followerAccount, creatorAccount string) error {
	res := db.Where("follower_account = ? AND creator_account = ?", followerAccount, creatorAccount).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// ListFollowers returns the accounts following a creator.
func ListFollowers(db *gorm.DB, creatorAccount string) ([]string, error) {
	var accounts []string
	err := db.Model(&models.Follow{}).
		Where("creator_account = ?", creatorAccount).
		Pluck("follower_account", &accounts).Error
	return accounts, err
}

// ListFollowing returns the creators an account follows.
func ListFollowing(db *gorm.DB, followerAccount string) ([]string, error) {
	var accounts []string
	err := db.Model(&models.Follow{}).
		Where("follower_account = ?", followerAccount).
		Pluck("creator_account", &accounts).Error
	return accounts, err
}

// TopPrompt is one of an account's most-liked prompts.
type TopPrompt struct {
	PromptID     uint      `gorm:"column:prompt_id" json:"prompt_id"`
	Prompt       string    `gorm:"column:prompt" json:"prompt"`
	IPFSImageURL string    `gorm:"column:ipfs_image_url" json:"ipfs_image_url"`
	Likes        int64     `gorm:"column:likes" json:"likes"`
	Comments     int64     `gorm:"column:comments" json:"comments"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// AccountTopPrompts pairs an account with its five most-liked prompts, used by
// the followers/following listings.
type AccountTopPrompts struct {
	Account    string      `json:"account"`
	TopPrompts []TopPrompt `json:"top_5_prompts"`
}

func topLikedPrompts(db *gorm.DB, account string) ([]TopPrompt, error) {
	rows := []TopPrompt{}
	err := db.Model(&models.Prompt{}).
		Select("prompts.id AS prompt_id, prompts.prompt, prompts.ipfs_image_url, prompts.created_at, " +
			"COUNT(DISTINCT post_likes.id) AS likes, COUNT(DISTINCT post_comments.id) AS comments").
		Joins("LEFT JOIN post_likes ON post_likes.prompt_id = prompts.id").
		Joins("LEFT JOIN post_comments ON post_comments.prompt_id = prompts.id").
		Where("prompts.account_address = ?", account).
		Group("prompts.id").
		Order("likes DESC").
		Limit(5).
		Scan(&rows).Error
	return rows, err
}

// CreatorFollowers lists a creator's followers, each with that follower's
// most-liked prompts.
func CreatorFollowers(db *gorm.DB, creatorAccount string) ([]AccountTopPrompts, error) {
	followers, err := ListFollowers(db, creatorAccount)
	if err != nil {
		return nil, err
	}
	return withTopPrompts(db, followers)
}

// UserFollowing lists the creators an account follows, each with that
// creator's most-liked prompts.
func UserFollowing(db *gorm.DB, followerAccount string) ([]AccountTopPrompts, error) {
	following, err := ListFollowing(db, followerAccount)
	if err != nil {
		return nil, err
	}
	return withTopPrompts(db, following)
}

func withTopPrompts(db *gorm.DB, accounts []string) ([]AccountTopPrompts, error) {
	out := make([]AccountTopPrompts, 0, len(accounts))
	for _, account := range accounts {
		prompts, err := topLikedPrompts(db, account)
		if err != nil {
			return nil, err
		}
		out = append(out, AccountTopPrompts{Account: account, TopPrompts: prompts})
	}
	return out, nil
}
