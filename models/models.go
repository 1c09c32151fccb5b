package models

import (
	"time"
)

// PromptType discriminates the two kinds of prompt sharing one table.
type PromptType string

const (
	PromptTypePublic  PromptType = "public"
	PromptTypePremium PromptType = "premium"
)

// PromptTags is the set of tags a prompt can carry.
var PromptTags = []string{
	"3D Art",
	"Anime",
	"Abstract",
	"Fantasy",
	"Illustration",
	"Photography",
	"Portrait",
	"Sci-Fi",
}

// Premium marketplace filter names.
const (
	PremiumFilterRecent   = "recent"
	PremiumFilterPopular  = "popular"
	PremiumFilterTrending = "trending"
)

type Prompt struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	IPFSImageURL   string     `gorm:"column:ipfs_image_url;not null" json:"ipfs_image_url"`
	Prompt         string     `gorm:"type:text;not null" json:"prompt"`
	AccountAddress string     `gorm:"not null;index" json:"account_address"`
	PostName       string     `gorm:"not null;index" json:"post_name"`
	Public         bool       `gorm:"default:true;index" json:"public"`
	PromptTag      string     `gorm:"not null;index" json:"prompt_tag"`
	PromptType     PromptType `gorm:"type:varchar(16);not null;index" json:"prompt_type"`
	CreatedAt      time.Time  `json:"created_at"`

	// Premium-only fields, zero-valued on public prompts.
	CID            string  `gorm:"column:cid;index" json:"cid,omitempty"`
	Chain          string  `gorm:"index" json:"chain,omitempty"`
	AIModel        string  `gorm:"column:ai_model;index" json:"ai_model,omitempty"`
	CollectionName string  `gorm:"index" json:"collection_name,omitempty"`
	MaxSupply      int     `json:"max_supply,omitempty"`
	PromptNFTPrice float64 `gorm:"column:prompt_nft_price" json:"prompt_nft_price,omitempty"`
	GrantAccess    bool    `gorm:"default:false;index" json:"grant_access"`
	VideoURL       string  `json:"video_url,omitempty"`
}

func (Prompt) TableName() string { return "prompts" }

// PostLike records one user liking one prompt. The (prompt_id, prompt_type,
// user_account) triple is unique at the schema level so concurrent likes
// cannot double-insert.
type PostLike struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PromptID    uint       `gorm:"not null;uniqueIndex:idx_like_once" json:"prompt_id"`
	PromptType  PromptType `gorm:"type:varchar(16);not null;uniqueIndex:idx_like_once" json:"prompt_type"`
	UserAccount string     `gorm:"not null;index;uniqueIndex:idx_like_once" json:"user_account"`
	CreatedAt   time.Time  `json:"created_at"`

	Prompt Prompt `gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostLike) TableName() string { return "post_likes" }

type PostComment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PromptID    uint       `gorm:"not null;index" json:"prompt_id"`
	PromptType  PromptType `gorm:"type:varchar(16);not null" json:"prompt_type"`
	UserAccount string     `gorm:"not null;index" json:"user_account"`
	Comment     string     `gorm:"type:text;not null" json:"comment"`
	CreatedAt   time.Time  `json:"created_at"`

	Prompt Prompt `gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostComment) TableName() string { return "post_comments" }

// Follow is a directed follower -> creator edge. Duplicate edges for the same
// ordered pair are rejected by the unique index; self-follows are not excluded.
type Follow struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FollowerAccount string    `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"follower_account"`
	CreatorAccount  string    `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"creator_account"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

// UserStats is one row per account, created lazily on the first generation
// and mutated only by social.UpdateUserStats.
type UserStats struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserAccount      string     `gorm:"not null;uniqueIndex" json:"user_account"`
	XP               int        `gorm:"column:xp;default:0;index" json:"xp"`
	TotalGenerations int        `gorm:"default:0;index" json:"total_generations"`
	StreakDays       int        `gorm:"default:0;index" json:"streak_days"`
	LastGeneration   *time.Time `gorm:"index" json:"last_generation"`
}

func (UserStats) TableName() string { return "user_stats" }

type EncryptedKey struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	AESEncryptedPrivateKey string `gorm:"column:aes_encrypted_private_key;type:text;not null" json:"-"`
	UniqueKeywordHash      string `gorm:"not null;index" json:"-"`
	AESKey                 string `gorm:"column:aes_key;not null" json:"-"`
}

func (EncryptedKey) TableName() string { return "encrypted_keys" }
