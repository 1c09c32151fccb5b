package social

import (
	"time"

	"gorm.io/gorm"

	"promptmarket/models"
)

// FeedItem is one enriched prompt in a feed page.
type FeedItem struct {
	PromptID       uint              `json:"prompt_id"`
	Prompt         string            `json:"prompt"`
	IPFSImageURL   string            `json:"ipfs_image_url"`
	PromptType     models.PromptType `json:"prompt_type"`
	AccountAddress string            `json:"account_address"`
	PostName       string            `json:"post_name"`
	Public         bool              `json:"public"`
	CreatedAt      time.Time         `json:"created_at"`
	LikesCount     int64             `json:"likes_count"`
	CommentsCount  int64             `json:"comments_count"`
	TopComments    []CommentPreview  `json:"top_comments"`
}

// FeedPage is a paginated feed with the unpaginated total.
type FeedPage struct {
	Items    []FeedItem
	Total    int64
	Page     int
	PageSize int
}

// EngagementCounts holds the batched like/comment totals for one prompt.
type EngagementCounts struct {
	PromptID      uint  `gorm:"column:prompt_id"`
	LikesCount    int64 `gorm:"column:likes_count"`
	CommentsCount int64 `gorm:"column:comments_count"`
}

// HomeFeed is the followed+discovery feed: prompts from followed creators
// unioned with everyone else's. The union covers the whole prompt table, so it
// is one query ordered newest first; pagination happens after the union.
func HomeFeed(db *gorm.DB, userAccount string, page, pageSize int) (*FeedPage, error) {
	query := db.Model(&models.Prompt{}).Session(&gorm.Session{})
	return buildFeed(db, query, "created_at DESC", page, pageSize)
}

// FollowersFeed returns prompts authored by accounts that follow the user, in
// random order. Repeated calls may reorder the same page.
func FollowersFeed(db *gorm.DB, userAccount string, page, pageSize int) (*FeedPage, error) {
	followers := db.Model(&models.Follow{}).
		Select("follower_account").
		Where("creator_account = ?", userAccount)
	query := db.Model(&models.Prompt{}).
		Where("account_address IN (?)", followers).
		Session(&gorm.Session{})
	return buildFeed(db, query, randomOrder(db), page, pageSize)
}

// FollowingFeed returns prompts authored by creators the user follows, in
// random order.
func FollowingFeed(db *gorm.DB, userAccount string, page, pageSize int) (*FeedPage, error) {
	following := db.Model(&models.Follow{}).
		Select("creator_account").
		Where("follower_account = ?", userAccount)
	query := db.Model(&models.Prompt{}).
		Where("account_address IN (?)", following).
		Session(&gorm.Session{})
	return buildFeed(db, query, randomOrder(db), page, pageSize)
}

// CombinedFeed returns prompts authored by the union of the user's followers
// and the creators the user follows, in random order.
func CombinedFeed(db *gorm.DB, userAccount string, page, pageSize int) (*FeedPage, error) {
	followers := db.Model(&models.Follow{}).
		Select("follower_account").
		Where("creator_account = ?", userAccount)
	following := db.Model(&models.Follow{}).
		Select("creator_account").
		Where("follower_account = ?", userAccount)
	query := db.Model(&models.Prompt{}).
		Where("account_address IN (?) OR account_address IN (?)", followers, following).
		Session(&gorm.Session{})
	return buildFeed(db, query, randomOrder(db), page, pageSize)
}

// buildFeed applies the shared shape: count the filtered set, fetch one page
// in the policy's order, then enrich the page with two batch lookups. Any
// lookup failure aborts the whole page.
func buildFeed(db, query *gorm.DB, order string, page, pageSize int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var prompts []models.Prompt
	err := query.Order(order).
		Scopes(models.Paginate(page, pageSize)).
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}

	counts, err := EngagementByPrompt(db, ids)
	if err != nil {
		return nil, err
	}
	previews, err := TopCommentsByPrompt(db, ids)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(prompts))
	for _, p := range prompts {
		c := counts[p.ID]
		top := previews[p.ID]
		if top == nil {
			top = []CommentPreview{}
		}
		items = append(items, FeedItem{
			PromptID:       p.ID,
			Prompt:         p.Prompt,
			IPFSImageURL:   p.IPFSImageURL,
			PromptType:     p.PromptType,
			AccountAddress: p.AccountAddress,
			PostName:       p.PostName,
			Public:         p.Public,
			CreatedAt:      p.CreatedAt,
			LikesCount:     c.LikesCount,
			CommentsCount:  c.CommentsCount,
			TopComments:    top,
		})
	}

	return &FeedPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// EngagementByPrompt computes like and comment counts for a set of prompts in
// one grouped outer-join query. Prompts absent from the result have zero
// engagement; callers read the zero value from the map.
func EngagementByPrompt(db *gorm.DB, promptIDs []uint) (map[uint]EngagementCounts, error) {
	counts := make(map[uint]EngagementCounts, len(promptIDs))
	if len(promptIDs) == 0 {
		return counts, nil
	}

	var rows []EngagementCounts
	err := db.Model(&models.Prompt{}).
		Select("prompts.id AS prompt_id, " +
			"COUNT(DISTINCT post_likes.id) AS likes_count, " +
			"COUNT(DISTINCT post_comments.id) AS comments_count").
		Joins("LEFT JOIN post_likes ON post_likes.prompt_id = prompts.id").
		Joins("LEFT JOIN post_comments ON post_comments.prompt_id = prompts.id").
		Where("prompts.id IN ?", promptIDs).
		Group("prompts.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.PromptID] = r
	}
	return counts, nil
}

// TopCommentsByPrompt fetches the recent comments for a page of prompts in one
// query and groups them client-side, each group truncated to TopCommentLimit,
// newest first.
func TopCommentsByPrompt(db *gorm.DB, promptIDs []uint) (map[uint][]CommentPreview, error) {
	grouped := make(map[uint][]CommentPreview, len(promptIDs))
	if len(promptIDs) == 0 {
		return grouped, nil
	}

	var comments []models.PostComment
	err := db.Where("prompt_id IN ?", promptIDs).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		if len(grouped[c.PromptID]) < TopCommentLimit {
			grouped[c.PromptID] = append(grouped[c.PromptID], CommentPreview{
				UserAccount: c.UserAccount,
				Comment:     c.Comment,
				CreatedAt:   c.CreatedAt,
			})
		}
	}
	return grouped, nil
}

// randomOrder picks the dialect's random-sort expression. Tests run on sqlite,
// production on mysql.
func randomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "RANDOM()"
	}
	return "RAND()"
}
