package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptmarket/models"
)

func feedAccounts(page *FeedPage) []string {
	accounts := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		accounts = append(accounts, item.AccountAddress)
	}
	return accounts
}

func TestHomeFeedOrderAndTotal(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	oldest := createPrompt(t, db, "b", models.PromptTypePublic, base)
	middle := createPrompt(t, db, "c", models.PromptTypePremium, base.Add(time.Hour))
	newest := createPrompt(t, db, "b", models.PromptTypePublic, base.Add(2*time.Hour))

	require.NoError(t, FollowCreator(db, "a", "b"))

	page, err := HomeFeed(db, "a", 1, 10)
	require.NoError(t, err)

	// Followed plus discovery covers every prompt, newest first.
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 3)
	assert.Equal(t, newest.ID, page.Items[0].PromptID)
	assert.Equal(t, middle.ID, page.Items[1].PromptID)
	assert.Equal(t, oldest.ID, page.Items[2].PromptID)
}

func TestHomeFeedZeroEngagementItems(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "b", models.PromptTypePublic, time.Now().UTC())

	page, err := HomeFeed(db, "a", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, prompt.ID, item.PromptID)
	assert.Equal(t, int64(0), item.LikesCount)
	assert.Equal(t, int64(0), item.CommentsCount)
	assert.NotNil(t, item.TopComments)
	assert.Empty(t, item.TopComments)
}

func TestHomeFeedEnrichment(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "b", models.PromptTypePublic, time.Now().UTC())

	for _, fan := range []string{"x", "y"} {
		_, err := LikePrompt(db, prompt.ID, models.PromptTypePublic, fan)
		require.NoError(t, err)
	}
	for _, text := range []string{"one", "two", "three"} {
		_, _, err := CommentPrompt(db, prompt.ID, models.PromptTypePublic, "x", text)
		require.NoError(t, err)
	}

	page, err := HomeFeed(db, "a", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, int64(2), item.LikesCount)
	assert.Equal(t, int64(3), item.CommentsCount)
	require.Len(t, item.TopComments, 2)
	assert.Equal(t, "three", item.TopComments[0].Comment)
	assert.Equal(t, "two", item.TopComments[1].Comment)
}

func TestHomeFeedPagination(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createPrompt(t, db, "b", models.PromptTypePublic, base.Add(time.Duration(i)*time.Hour))
	}

	page, err := HomeFeed(db, "a", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Items, 2)
	// Page 2 of newest-first: third and fourth newest.
	assert.Equal(t, uint(3), page.Items[0].PromptID)
	assert.Equal(t, uint(2), page.Items[1].PromptID)
}

func TestFollowersFeedReturnsFollowerPrompts(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	require.NoError(t, FollowCreator(db, "fan1", "creator"))
	require.NoError(t, FollowCreator(db, "fan2", "creator"))
	createPrompt(t, db, "fan1", models.PromptTypePublic, now)
	createPrompt(t, db, "fan2", models.PromptTypePublic, now)
	createPrompt(t, db, "stranger", models.PromptTypePublic, now)

	page, err := FollowersFeed(db, "creator", 1, 10)
	require.NoError(t, err)

	// Random order per request: assert the set, not the order.
	assert.Equal(t, int64(2), page.Total)
	assert.ElementsMatch(t, []string{"fan1", "fan2"}, feedAccounts(page))
}

func TestFollowingFeedReturnsFollowedPrompts(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	require.NoError(t, FollowCreator(db, "user", "creator1"))
	createPrompt(t, db, "creator1", models.PromptTypePremium, now)
	createPrompt(t, db, "creator2", models.PromptTypePublic, now)

	page, err := FollowingFeed(db, "user", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.ElementsMatch(t, []string{"creator1"}, feedAccounts(page))
}

func TestCombinedFeedUnionsBothDirections(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	require.NoError(t, FollowCreator(db, "fan", "user"))
	require.NoError(t, FollowCreator(db, "user", "creator"))
	createPrompt(t, db, "fan", models.PromptTypePublic, now)
	createPrompt(t, db, "creator", models.PromptTypePublic, now)
	createPrompt(t, db, "stranger", models.PromptTypePublic, now)

	page, err := CombinedFeed(db, "user", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.ElementsMatch(t, []string{"fan", "creator"}, feedAccounts(page))
}

func TestFeedWithNoEdgesIsEmpty(t *testing.T) {
	db := newTestDB(t)
	createPrompt(t, db, "someone", models.PromptTypePublic, time.Now().UTC())

	for name, build := range map[string]func(*testing.T) (*FeedPage, error){
		"followers": func(t *testing.T) (*FeedPage, error) { return FollowersFeed(db, "loner", 1, 10) },
		"following": func(t *testing.T) (*FeedPage, error) { return FollowingFeed(db, "loner", 1, 10) },
		"combined":  func(t *testing.T) (*FeedPage, error) { return CombinedFeed(db, "loner", 1, 10) },
	} {
		t.Run(name, func(t *testing.T) {
			page, err := build(t)
			require.NoError(t, err)
			assert.Equal(t, int64(0), page.Total)
			assert.Empty(t, page.Items)
		})
	}
}

func TestEngagementByPromptEmptyInput(t *testing.T) {
	db := newTestDB(t)

	counts, err := EngagementByPrompt(db, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	previews, err := TopCommentsByPrompt(db, nil)
	require.NoError(t, err)
	assert.Empty(t, previews)
}
