package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptmarket/models"
)

func TestLikePrompt(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePublic, time.Now().UTC())

	total, err := LikePrompt(db, prompt.ID, models.PromptTypePublic, "fan")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = LikePrompt(db, prompt.ID, models.PromptTypePublic, "other-fan")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestLikePromptTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePublic, time.Now().UTC())

	_, err := LikePrompt(db, prompt.ID, models.PromptTypePublic, "fan")
	require.NoError(t, err)

	_, err = LikePrompt(db, prompt.ID, models.PromptTypePublic, "fan")
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestLikeUnknownPrompt(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePublic, time.Now().UTC())

	_, err := LikePrompt(db, prompt.ID+1, models.PromptTypePublic, "fan")
	assert.ErrorIs(t, err, ErrPromptNotFound)

	// Right id, wrong kind.
	_, err = LikePrompt(db, prompt.ID, models.PromptTypePremium, "fan")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestPromptLikeStatus(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePublic, time.Now().UTC())

	_, err := LikePrompt(db, prompt.ID, models.PromptTypePublic, "fan")
	require.NoError(t, err)

	likes, liked, err := PromptLikeStatus(db, prompt.ID, "fan")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.True(t, liked)

	likes, liked, err = PromptLikeStatus(db, prompt.ID, "stranger")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.False(t, liked)

	_, _, err = PromptLikeStatus(db, prompt.ID+99, "fan")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestCommentPromptReturnsLatestTwo(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePublic, time.Now().UTC())

	_, _, err := CommentPrompt(db, prompt.ID, models.PromptTypePublic, "a", "first")
	require.NoError(t, err)
	_, _, err = CommentPrompt(db, prompt.ID, models.PromptTypePublic, "b", "second")
	require.NoError(t, err)

	total, latest, err := CommentPrompt(db, prompt.ID, models.PromptTypePublic, "c", "third")
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].Comment)
	assert.Equal(t, "second", latest[1].Comment)
}

func TestCommentUnknownPrompt(t *testing.T) {
	db := newTestDB(t)

	_, _, err := CommentPrompt(db, 42, models.PromptTypePublic, "a", "hello")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestGetPromptComments(t *testing.T) {
	db := newTestDB(t)
	prompt := createPrompt(t, db, "creator", models.PromptTypePremium, time.Now().UTC())

	for _, text := range []string{"one", "two", "three", "four"} {
		_, _, err := CommentPrompt(db, prompt.ID, models.PromptTypePremium, "a", text)
		require.NoError(t, err)
	}

	comments, total, err := GetPromptComments(db, prompt.ID, models.PromptTypePremium, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, comments, 3)
	assert.Equal(t, "four", comments[0].Comment)

	_, _, err = GetPromptComments(db, prompt.ID, models.PromptTypePublic, 3)
	assert.ErrorIs(t, err, ErrPromptNotFound)
}
