package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"promptmarket/models"
	"promptmarket/social"
)

func likePrompt(c *gin.Context) {
	var input struct {
		PromptID    uint              `json:"prompt_id" binding:"required"`
		PromptType  models.PromptType `json:"prompt_type" binding:"required"`
		UserAccount string            `json:"user_account" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPromptType(input.PromptType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt_type"})
		return
	}

	total, err := social.LikePrompt(db, input.PromptID, input.PromptType, input.UserAccount)
	switch {
	case errors.Is(err, social.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
	case errors.Is(err, social.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "User has already liked this prompt"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to like prompt", err))
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":     "Prompt liked successfully",
			"total_likes": total,
		})
	}
}

func commentPrompt(c *gin.Context) {
	var input struct {
		PromptID    uint              `json:"prompt_id" binding:"required"`
		PromptType  models.PromptType `json:"prompt_type" binding:"required"`
		UserAccount string            `json:"user_account" binding:"required"`
		Comment     string            `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPromptType(input.PromptType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt_type"})
		return
	}

	total, latest, err := social.CommentPrompt(db, input.PromptID, input.PromptType, input.UserAccount, input.Comment)
	switch {
	case errors.Is(err, social.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to comment on prompt", err))
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":         "Comment added successfully",
			"total_comments":  total,
			"latest_comments": latest,
		})
	}
}

func getPromptComments(c *gin.Context) {
	promptID, err := strconv.Atoi(c.Query("prompt_id"))
	if err != nil || promptID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt_id"})
		return
	}
	promptType := models.PromptType(c.Query("prompt_type"))
	if !validPromptType(promptType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt_type"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "2"))
	if err != nil || limit < 1 {
		limit = social.TopCommentLimit
	}

	comments, total, err := social.GetPromptComments(db, uint(promptID), promptType, limit)
	switch {
	case errors.Is(err, social.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to get prompt comments", err))
	default:
		c.JSON(http.StatusOK, gin.H{
			"comments":       comments,
			"total_comments": total,
		})
	}
}

func getPromptLikes(c *gin.Context) {
	promptID, err := strconv.Atoi(c.Query("prompt_id"))
	if err != nil || promptID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt_id"})
		return
	}
	account := c.Query("account_address")
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_address is required"})
		return
	}

	likes, liked, err := social.PromptLikeStatus(db, uint(promptID), account)
	switch {
	case errors.Is(err, social.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to get prompt likes", err))
	default:
		c.JSON(http.StatusOK, gin.H{
			"prompt_id":   promptID,
			"likes_count": likes,
			"user_liked":  liked,
		})
	}
}

func followCreator(c *gin.Context) {
	follower := c.Query("follower_account")
	creator := c.Query("creator_account")
	if follower == "" || creator == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "follower_account and creator_account are required"})
		return
	}

	err := social.FollowCreator(db, follower, creator)
	switch {
	case errors.Is(err, social.ErrAlreadyFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already following this creator"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to follow creator", err))
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Successfully followed the creator"})
	}
}

func unfollowCreator(c *gin.Context) {
	follower := c.Query("follower_account")
	creator := c.Query("creator_account")
	if follower == "" || creator == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "follower_account and creator_account are required"})
		return
	}

	err := social.UnfollowCreator(db, follower, creator)
	switch {
	case errors.Is(err, social.ErrNotFollowing):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following this creator"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to unfollow creator", err))
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed the creator"})
	}
}

func getCreatorFollowers(c *gin.Context) {
	creator := c.Query("creator_account")
	if creator == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creator_account is required"})
		return
	}

	followers, err := social.CreatorFollowers(db, creator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get creator followers", err))
		return
	}
	if len(followers) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "This creator has no followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creator_account":            creator,
		"followers_with_top_prompts": followers,
	})
}

func getUserFollowing(c *gin.Context) {
	follower := c.Query("follower_account")
	if follower == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "follower_account is required"})
		return
	}

	following, err := social.UserFollowing(db, follower)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get user following", err))
		return
	}
	if len(following) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "This user is not following any creators"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"follower_account":           follower,
		"following_with_top_prompts": following,
	})
}

func getSocialFeed(c *gin.Context) {
	user := c.Query("user_account")
	if user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_account is required"})
		return
	}
	page, pageSize := pageParams(c)

	feed, err := social.HomeFeed(db, user, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get social feed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   feed.Items,
		"total":     feed.Total,
		"page":      feed.Page,
		"page_size": feed.PageSize,
	})
}

func getFollowersFeed(c *gin.Context) {
	feedHandler(c, social.FollowersFeed, "Failed to get feed for followers")
}

func getFollowingFeed(c *gin.Context) {
	feedHandler(c, social.FollowingFeed, "Failed to get feed for following")
}

func getCombinedFeed(c *gin.Context) {
	feedHandler(c, social.CombinedFeed, "Failed to get combined feed")
}

func feedHandler(c *gin.Context, build func(db *gorm.DB, user string, page, pageSize int) (*social.FeedPage, error), info string) {
	user := c.Query("user_account")
	if user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_account is required"})
		return
	}
	page, pageSize := pageParams(c)

	feed, err := build(db, user, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError(info, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feed":      feed.Items,
		"total":     feed.Total,
		"page":      feed.Page,
		"page_size": feed.PageSize,
	})
}
