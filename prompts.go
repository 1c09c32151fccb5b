package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"promptmarket/models"
	"promptmarket/social"
)

type publicPromptView struct {
	ID             uint   `json:"id"`
	IPFSImageURL   string `json:"ipfs_image_url"`
	Prompt         string `json:"prompt"`
	AccountAddress string `json:"account_address"`
	PostName       string `json:"post_name"`
	Public         bool   `json:"public"`
	PromptTag      string `json:"prompt_tag"`
	LikesCount     int64  `json:"likes_count"`
	CommentsCount  int64  `json:"comments_count"`
}

func addPublicPrompt(c *gin.Context) {
	var input struct {
		IPFSImageURL   string `json:"ipfs_image_url" binding:"required"`
		Prompt         string `json:"prompt" binding:"required"`
		AccountAddress string `json:"account_address" binding:"required"`
		PostName       string `json:"post_name" binding:"required"`
		Public         bool   `json:"public"`
		PromptTag      string `json:"prompt_tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := models.Prompt{
		IPFSImageURL:   input.IPFSImageURL,
		Prompt:         input.Prompt,
		AccountAddress: input.AccountAddress,
		PostName:       input.PostName,
		Public:         true,
		PromptTag:      input.PromptTag,
		PromptType:     models.PromptTypePublic,
	}
	if err := db.Create(&prompt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to add public prompt", err))
		return
	}

	// A successful creation is a generation event.
	if _, err := social.UpdateUserStats(db, prompt.AccountAddress); err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to update user stats", err))
		return
	}

	c.JSON(http.StatusOK, publicPromptView{
		ID:             prompt.ID,
		IPFSImageURL:   prompt.IPFSImageURL,
		Prompt:         prompt.Prompt,
		AccountAddress: prompt.AccountAddress,
		PostName:       prompt.PostName,
		Public:         prompt.Public,
		PromptTag:      prompt.PromptTag,
	})
}

func getPromptTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompt_tags": models.PromptTags})
}

func getPublicPrompts(c *gin.Context) {
	page, pageSize := pageParams(c)

	query := db.Model(&models.Prompt{}).
		Where("prompt_type = ?", models.PromptTypePublic).
		Session(&gorm.Session{})
	listPublicPrompts(c, query, page, pageSize, "Failed to get public prompts")
}

func filterPublicPrompts(c *gin.Context) {
	var input struct {
		PromptTag string `json:"prompt_tag"`
		Public    *bool  `json:"public"`
		Page      int    `json:"page"`
		PageSize  int    `json:"page_size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := db.Model(&models.Prompt{}).Where("prompt_type = ?", models.PromptTypePublic)
	if input.PromptTag != "" && strings.ToLower(input.PromptTag) != "all" {
		query = query.Where("prompt_tag = ?", input.PromptTag)
	}
	if input.Public != nil {
		query = query.Where("public = ?", *input.Public)
	}

	listPublicPrompts(c, query.Session(&gorm.Session{}), input.Page, input.PageSize, "Failed to filter public prompts")
}

// listPublicPrompts pages a prompt query newest-first and attaches the batched
// like/comment counts.
func listPublicPrompts(c *gin.Context, query *gorm.DB, page, pageSize int, info string) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, internalError(info, err))
		return
	}

	var prompts []models.Prompt
	err := query.Order("created_at DESC").
		Scopes(models.Paginate(page, pageSize)).
		Find(&prompts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError(info, err))
		return
	}

	ids := make([]uint, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	counts, err := social.EngagementByPrompt(db, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError(info, err))
		return
	}

	views := make([]publicPromptView, 0, len(prompts))
	for _, p := range prompts {
		cnt := counts[p.ID]
		views = append(views, publicPromptView{
			ID:             p.ID,
			IPFSImageURL:   p.IPFSImageURL,
			Prompt:         p.Prompt,
			AccountAddress: p.AccountAddress,
			PostName:       p.PostName,
			Public:         p.Public,
			PromptTag:      p.PromptTag,
			LikesCount:     cnt.LikesCount,
			CommentsCount:  cnt.CommentsCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"prompts":   views,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func grantAccessToPrompt(c *gin.Context) {
	promptID, err := strconv.Atoi(c.Param("id"))
	if err != nil || promptID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt id"})
		return
	}

	var prompt models.Prompt
	if err := db.First(&prompt, promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, internalError("Failed to grant access", err))
		return
	}
	if prompt.PromptType != models.PromptTypePremium {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is not a premium prompt"})
		return
	}

	if err := db.Model(&prompt).Update("grant_access", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to grant access", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access granted to prompt"})
}
