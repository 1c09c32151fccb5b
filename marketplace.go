package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"promptmarket/models"
	"promptmarket/social"
)

type premiumPromptView struct {
	ID             uint    `json:"id"`
	IPFSImageURL   string  `json:"ipfs_image_url"`
	AccountAddress string  `json:"account_address"`
	Prompt         string  `json:"prompt"`
	PostName       string  `json:"post_name"`
	CID            string  `json:"cid"`
	Public         bool    `json:"public"`
	AIModel        string  `json:"ai_model"`
	Chain          string  `json:"chain"`
	GrantAccess    bool    `json:"grant_access"`
	CollectionName string  `json:"collection_name"`
	MaxSupply      int     `json:"max_supply"`
	PromptNFTPrice float64 `json:"prompt_nft_price"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
}

func premiumView(p models.Prompt, likes, comments int64) premiumPromptView {
	return premiumPromptView{
		ID:             p.ID,
		IPFSImageURL:   p.IPFSImageURL,
		AccountAddress: p.AccountAddress,
		Prompt:         p.Prompt,
		PostName:       p.PostName,
		CID:            p.CID,
		Public:         p.Public,
		AIModel:        p.AIModel,
		Chain:          p.Chain,
		GrantAccess:    p.GrantAccess,
		CollectionName: p.CollectionName,
		MaxSupply:      p.MaxSupply,
		PromptNFTPrice: p.PromptNFTPrice,
		Likes:          likes,
		Comments:       comments,
	}
}

func addPremiumPrompt(c *gin.Context) {
	var input struct {
		IPFSImageURL   string  `json:"ipfs_image_url" binding:"required"`
		AccountAddress string  `json:"account_address" binding:"required"`
		Prompt         string  `json:"prompt" binding:"required"`
		PostName       string  `json:"post_name" binding:"required"`
		CID            string  `json:"cid" binding:"required"`
		AIModel        string  `json:"ai_model" binding:"required"`
		Chain          string  `json:"chain" binding:"required"`
		PromptTag      string  `json:"prompt_tag" binding:"required"`
		CollectionName string  `json:"collection_name" binding:"required"`
		MaxSupply      int     `json:"max_supply" binding:"required"`
		PromptNFTPrice float64 `json:"prompt_nft_price" binding:"required"`
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
		Public:         false,
		PromptTag:      input.PromptTag,
		PromptType:     models.PromptTypePremium,
		CID:            input.CID,
		Chain:          input.Chain,
		AIModel:        input.AIModel,
		CollectionName: input.CollectionName,
		MaxSupply:      input.MaxSupply,
		PromptNFTPrice: input.PromptNFTPrice,
	}
	if err := db.Create(&prompt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to add premium prompt", err))
		return
	}

	if _, err := social.UpdateUserStats(db, prompt.AccountAddress); err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to update user stats", err))
		return
	}

	c.JSON(http.StatusOK, premiumView(prompt, 0, 0))
}

func getPremiumPrompts(c *gin.Context) {
	page, pageSize := pageParams(c)
	query := db.Model(&models.Prompt{}).
		Where("prompt_type = ?", models.PromptTypePremium).
		Session(&gorm.Session{})
	listPremiumPrompts(c, query, query, "created_at DESC", page, pageSize, "Failed to get premium prompts")
}

func getPremiumPromptFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"premium_prompt_filters": []string{
		models.PremiumFilterRecent,
		models.PremiumFilterPopular,
		models.PremiumFilterTrending,
	}})
}

func filterPremiumPrompts(c *gin.Context) {
	var input struct {
		FilterType string `json:"filter_type"`
		Page       int    `json:"page"`
		PageSize   int    `json:"page_size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := db.Model(&models.Prompt{}).Where("prompt_type = ?", models.PromptTypePremium)
	order := "created_at DESC"
	switch input.FilterType {
	case models.PremiumFilterRecent:
		base = base.Where("created_at >= ?", time.Now().UTC().Add(-24*time.Hour))
	case models.PremiumFilterPopular:
		order = randomOrderExpr()
	case models.PremiumFilterTrending:
		// Ranked by like volume; the join does not change the candidate set,
		// so the plain filtered query still supplies the total.
	case "":
		// No filter: newest first.
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter_type"})
		return
	}

	countQuery := base.Session(&gorm.Session{})
	pageQuery := countQuery
	if input.FilterType == models.PremiumFilterTrending {
		pageQuery = countQuery.
			Joins("LEFT JOIN post_likes ON post_likes.prompt_id = prompts.id").
			Group("prompts.id").
			Session(&gorm.Session{})
		order = "COUNT(post_likes.id) DESC"
	}

	listPremiumPrompts(c, countQuery, pageQuery, order, input.Page, input.PageSize, "Failed to filter premium prompts")
}

func listPremiumPrompts(c *gin.Context, countQuery, pageQuery *gorm.DB, order string, page, pageSize int, info string) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, internalError(info, err))
		return
	}

	var prompts []models.Prompt
	err := pageQuery.Select("prompts.*").
		Order(order).
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

	views := make([]premiumPromptView, 0, len(prompts))
	for _, p := range prompts {
		cnt := counts[p.ID]
		views = append(views, premiumView(p, cnt.LikesCount, cnt.CommentsCount))
	}

	c.JSON(http.StatusOK, gin.H{
		"prompts":   views,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func randomOrderExpr() string {
	if db.Dialector.Name() == "sqlite" {
		return "RANDOM()"
	}
	return "RAND()"
}
