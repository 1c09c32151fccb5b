package main

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"promptmarket/models"
)

// pageParams reads ?page and ?page_size with the defaults every listing uses.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

func validPromptType(t models.PromptType) bool {
	return t == models.PromptTypePublic || t == models.PromptTypePremium
}

// internalError is the 500 payload shape: an opaque info string plus the
// underlying error for diagnostics.
func internalError(info string, err error) gin.H {
	return gin.H{"info": info, "error": err.Error()}
}
