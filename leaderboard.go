package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptmarket/leaderboard"
)

func leaderboardGenerations24h(c *gin.Context) {
	page, pageSize := pageParams(c)
	rows, total, err := leaderboard.Generations24h(db, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get generations leaderboard", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func leaderboardStreaks(c *gin.Context) {
	page, pageSize := pageParams(c)
	rows, total, err := leaderboard.Streaks(db, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get streaks leaderboard", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func leaderboardXP(c *gin.Context) {
	page, pageSize := pageParams(c)
	rows, total, err := leaderboard.XP(db, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to get xp leaderboard", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
