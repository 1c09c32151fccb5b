package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptmarket/keystore"
)

func storePrivateKey(c *gin.Context) {
	var input struct {
		PrivateKey    string `json:"private_key" binding:"required"`
		UniqueKeyword string `json:"unique_keyword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aesKey, err := keystore.StoreKey(db, input.PrivateKey, input.UniqueKeyword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to store private key", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Private key stored successfully",
		"aes_key": aesKey,
	})
}

func retrievePrivateKey(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}
	aesKey := c.GetHeader("Aes-Key-Header")
	if aesKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aes-Key-Header is required"})
		return
	}

	privateKey, err := keystore.RetrieveKey(db, keyword, aesKey)
	switch {
	case errors.Is(err, keystore.ErrKeyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching encrypted key found."})
	case errors.Is(err, keystore.ErrKeyMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid AES key provided."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, internalError("Failed to retrieve private key", err))
	default:
		c.JSON(http.StatusOK, gin.H{"decrypted_private_key": privateKey})
	}
}
