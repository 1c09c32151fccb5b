package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// uploadPromptImage stores a multipart image in MinIO under a uuid object
// name and returns its public URL.
func uploadPromptImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to get file"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer src.Close()

	objectName := uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	_, err = minioClient.PutObject(ctx, cfg.MinioBucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, internalError("Failed to upload image", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload success",
		"url":     "http://" + cfg.MinioEndpoint + "/" + cfg.MinioBucket + "/" + objectName,
	})
}
