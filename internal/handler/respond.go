package handler

import (
	"errors"
	"net/http"

	"buddyremind/internal/apperr"
	"buddyremind/internal/logger"
	"buddyremind/internal/model"

	"github.com/gin-gonic/gin"
)

// All responses use the same envelope: {success, data, count?, message?}.

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func okCount(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func okMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

// authOK carries the freshly issued session token alongside the user.
func authOK(c *gin.Context, token string, user *model.User) {
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "data": user})
}

func fail(c *gin.Context, err error) {
	status := apperr.Status(err)

	message := "server error"
	var ae *apperr.Error
	if errors.As(err, &ae) {
		message = ae.Message
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"err", err,
		)
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func callerID(c *gin.Context) int { return c.GetInt("user_id") }
