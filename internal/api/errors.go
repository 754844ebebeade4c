package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"household-hub/internal/repository"
	"household-hub/internal/service"
)

// handleError maps service errors to a status code and a JSON body.
func handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, gorm.ErrRecordNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrAlreadyResolved):
		status, message = http.StatusConflict, "reminder is already completed or dismissed"
	}
	if status == http.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
