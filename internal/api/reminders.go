package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
	"household-hub/internal/service"
)

func (s *Server) listReminders(c *gin.Context) {
	filter := service.ListFilter{
		Status:     reminder.Status(c.Query("status")),
		Domain:     model.Domain(c.Query("domain")),
		EntityType: c.Query("entity_type"),
	}
	views, invalid, err := s.svc.Reminders.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reminders": views,
		"invalid":   errorStrings(invalid),
	})
}

func (s *Server) createReminder(c *gin.Context) {
	var input service.ReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := s.svc.Reminders.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}
	view, err := s.svc.Reminders.Get(c.Request.Context(), created.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) getReminder(c *gin.Context) {
	view, err := s.svc.Reminders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) reminderSummary(c *gin.Context) {
	window := 0
	if raw := c.Query("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "window must be a positive number of days")
			return
		}
		window = n
	}
	summary, invalid, err := s.svc.Reminders.Summary(c.Request.Context(), window)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"invalid": errorStrings(invalid),
	})
}

func (s *Server) generateReminders(c *gin.Context) {
	res, err := s.svc.Reminders.Sync(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) completeReminder(c *gin.Context) {
	done, next, err := s.svc.Reminders.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": done, "next": next})
}

func (s *Server) dismissReminder(c *gin.Context) {
	r, err := s.svc.Reminders.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": r})
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
