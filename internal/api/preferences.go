package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type preferencesRequest struct {
	ModuleOrder    []string `json:"module_order"`
	EnabledModules []string `json:"enabled_modules"`
}

func (s *Server) getPreferences(c *gin.Context) {
	prefs, err := s.svc.Preferences.Get(c.Request.Context(), c.Query("profile"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) putPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	prefs, err := s.svc.Preferences.Save(c.Request.Context(), c.Query("profile"), req.ModuleOrder, req.EnabledModules)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
