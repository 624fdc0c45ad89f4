package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusriot/anacreon/internal/theme"
)

type themeBody struct {
	Theme string `json:"theme" binding:"required"`
}

func (s *Server) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": s.deps.Theme.Get()})
}

func (s *Server) putTheme(c *gin.Context) {
	var body themeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}
	if err := s.deps.Theme.Set(theme.Theme(body.Theme)); err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": s.deps.Theme.Get()})
}
