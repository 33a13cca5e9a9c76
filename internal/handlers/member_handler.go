package handlers

import (
	"net/http"
	"strconv"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/gin-gonic/gin"
)

// MemberHandler handles roster-related HTTP requests
type MemberHandler struct {
	rosterService services.RosterService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(rosterService services.RosterService) *MemberHandler {
	return &MemberHandler{
		rosterService: rosterService,
	}
}

// GetMembers handles GET /members
func (h *MemberHandler) GetMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.rosterService.Members())
}

// SearchMembers handles GET /members/search?q=&limit=
func (h *MemberHandler) SearchMembers(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, h.rosterService.Search(c.Query("q"), limit))
}

// RefreshRoster handles POST /members/refresh
func (h *MemberHandler) RefreshRoster(c *gin.Context) {
	if err := h.rosterService.Refresh(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roster refreshed", "members": len(h.rosterService.Members())})
}
