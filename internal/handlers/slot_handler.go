package handlers

import (
	"net/http"
	"strconv"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/store"
	"github.com/gin-gonic/gin"
)

// SlotHandler handles pass-slot HTTP requests
type SlotHandler struct {
	slotService services.SlotService
	store       *store.Store
}

// NewSlotHandler creates a new SlotHandler
func NewSlotHandler(slotService services.SlotService, st *store.Store) *SlotHandler {
	return &SlotHandler{
		slotService: slotService,
		store:       st,
	}
}

func parseSlotID(c *gin.Context) (int, bool) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot id"})
		return 0, false
	}
	return slotID, true
}

// GetSlots handles GET /slots. The syncError flag drives the passive
// status icon on the dashboard.
func (h *SlotHandler) GetSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"slots":     h.slotService.Slots(),
		"syncError": h.store.SyncError(),
	})
}

// AssignSlotRequest is the body for PUT /slots/:id/assign
type AssignSlotRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// AssignSlot handles PUT /slots/:id/assign
func (h *SlotHandler) AssignSlot(c *gin.Context) {
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	var request AssignSlotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.slotService.Assign(slotID, request.MemberID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member assigned"})
}

// UnassignSlot handles DELETE /slots/:id/assign
func (h *SlotHandler) UnassignSlot(c *gin.Context) {
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	if err := h.slotService.Unassign(slotID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot emptied"})
}

// ShareSlot handles GET /slots/:id/share
func (h *SlotHandler) ShareSlot(c *gin.Context) {
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	info, err := h.slotService.Share(slotID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// FullReset handles POST /slots/reset
func (h *SlotHandler) FullReset(c *gin.Context) {
	if err := h.slotService.FullReset(c.Request.Context()); err != nil {
		// Slots were cleared regardless; surface the roster problem.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   err.Error(),
			"message": "Slots cleared, but the roster could not be refreshed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slots cleared and roster refreshed"})
}
