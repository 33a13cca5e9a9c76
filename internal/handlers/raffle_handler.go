package handlers

import (
	"net/http"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/gin-gonic/gin"
)

// RaffleHandler handles raffle-related HTTP requests
type RaffleHandler struct {
	raffleService services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// DrawPrimaryRequest is the body for POST /raffle/draw
type DrawPrimaryRequest struct {
	MatchName string `json:"matchName" binding:"required"`
}

// DrawPrimary handles POST /raffle/draw
func (h *RaffleHandler) DrawPrimary(c *gin.Context) {
	var request DrawPrimaryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raffle, err := h.raffleService.DrawPrimary(request.MatchName)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"raffle": raffle, "spotsNeeded": raffle.SpotsNeeded()})
}

// GetActive handles GET /raffle
func (h *RaffleHandler) GetActive(c *gin.Context) {
	raffle, spots, err := h.raffleService.Active()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffle": raffle, "spotsNeeded": spots})
}

// ConfirmWinner handles POST /raffle/winners/:memberId/confirm
func (h *RaffleHandler) ConfirmWinner(c *gin.Context) {
	h.toggleStatus(c, models.WinnerStatusConfirmed)
}

// RejectWinner handles POST /raffle/winners/:memberId/reject
func (h *RaffleHandler) RejectWinner(c *gin.Context) {
	h.toggleStatus(c, models.WinnerStatusRejected)
}

func (h *RaffleHandler) toggleStatus(c *gin.Context, action models.WinnerStatus) {
	spots, err := h.raffleService.ToggleWinnerStatus(c.Param("memberId"), action)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spotsNeeded": spots})
}

// SetReserveListRequest is the body for PUT /raffle/reserve
type SetReserveListRequest struct {
	MemberIDs []string `json:"memberIds" binding:"required"`
}

// SetReserveList handles PUT /raffle/reserve
func (h *RaffleHandler) SetReserveList(c *gin.Context) {
	var request SetReserveListRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raffle, err := h.raffleService.SetReserveList(request.MemberIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffle": raffle})
}

// DrawReserve handles POST /raffle/reserve/draw
func (h *RaffleHandler) DrawReserve(c *gin.Context) {
	raffle, err := h.raffleService.DrawReserve()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffle": raffle})
}

// Transfer handles POST /raffle/transfer
func (h *RaffleHandler) Transfer(c *gin.Context) {
	if err := h.raffleService.Transfer(); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Raffle transferred to pass slots"})
}

// CloseMatchdayRequest is the body for POST /raffle/close. Archiving is
// irreversible, so the client must confirm explicitly.
type CloseMatchdayRequest struct {
	Confirm bool `json:"confirm"`
}

// CloseMatchday handles POST /raffle/close
func (h *RaffleHandler) CloseMatchday(c *gin.Context) {
	var request CloseMatchdayRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !request.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archiving a matchday requires confirmation"})
		return
	}

	record, err := h.raffleService.CloseMatchday()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Discard handles DELETE /raffle (repeat raffle)
func (h *RaffleHandler) Discard(c *gin.Context) {
	if err := h.raffleService.Discard(); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Active raffle discarded"})
}

// GetHistory handles GET /history
func (h *RaffleHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.raffleService.MatchHistory())
}

// GetCycle handles GET /history/cycle
func (h *RaffleHandler) GetCycle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"memberIds": h.raffleService.CycleHistory()})
}

// RebuildCycle handles POST /history/cycle/rebuild
func (h *RaffleHandler) RebuildCycle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"memberIds": h.raffleService.RebuildCycleHistory()})
}
