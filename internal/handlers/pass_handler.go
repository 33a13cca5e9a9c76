package handlers

import (
	"net/http"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/gin-gonic/gin"
)

// PassHandler handles the public secure-viewer requests
type PassHandler struct {
	passService services.PassService
}

// NewPassHandler creates a new PassHandler
func NewPassHandler(passService services.PassService) *PassHandler {
	return &PassHandler{
		passService: passService,
	}
}

// ViewPass handles GET /passes/view?id=&t=&slot=
func (h *PassHandler) ViewPass(c *gin.Context) {
	view, err := h.passService.Resolve(c.Request.Context(), c.Query("id"), c.Query("t"), c.Query("slot"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
