package routes

import (
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/config"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/handlers"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies groups the handlers the router wires up
type HandlerDependencies struct {
	MemberHandler *handlers.MemberHandler
	SlotHandler   *handlers.SlotHandler
	RaffleHandler *handlers.RaffleHandler
	PassHandler   *handlers.PassHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Secure viewer: the link a member opens at the turnstile
		public.GET("/passes/view", deps.PassHandler.ViewPass)
	}

	// Admin routes
	admin := router.Group("/api/v1")
	admin.Use(middleware.AdminAuthMiddleware(cfg))
	{
		members := admin.Group("/members")
		{
			members.GET("", deps.MemberHandler.GetMembers)
			members.GET("/search", deps.MemberHandler.SearchMembers)
			members.POST("/refresh", deps.MemberHandler.RefreshRoster)
		}

		slots := admin.Group("/slots")
		{
			slots.GET("", deps.SlotHandler.GetSlots)
			slots.PUT("/:id/assign", deps.SlotHandler.AssignSlot)
			slots.DELETE("/:id/assign", deps.SlotHandler.UnassignSlot)
			slots.GET("/:id/share", deps.SlotHandler.ShareSlot)
			slots.POST("/reset", deps.SlotHandler.FullReset)
		}

		raffle := admin.Group("/raffle")
		{
			raffle.GET("", deps.RaffleHandler.GetActive)
			raffle.POST("/draw", deps.RaffleHandler.DrawPrimary)
			raffle.DELETE("", deps.RaffleHandler.Discard)
			raffle.POST("/winners/:memberId/confirm", deps.RaffleHandler.ConfirmWinner)
			raffle.POST("/winners/:memberId/reject", deps.RaffleHandler.RejectWinner)
			raffle.PUT("/reserve", deps.RaffleHandler.SetReserveList)
			raffle.POST("/reserve/draw", deps.RaffleHandler.DrawReserve)
			raffle.POST("/transfer", deps.RaffleHandler.Transfer)
			raffle.POST("/close", deps.RaffleHandler.CloseMatchday)
		}

		history := admin.Group("/history")
		{
			history.GET("", deps.RaffleHandler.GetHistory)
			history.GET("/cycle", deps.RaffleHandler.GetCycle)
			history.POST("/cycle/rebuild", deps.RaffleHandler.RebuildCycle)
		}
	}

	return router
}
