package routes

import (
	"gig-coordinator/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterHireRoutes registers the hire coordinator endpoints.
func RegisterHireRoutes(
	rg *gin.RouterGroup,
	hireHandler handlers.HireHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	// Proposals hang off the job they are for.
	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.POST("/:id/hires", hireHandler.ProposeHire)
	}

	hires := rg.Group("/hires")
	hires.Use(authMiddleware)
	{
		hires.GET("/proposals", hireHandler.ListProposals)
		hires.GET("/:id", hireHandler.GetHire)
		hires.PATCH("/:id/accept", hireHandler.AcceptHire)
		hires.PATCH("/:id/reject", hireHandler.RejectHire)
		hires.PATCH("/:id/complete", hireHandler.CompleteHire)
	}
}
