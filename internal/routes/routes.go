package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/handlers"
	"github.com/medcampconnect/medcamp-api/internal/middleware"
	"github.com/medcampconnect/medcamp-api/internal/models"
)

// NewRouter builds the engine with CORS restricted to origins (credentials allowed)
// and every route registered. revoked may be nil.
func NewRouter(h *handlers.Handler, origins []string, revoked middleware.Revocations) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	SetupRoutes(r, h, revoked)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, revoked middleware.Revocations) {
	auth := middleware.AuthMiddleware(h.Tokens, revoked)
	organizer := middleware.RequireRole(h.Users, models.RoleOrganizer)
	participant := middleware.RequireRole(h.Users, models.RoleParticipant)

	r.GET("/", Index)

	// session
	r.POST("/jwt", h.IssueToken)
	r.GET("/logout", h.Logout)

	// payments
	r.POST("/create-payment-intent", auth, h.CreatePaymentIntent)
	r.GET("/payments", auth, h.ListPayments)

	// users
	r.PUT("/user", h.UpsertUser)
	r.GET("/user/:email", h.GetUser)
	r.GET("/users", auth, organizer, h.ListUsers)

	// camps
	r.GET("/camps", h.ListCamps)
	r.GET("/sortedCamps", h.TopCamps)
	r.GET("/camp/:id", h.GetCamp)
	r.POST("/camps", auth, organizer, h.CreateCamp)
	r.DELETE("/camp/:id", auth, organizer, h.DeleteCamp)
	r.PUT("/update-camp/:campId", auth, organizer, h.UpdateCamp)
	r.PATCH("/camp/:id", h.IncrementParticipants)

	// bookings
	r.POST("/bookings", auth, h.CreateBooking)
	r.GET("/bookings", auth, organizer, h.ListBookings)
	r.GET("/bookings/:email", auth, h.ListParticipantBookings)
	r.GET("/participant-stats/:email", auth, participant, h.ParticipantStats)
	r.GET("/booking/:email/:campId", h.GetBooking)
	r.DELETE("/booking/:email/:campId", h.DeleteBooking)

	// feedback
	r.POST("/feedbacks", h.CreateFeedback)
	r.GET("/feedbacks", h.ListFeedback)
	r.GET("/feedback/:campId", h.ListCampFeedback)

	// media
	r.POST("/upload", h.UploadImage)
	r.GET("/slider", h.ListSlides)
}

// Index is the liveness check.
func Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello from MedCampConnect Server..")
}
