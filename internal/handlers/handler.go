package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/medcampconnect/medcamp-api/internal/middleware"
	"github.com/medcampconnect/medcamp-api/internal/models"
	"github.com/medcampconnect/medcamp-api/internal/services"
	"github.com/medcampconnect/medcamp-api/internal/store"
	"github.com/medcampconnect/medcamp-api/internal/utils"
)

type CampStore interface {
	List(ctx context.Context, search, sort string) ([]bson.M, error)
	Top(ctx context.Context) ([]bson.M, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Create(ctx context.Context, camp bson.M) (*models.InsertResult, error)
	Update(ctx context.Context, id string, camp bson.M) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	IncrementParticipants(ctx context.Context, id string) (*models.UpdateResult, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (bson.M, error)
	Lookup(ctx context.Context, email string) (*models.User, error)
	Ensure(ctx context.Context, user bson.M, now time.Time) (bson.M, *models.UpdateResult, error)
	List(ctx context.Context) ([]bson.M, error)
}

type BookingStore interface {
	Create(ctx context.Context, booking bson.M) (*models.InsertResult, error)
	List(ctx context.Context) ([]bson.M, error)
	ListByEmail(ctx context.Context, email string) ([]bson.M, error)
	ForParticipant(ctx context.Context, email string) ([]models.Booking, error)
	Find(ctx context.Context, email, campID string) (bson.M, error)
	Delete(ctx context.Context, email, campID string) (*models.DeleteResult, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback bson.M) (*models.InsertResult, error)
	List(ctx context.Context) ([]bson.M, error)
	ListByCamp(ctx context.Context, campID string) ([]bson.M, error)
}

type SliderStore interface {
	List(ctx context.Context) ([]bson.M, error)
}

type Payments interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
	ListIntents(ctx context.Context) (*services.IntentPage, error)
}

type ImageHost interface {
	Upload(ctx context.Context, contentType string, body []byte) (*services.UploadResponse, error)
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Deps are the collaborators a Handler needs. Revoker may be nil.
type Deps struct {
	Camps      CampStore
	Users      UserStore
	Bookings   BookingStore
	Feedback   FeedbackStore
	Slider     SliderStore
	Tokens     *utils.TokenService
	Payments   Payments
	Images     ImageHost
	Revoker    Revoker
	Production bool
	Now        func() time.Time
}

type Handler struct {
	Deps
}

func NewHandler(d Deps) *Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{Deps: d}
}

// storeError maps store failures: malformed ids read as not found, everything else is a 500.
func storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, store.ErrInvalidID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	log.Printf("[%s] %s: %v", middleware.RequestID(c), op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// bindDocument reads a free-form JSON object body.
func bindDocument(c *gin.Context) (bson.M, bool) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return nil, false
	}
	return doc, true
}
