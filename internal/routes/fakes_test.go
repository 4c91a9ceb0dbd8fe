package routes

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medcampconnect/medcamp-api/internal/models"
	"github.com/medcampconnect/medcamp-api/internal/services"
	"github.com/medcampconnect/medcamp-api/internal/store"
)

var errStoreDown = errors.New("store down")

type fakeCamps struct {
	mu       sync.Mutex
	docs     map[string]bson.M
	calls    int
	lastList [2]string
	fail     bool
}

func newFakeCamps() *fakeCamps {
	return &fakeCamps{docs: map[string]bson.M{}}
}

func (f *fakeCamps) touch() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return errStoreDown
	}
	return nil
}

func validID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func (f *fakeCamps) List(_ context.Context, search, sort string) ([]bson.M, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	f.lastList = [2]string{search, sort}
	out := make([]bson.M, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeCamps) Top(_ context.Context) ([]bson.M, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	return []bson.M{}, nil
}

func (f *fakeCamps) Get(_ context.Context, id string) (bson.M, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	if err := validID(id); err != nil {
		return nil, err
	}
	return f.docs[id], nil
}

func (f *fakeCamps) Create(_ context.Context, camp bson.M) (*models.InsertResult, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	id := primitive.NewObjectID()
	camp["_id"] = id
	f.docs[id.Hex()] = camp
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (f *fakeCamps) Update(_ context.Context, id string, camp bson.M) (*models.UpdateResult, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	if err := validID(id); err != nil {
		return nil, err
	}
	doc, ok := f.docs[id]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	for k, v := range camp {
		doc[k] = v
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCamps) Delete(_ context.Context, id string) (*models.DeleteResult, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	if err := validID(id); err != nil {
		return nil, err
	}
	if _, ok := f.docs[id]; !ok {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	delete(f.docs, id)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (f *fakeCamps) IncrementParticipants(_ context.Context, id string) (*models.UpdateResult, error) {
	if err := f.touch(); err != nil {
		return nil, err
	}
	if err := validID(id); err != nil {
		return nil, err
	}
	doc, ok := f.docs[id]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	n, _ := doc["participant_count"].(int)
	doc["participant_count"] = n + 1
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	docs  map[string]bson.M
	calls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{docs: map[string]bson.M{}}
}

func (f *fakeUsers) add(email string, role models.Role) {
	f.docs[email] = bson.M{"_id": primitive.NewObjectID(), "email": email, "role": string(role)}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.docs[email], nil
}

func (f *fakeUsers) Lookup(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	doc, ok := f.docs[email]
	if !ok {
		return nil, nil
	}
	role, _ := doc["role"].(string)
	return &models.User{Email: email, Role: models.Role(role)}, nil
}

func (f *fakeUsers) Ensure(_ context.Context, user bson.M, now time.Time) (bson.M, *models.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	email := user["email"].(string)
	if existing, ok := f.docs[email]; ok {
		return existing, nil, nil
	}
	id := primitive.NewObjectID()
	doc := bson.M{"_id": id, "timestamp": now.UnixMilli()}
	for k, v := range user {
		doc[k] = v
	}
	f.docs[email] = doc
	return nil, &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (f *fakeUsers) List(_ context.Context) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := make([]bson.M, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

type fakeBookings struct {
	mu    sync.Mutex
	docs  []bson.M
	calls int
}

func (f *fakeBookings) Create(_ context.Context, booking bson.M) (*models.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	id := primitive.NewObjectID()
	booking["_id"] = id
	f.docs = append(f.docs, booking)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (f *fakeBookings) List(_ context.Context) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]bson.M{}, f.docs...), nil
}

func (f *fakeBookings) ListByEmail(_ context.Context, email string) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := []bson.M{}
	for _, d := range f.docs {
		if d["participant_email"] == email {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeBookings) ForParticipant(ctx context.Context, email string) ([]models.Booking, error) {
	docs, _ := f.ListByEmail(ctx, email)
	out := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		name, _ := d["camp_name"].(string)
		campID, _ := d["campId"].(string)
		out = append(out, models.Booking{
			ParticipantEmail: email,
			CampID:           campID,
			CampName:         name,
			CampFees:         d["camp_fees"],
		})
	}
	return out, nil
}

func (f *fakeBookings) Find(_ context.Context, email, campID string) (bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, d := range f.docs {
		if d["participant_email"] == email && d["campId"] == campID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) Delete(_ context.Context, email, campID string) (*models.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i, d := range f.docs {
		if d["participant_email"] == email && d["campId"] == campID {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

type fakeFeedback struct {
	docs []bson.M
}

func (f *fakeFeedback) Create(_ context.Context, feedback bson.M) (*models.InsertResult, error) {
	id := primitive.NewObjectID()
	feedback["_id"] = id
	f.docs = append(f.docs, feedback)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (f *fakeFeedback) List(_ context.Context) ([]bson.M, error) {
	return append([]bson.M{}, f.docs...), nil
}

func (f *fakeFeedback) ListByCamp(_ context.Context, campID string) ([]bson.M, error) {
	out := []bson.M{}
	for _, d := range f.docs {
		if d["campId"] == campID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeSlider struct{}

func (fakeSlider) List(_ context.Context) ([]bson.M, error) {
	return []bson.M{{"image": "a.png", "caption": "Free eye camp"}}, nil
}

type fakePayments struct {
	created []int64
	listed  int
}

func (f *fakePayments) CreateIntent(_ context.Context, amount int64) (string, error) {
	f.created = append(f.created, amount)
	return "pi_secret_test", nil
}

func (f *fakePayments) ListIntents(_ context.Context) (*services.IntentPage, error) {
	f.listed++
	return &services.IntentPage{Object: "list", Data: nil, URL: "/v1/payment_intents"}, nil
}

type fakeImages struct {
	contentType string
	body        []byte
	fail        bool
}

func (f *fakeImages) Upload(_ context.Context, contentType string, body []byte) (*services.UploadResponse, error) {
	if f.fail {
		return nil, errors.New("image host unreachable")
	}
	f.contentType = contentType
	f.body = body
	return &services.UploadResponse{ContentType: "application/json", Body: []byte(`{"success":true}`)}, nil
}

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: map[string]time.Time{}}
}

func (f *fakeRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}
