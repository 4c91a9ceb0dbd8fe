package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

// Server code returned when transactions are used against a standalone mongod.
const illegalOperationCode = 20

type BookingRepo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	camps   *mongo.Collection
	timeout time.Duration
}

func byParticipantCamp(email, campID string) bson.M {
	return bson.M{"participant_email": email, "campId": campID}
}

// Create inserts the booking and, when campId names a camp, increments that
// camp's participant_count inside one transaction. On deployments without
// transaction support the two writes run back to back.
func (r *BookingRepo) Create(ctx context.Context, booking bson.M) (*models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := withoutID(booking)
	campID, hasCamp := campObjectID(doc)

	if !hasCamp {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		return insertResult(res), nil
	}

	res, err := r.createInTxn(ctx, doc, campID)
	if isTxnUnsupported(err) {
		log.Printf("BookingRepo.Create: transactions unsupported, writing booking and counter separately")
		return r.insertAndCount(ctx, doc, campID)
	}
	return res, err
}

func (r *BookingRepo) createInTxn(ctx context.Context, doc bson.M, campID primitive.ObjectID) (*models.InsertResult, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.insertAndCount(sc, doc, campID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.InsertResult), nil
}

func (r *BookingRepo) insertAndCount(ctx context.Context, doc bson.M, campID primitive.ObjectID) (*models.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	if _, err := r.camps.UpdateOne(ctx, bson.M{"_id": campID}, incParticipants); err != nil {
		return nil, fmt.Errorf("increment camp %s: %w", campID.Hex(), err)
	}
	return insertResult(res), nil
}

func campObjectID(doc bson.M) (primitive.ObjectID, bool) {
	hex, ok := doc["campId"].(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func isTxnUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == illegalOperationCode
}

func (r *BookingRepo) List(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{})
}

func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{"participant_email": email})
}

// ForParticipant decodes a participant's bookings for statistics.
func (r *BookingRepo) ForParticipant(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"participant_email": email})
	if err != nil {
		return nil, fmt.Errorf("find bookings for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings for %s: %w", email, err)
	}
	return bookings, nil
}

func (r *BookingRepo) Find(ctx context.Context, email, campID string) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findOne(ctx, r.coll, byParticipantCamp(email, campID))
}

// Delete removes one booking. A missing booking is not an error: DeletedCount is 0.
func (r *BookingRepo) Delete(ctx context.Context, email, campID string) (*models.DeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, byParticipantCamp(email, campID))
	if err != nil {
		return nil, fmt.Errorf("delete booking %s/%s: %w", email, campID, err)
	}
	return deleteResult(res), nil
}
