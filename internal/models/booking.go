package models

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is the typed view used for participant statistics. camp_fees is
// kept raw because clients store it both as a string and as a number.
type Booking struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ParticipantEmail string             `bson:"participant_email" json:"participant_email"`
	CampID           string             `bson:"campId" json:"campId"`
	CampName         string             `bson:"camp_name" json:"camp_name"`
	CampFees         interface{}        `bson:"camp_fees" json:"camp_fees"`
}

// Fee returns camp_fees as a decimal. Values that cannot be read as a number count as 0.
func (b Booking) Fee() float64 {
	return ParseFee(b.CampFees)
}

func ParseFee(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
