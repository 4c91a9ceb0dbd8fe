package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

// ParseRole accepts only the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOrganizer, RoleParticipant:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is the subset of a user document the role guard needs. Stored user
// documents may carry more fields; those are returned untouched as bson.M.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Timestamp int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role == r
}
