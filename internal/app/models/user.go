package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents a user's platform-wide role
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleAdmin     Role = "admin"
)

// User defines a registered developer account
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Name      string             `json:"name" bson:"name"`
	Role      Role               `json:"role" bson:"role"`
	IsBlocked bool               `json:"isBlocked" bson:"isBlocked"`
	Profile   Profile            `json:"profile" bson:"profile"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Profile holds the public developer profile embedded in the user document
type Profile struct {
	Bio        string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Experience string   `json:"experience,omitempty" bson:"experience,omitempty"`
	Github     string   `json:"github,omitempty" bson:"github,omitempty"`
	Portfolio  string   `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
	Avatar     string   `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Location   string   `json:"location,omitempty" bson:"location,omitempty"`
	Website    string   `json:"website,omitempty" bson:"website,omitempty"`
	Linkedin   string   `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter    string   `json:"twitter,omitempty" bson:"twitter,omitempty"`
}
