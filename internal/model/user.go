package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password,omitempty"`
	CurrentStreak int                `json:"current_streak" bson:"current_streak"`
	LongestStreak int                `json:"longest_streak" bson:"longest_streak"`
	Profile       bson.M             `json:"profile,omitempty" bson:",inline"`
}

// UserReservedFields are stored as struct fields and must never land in Profile.
var UserReservedFields = []string{"_id", "username", "email", "password", "current_streak", "longest_streak"}
