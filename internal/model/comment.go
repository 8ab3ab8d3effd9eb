package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PostID     primitive.ObjectID `json:"post_id" bson:"post_id"`
	Username   string             `json:"username" bson:"username"`
	Body       string             `json:"body" bson:"body"`
	DatePosted time.Time          `json:"date_posted" bson:"date_posted"`
}
