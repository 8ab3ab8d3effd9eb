package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID           string             `json:"user_id" bson:"user_id"`
	Username         string             `json:"username" bson:"username"`
	Title            string             `json:"title" bson:"title"`
	Content          string             `json:"content" bson:"content"`
	IsPublic         bool               `json:"is_public" bson:"is_public"`
	DatePosted       time.Time          `json:"datePosted" bson:"datePosted"`
	NumberOfLikes    int64              `json:"number_of_likes" bson:"number_of_likes"`
	Likes            []string           `json:"likes" bson:"likes"`
	NumberOfComments int64              `json:"number_of_comments" bson:"number_of_comments"`
	Comments         []Comment          `json:"comments" bson:"comments"`
}

// PostDerivedFields are maintained by the like and comment operations only.
var PostDerivedFields = []string{"_id", "user_id", "username", "likes", "number_of_likes", "comments", "number_of_comments"}
