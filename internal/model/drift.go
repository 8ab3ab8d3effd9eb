package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PostDrift describes a post whose cached counters or embedded comments disagree with their sources.
type PostDrift struct {
	PostID           primitive.ObjectID `json:"post_id"`
	NumberOfLikes    int64              `json:"number_of_likes"`
	Likes            int                `json:"likes"`
	NumberOfComments int64              `json:"number_of_comments"`
	EmbeddedComments int                `json:"embedded_comments"`
	StoredComments   int                `json:"stored_comments"`
}
