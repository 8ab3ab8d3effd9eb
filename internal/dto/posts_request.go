package dto

import "time"

type CreatePostDto struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsPublic   bool      `json:"is_public"`
	DatePosted time.Time `json:"datePosted"`
}
