package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/journal-service/internal/config"
	"github.com/BloggingApp/journal-service/internal/dto"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Malformed identifiers must be rejected before the store is touched, so a Service
// without a Mongo repository is enough here.
func newStorelessService() *Service {
	repo := &repository.Repository{Redis: redisrepo.New(nil, 0)}
	return New(zap.NewNop(), repo, config.DBConfig{Mode: config.ModeTest})
}

func TestInvalidIDsAreReported(t *testing.T) {
	s := newStorelessService()
	ctx := context.Background()
	bad := "not-an-object-id"
	good := primitive.NewObjectID().Hex()

	calls := map[string]func() error{
		"User.Find": func() error {
			_, err := s.User.Find(ctx, map[string]interface{}{"_id": bad})
			return err
		},
		"User.FindByID": func() error { _, err := s.User.FindByID(ctx, bad); return err },
		"User.UpdateInfo": func() error {
			_, err := s.User.UpdateInfo(ctx, bad, map[string]interface{}{"username": "x"})
			return err
		},
		"User.UpdatePassword": func() error { return s.User.UpdatePassword(ctx, bad, "a", "b").Err() },
		"User.Delete":         func() error { return s.User.Delete(ctx, bad) },
		"Post.Create":         func() error { _, err := s.Post.Create(ctx, bad, dto.CreatePostDto{}); return err },
		"Post.Find": func() error {
			_, err := s.Post.Find(ctx, map[string]interface{}{"_id": bad})
			return err
		},
		"Post.FindByID":      func() error { _, err := s.Post.FindByID(ctx, bad); return err },
		"Post.FindUserPosts": func() error { _, err := s.Post.FindUserPosts(ctx, bad); return err },
		"Post.Update":        func() error { _, err := s.Post.Update(ctx, bad, good, nil); return err },
		"Post.Update bad owner": func() error {
			_, err := s.Post.Update(ctx, good, bad, map[string]interface{}{"title": "x"})
			return err
		},
		"Post.Like bad user":    func() error { _, err := s.Post.Like(ctx, bad, good); return err },
		"Post.Like bad post":    func() error { _, err := s.Post.Like(ctx, good, bad); return err },
		"Post.Unlike":           func() error { _, err := s.Post.Unlike(ctx, good, bad); return err },
		"Post.Delete":           func() error { return s.Post.Delete(ctx, bad, good) },
		"Post.Delete bad owner": func() error { return s.Post.Delete(ctx, good, bad) },
		"Comment.Create": func() error {
			_, err := s.Comment.Create(ctx, bad, dto.CreateCommentDto{Username: "amy", Body: "b"})
			return err
		},
		"Comment.Find":             func() error { _, err := s.Comment.Find(ctx, bad, "amy"); return err },
		"Comment.FindPostComments": func() error { _, err := s.Comment.FindPostComments(ctx, bad); return err },
		"Comment.Update":           func() error { _, err := s.Comment.Update(ctx, bad, "amy", "b"); return err },
		"Comment.Delete":           func() error { return s.Comment.Delete(ctx, good, "amy", bad) },
		"Comment.DeleteMany post":  func() error { return s.Comment.DeleteMany(ctx, dto.CommentFilter{PostID: bad}) },
		"Comment.DeleteMany user":  func() error { return s.Comment.DeleteMany(ctx, dto.CommentFilter{UserID: bad}) },
		"Consistency.Reconcile":    func() error { return s.Consistency.Reconcile(ctx, bad) },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), ErrInvalidID)
		})
	}
}

func TestDeleteManyCommentsRequiresExactlyOneFilter(t *testing.T) {
	s := newStorelessService()
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	assert.ErrorIs(t, s.Comment.DeleteMany(ctx, dto.CommentFilter{}), ErrCommentFilterRequired)
	assert.ErrorIs(t, s.Comment.DeleteMany(ctx, dto.CommentFilter{PostID: id, UserID: id}), ErrCommentFilterRequired)
}
