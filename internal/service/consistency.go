package service

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type consistencyService struct {
	logger *zap.Logger
	repo   *repository.Repository
	cache  cache
}

func newConsistencyService(logger *zap.Logger, repo *repository.Repository) Consistency {
	return &consistencyService{
		logger: logger,
		repo:   repo,
		cache:  cache{logger: logger, redis: repo.Redis},
	}
}

// Check recomputes every post's counters from the likes set and the comments collection
// and returns the posts that disagree.
func (s *consistencyService) Check(ctx context.Context) ([]*model.PostDrift, error) {
	posts, err := s.repo.Mongo.Post.Find(ctx, bson.M{}, nil, 0, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list posts for consistency check: %s", err.Error())
		return nil, ErrInternal
	}

	drifts := []*model.PostDrift{}
	for _, post := range posts {
		stored, err := s.repo.Mongo.Comment.FindByPost(ctx, post.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to list post(%s) comments: %s", post.ID.Hex(), err.Error())
			return nil, ErrInternal
		}

		if drift := postDrift(post, stored); drift != nil {
			drifts = append(drifts, drift)
		}
	}

	return drifts, nil
}

func postDrift(post *model.Post, stored []*model.Comment) *model.PostDrift {
	drift := &model.PostDrift{
		PostID:           post.ID,
		NumberOfLikes:    post.NumberOfLikes,
		Likes:            len(post.Likes),
		NumberOfComments: post.NumberOfComments,
		EmbeddedComments: len(post.Comments),
		StoredComments:   len(stored),
	}

	if drift.NumberOfLikes != int64(drift.Likes) ||
		drift.NumberOfComments != int64(drift.StoredComments) ||
		drift.EmbeddedComments != drift.StoredComments {
		return drift
	}

	embedded := make(map[string]model.Comment, len(post.Comments))
	for _, c := range post.Comments {
		embedded[c.ID.Hex()] = c
	}
	for _, c := range stored {
		embeddedCopy, ok := embedded[c.ID.Hex()]
		if !ok || embeddedCopy.Body != c.Body || embeddedCopy.Username != c.Username {
			return drift
		}
	}

	return nil
}

// Reconcile rewrites the post's counters and embedded comments from their sources.
func (s *consistencyService) Reconcile(ctx context.Context, postID string) error {
	pid, err := parseID(postID)
	if err != nil {
		return err
	}

	stored, err := s.repo.Mongo.Comment.FindByPost(ctx, pid)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list post(%s) comments: %s", postID, err.Error())
		return ErrInternal
	}

	comments := make([]model.Comment, 0, len(stored))
	for _, c := range stored {
		comments = append(comments, *c)
	}

	matched, err := s.repo.Mongo.Post.ResetDerived(ctx, pid, comments)
	if err != nil {
		s.logger.Sugar().Errorf("failed to reconcile post(%s): %s", postID, err.Error())
		return ErrInternal
	}
	if !matched {
		return ErrNotFound
	}

	s.cache.invalidatePosts(ctx, postID)
	s.logger.Sugar().Infof("post(%s) reconciled with %d comments", postID, len(comments))

	return nil
}
