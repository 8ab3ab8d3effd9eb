package service

import (
	"context"
	"time"

	"github.com/BloggingApp/journal-service/internal/dto"
	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	cache  cache
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		cache:  cache{logger: logger, redis: repo.Redis},
	}
}

// Create inserts the comment and then appends its copy to the parent post. If the append
// fails the comment document stays behind as an orphan; Consistency.Reconcile repairs it.
func (s *commentService) Create(ctx context.Context, postID string, input dto.CreateCommentDto) (string, error) {
	pid, err := parseID(postID)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Mongo.Post.FindOne(ctx, bson.M{"_id": pid}); err != nil {
		if isNoDocuments(err) {
			return "", ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return "", ErrInternal
	}

	comment := model.Comment{
		ID:         primitive.NewObjectID(),
		PostID:     pid,
		Username:   input.Username,
		Body:       input.Body,
		DatePosted: input.DatePosted,
	}
	if comment.DatePosted.IsZero() {
		comment.DatePosted = time.Now().UTC()
	}

	id, err := s.repo.Mongo.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s): %s", postID, err.Error())
		return "", ErrInternal
	}

	log := s.logger.Sugar().With("op", uuid.NewString(), "comment_id", id.Hex(), "post_id", postID)

	matched, err := s.repo.Mongo.Post.PushComment(ctx, pid, comment)
	if err != nil {
		log.Errorf("comment inserted but not attached to its post: %s", err.Error())
		return "", ErrPartialWrite
	}
	if !matched {
		log.Warn("comment inserted but its post no longer exists")
		return "", ErrNotFound
	}

	s.cache.invalidatePosts(ctx, postID)

	return id.Hex(), nil
}

func (s *commentService) Find(ctx context.Context, commentID string, username string) (*model.Comment, error) {
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Mongo.Comment.FindOne(ctx, bson.M{"_id": cid, "username": username})
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%s): %s", commentID, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

func (s *commentService) FindPostComments(ctx context.Context, postID string) ([]*model.Comment, error) {
	pid, err := parseID(postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Mongo.Comment.FindByPost(ctx, pid)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

func (s *commentService) Update(ctx context.Context, commentID string, username string, body string) (*model.Comment, error) {
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Mongo.Comment.Update(ctx, bson.M{"_id": cid, "username": username}, body)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%s): %s", commentID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Mongo.Post.SetCommentBody(ctx, comment.PostID, cid, body); err != nil {
		s.logger.Sugar().Errorf("comment(%s) updated but its copy on post(%s) was not: %s", commentID, comment.PostID.Hex(), err.Error())
		return comment, ErrPartialWrite
	}

	s.cache.invalidatePosts(ctx, comment.PostID.Hex())

	return comment, nil
}

// Delete removes the comment first and only then its copy on the post.
func (s *commentService) Delete(ctx context.Context, commentID string, username string, postID string) error {
	cid, err := parseID(commentID)
	if err != nil {
		return err
	}
	pid, err := parseID(postID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Mongo.Comment.Delete(ctx, bson.M{"_id": cid, "username": username, "post_id": pid})
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", commentID, err.Error())
		return ErrInternal
	}
	if deleted == 0 {
		return ErrNotFound
	}

	if _, err := s.repo.Mongo.Post.PullComment(ctx, pid, cid); err != nil {
		s.logger.Sugar().Errorf("comment(%s) deleted but still embedded in post(%s): %s", commentID, postID, err.Error())
		return ErrPartialWrite
	}

	s.cache.invalidatePosts(ctx, postID)

	return nil
}

// DeleteMany removes every comment of one post, or of every post owned by one user.
func (s *commentService) DeleteMany(ctx context.Context, filter dto.CommentFilter) error {
	if (filter.PostID == "") == (filter.UserID == "") {
		return ErrCommentFilterRequired
	}

	var postIDs []primitive.ObjectID
	if filter.PostID != "" {
		pid, err := parseID(filter.PostID)
		if err != nil {
			return err
		}
		postIDs = []primitive.ObjectID{pid}
	} else {
		if _, err := parseID(filter.UserID); err != nil {
			return err
		}
		ids, err := s.repo.Mongo.Post.FindIDs(ctx, bson.M{"user_id": filter.UserID})
		if err != nil {
			s.logger.Sugar().Errorf("failed to find user(%s) posts: %s", filter.UserID, err.Error())
			return ErrInternal
		}
		postIDs = ids
	}

	if len(postIDs) == 0 {
		return nil
	}

	log := s.logger.Sugar().With("op", uuid.NewString(), "post_ids", hexIDs(postIDs))

	deleted, err := s.repo.Mongo.Comment.DeleteByPosts(ctx, postIDs)
	if err != nil {
		log.Errorf("failed to delete comments: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Mongo.Post.ClearComments(ctx, postIDs); err != nil {
		log.Errorf("deleted %d comments but failed to clear embedded copies: %s", deleted, err.Error())
		return ErrInternal
	}

	s.cache.invalidatePosts(ctx, hexIDs(postIDs)...)
	log.Infof("deleted %d comments", deleted)

	return nil
}
