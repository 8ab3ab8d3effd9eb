package service

import (
	"context"
	"time"

	"github.com/BloggingApp/journal-service/internal/dto"
	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type postService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	cache    cache
	comments Comment
}

func newPostService(logger *zap.Logger, repo *repository.Repository, comments Comment) Post {
	return &postService{
		logger:   logger,
		repo:     repo,
		cache:    cache{logger: logger, redis: repo.Redis},
		comments: comments,
	}
}

func (s *postService) Create(ctx context.Context, userID string, input dto.CreatePostDto) (string, error) {
	uid, err := parseID(userID)
	if err != nil {
		return "", err
	}

	author, err := s.repo.Mongo.User.FindOne(ctx, bson.M{"_id": uid})
	if err != nil {
		if isNoDocuments(err) {
			return "", ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", userID, err.Error())
		return "", ErrInternal
	}

	post := model.Post{
		UserID:     userID,
		Username:   author.Username,
		Title:      input.Title,
		Content:    input.Content,
		IsPublic:   input.IsPublic,
		DatePosted: input.DatePosted,
	}
	if post.DatePosted.IsZero() {
		post.DatePosted = time.Now().UTC()
	}

	id, err := s.repo.Mongo.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", userID, err.Error())
		return "", ErrInternal
	}

	return id.Hex(), nil
}

func (s *postService) Find(ctx context.Context, filter map[string]interface{}) (*model.Post, error) {
	normalized, err := normalizeFilter(filter, "_id")
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Mongo.Post.FindOne(ctx, normalized)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post by %v: %s", filter, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) FindByID(ctx context.Context, id string) (*model.Post, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if cachedPost, ok := fromCache[model.Post](s.cache, ctx, redisrepo.PostKey(id)); ok {
		return cachedPost, nil
	}

	post, err := s.repo.Mongo.Post.FindOne(ctx, bson.M{"_id": pid})
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.cache.store(ctx, redisrepo.PostKey(id), post)

	return post, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Mongo.Post.Find(ctx, bson.M{}, nil, 0, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

// FindUserPosts returns the user's posts in store order; callers needing time order sort themselves.
func (s *postService) FindUserPosts(ctx context.Context, userID string) ([]*model.Post, error) {
	if _, err := parseID(userID); err != nil {
		return nil, err
	}

	posts, err := s.repo.Mongo.Post.Find(ctx, bson.M{"user_id": userID}, nil, 0, 0)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) posts: %s", userID, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindPublic(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	maxLimit(&limit)
	if offset < 0 {
		offset = 0
	}

	sort := bson.D{{Key: "datePosted", Value: -1}, {Key: "_id", Value: -1}}
	posts, err := s.repo.Mongo.Post.Find(ctx, bson.M{"is_public": true}, sort, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find public posts: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

// Update applies fields only when the post belongs to userID. Counters, sets and
// ownership fields are not caller-writable.
func (s *postService) Update(ctx context.Context, postID string, userID string, fields map[string]interface{}) (*model.Post, error) {
	pid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	if _, err := parseID(userID); err != nil {
		return nil, err
	}

	filter := bson.M{"_id": pid, "user_id": userID}
	updates := withoutFields(fields, model.PostDerivedFields...)

	var post *model.Post
	if len(updates) == 0 {
		post, err = s.repo.Mongo.Post.FindOne(ctx, filter)
	} else {
		post, err = s.repo.Mongo.Post.Update(ctx, filter, updates)
	}
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%s): %s", postID, err.Error())
		return nil, ErrInternal
	}

	s.cache.invalidatePosts(ctx, postID)

	return post, nil
}

// Like returns true when the user had already liked the post; nothing is written in that case.
func (s *postService) Like(ctx context.Context, userID string, postID string) (bool, error) {
	return s.toggleLike(ctx, userID, postID, true)
}

// Unlike returns true when the user had not liked the post; nothing is written in that case.
func (s *postService) Unlike(ctx context.Context, userID string, postID string) (bool, error) {
	return s.toggleLike(ctx, userID, postID, false)
}

func (s *postService) toggleLike(ctx context.Context, userID string, postID string, like bool) (bool, error) {
	uid, err := parseID(userID)
	if err != nil {
		return false, err
	}
	pid, err := parseID(postID)
	if err != nil {
		return false, err
	}

	if _, err := s.repo.Mongo.User.FindOne(ctx, bson.M{"_id": uid}); err != nil {
		if isNoDocuments(err) {
			return false, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", userID, err.Error())
		return false, ErrInternal
	}

	var changed bool
	if like {
		changed, err = s.repo.Mongo.Post.AddLike(ctx, pid, userID)
	} else {
		changed, err = s.repo.Mongo.Post.RemoveLike(ctx, pid, userID)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to toggle user(%s) like on post(%s): %s", userID, postID, err.Error())
		return false, ErrInternal
	}

	if changed {
		s.cache.invalidatePosts(ctx, postID)
		return false, nil
	}

	// No match means either the post is gone or it is already in the requested state.
	if _, err := s.repo.Mongo.Post.FindOne(ctx, bson.M{"_id": pid}); err != nil {
		if isNoDocuments(err) {
			return false, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return false, ErrInternal
	}

	return true, nil
}

// Delete removes the post's comments before the post. If the comment cascade fails the post is kept.
func (s *postService) Delete(ctx context.Context, postID string, userID string) error {
	pid, err := parseID(postID)
	if err != nil {
		return err
	}
	if _, err := parseID(userID); err != nil {
		return err
	}

	filter := bson.M{"_id": pid, "user_id": userID}
	if _, err := s.repo.Mongo.Post.FindOne(ctx, filter); err != nil {
		if isNoDocuments(err) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return ErrInternal
	}

	log := s.logger.Sugar().With("op", uuid.NewString(), "post_id", postID)

	if err := s.comments.DeleteMany(ctx, dto.CommentFilter{PostID: postID}); err != nil {
		log.Errorf("aborting post delete, comment cascade failed: %s", err.Error())
		return err
	}

	deleted, err := s.repo.Mongo.Post.Delete(ctx, filter)
	if err != nil {
		log.Errorf("comments deleted but post was not: %s", err.Error())
		return ErrInternal
	}
	if deleted == 0 {
		return ErrNotFound
	}

	s.cache.invalidatePosts(ctx, postID)

	return nil
}
