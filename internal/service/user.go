package service

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/dto"
	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/BloggingApp/journal-service/pkg/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type userService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	cache    cache
	comments Comment
}

func newUserService(logger *zap.Logger, repo *repository.Repository, comments Comment) User {
	return &userService{
		logger:   logger,
		repo:     repo,
		cache:    cache{logger: logger, redis: repo.Redis},
		comments: comments,
	}
}

// Create hashes the password before the document is written. Username and email
// uniqueness is the caller's responsibility.
func (s *userService) Create(ctx context.Context, input dto.CreateUserDto) (string, error) {
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for user(%s): %s", input.Username, err.Error())
		return "", ErrInternal
	}

	user := model.User{
		Username:      input.Username,
		Email:         input.Email,
		Password:      hash,
		CurrentStreak: input.CurrentStreak,
		LongestStreak: input.LongestStreak,
	}
	if len(input.Profile) > 0 {
		user.Profile = withoutFields(input.Profile, model.UserReservedFields...)
	}

	id, err := s.repo.Mongo.User.Create(ctx, user)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Username, err.Error())
		return "", ErrInternal
	}

	return id.Hex(), nil
}

func (s *userService) Find(ctx context.Context, filter map[string]interface{}) (*model.User, error) {
	normalized, err := normalizeFilter(withoutFields(filter, "password"), "_id")
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Mongo.User.FindOne(ctx, normalized)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user: %s", err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*model.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if cachedUser, ok := fromCacheBSON[model.User](s.cache, ctx, redisrepo.UserKey(id)); ok {
		return cachedUser, nil
	}

	user, err := s.repo.Mongo.User.FindOne(ctx, bson.M{"_id": uid})
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.cache.storeBSON(ctx, redisrepo.UserKey(id), user)

	return user, nil
}

func (s *userService) FindAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.Mongo.User.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find users: %s", err.Error())
		return nil, ErrInternal
	}

	return users, nil
}

func (s *userService) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.repo.Mongo.User.FindOneWithPassword(ctx, bson.M{"email": email})
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return nil, ErrInternal
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrPasswordMismatch
	}

	user.Password = ""
	return user, nil
}

// UpdateInfo never touches the password. A username change is copied to the user's posts,
// then to their comments and the embedded comment copies. Those follow-up writes are not
// atomic with the user update; if one fails the updated user is returned with ErrPartialWrite.
func (s *userService) UpdateInfo(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	updates := withoutFields(fields, "password", "_id")
	if len(updates) == 0 {
		return s.FindByID(ctx, id)
	}

	current, err := s.repo.Mongo.User.FindOne(ctx, bson.M{"_id": uid})
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Mongo.User.Update(ctx, uid, updates)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.cache.invalidate(ctx, redisrepo.UserKey(id))

	if user.Username != current.Username {
		if err := s.propagateRename(ctx, id, current.Username, user.Username); err != nil {
			return user, err
		}
	}

	return user, nil
}

func (s *userService) propagateRename(ctx context.Context, userID string, oldUsername string, newUsername string) error {
	log := s.logger.Sugar().With("op", uuid.NewString(), "user_id", userID, "from", oldUsername, "to", newUsername)

	ownPosts, err := s.repo.Mongo.Post.FindIDs(ctx, bson.M{"user_id": userID})
	if err != nil {
		log.Errorf("failed to list posts for rename: %s", err.Error())
		return ErrPartialWrite
	}
	commentedPosts, err := s.repo.Mongo.Post.FindIDs(ctx, bson.M{"comments.username": oldUsername})
	if err != nil {
		log.Errorf("failed to list commented posts for rename: %s", err.Error())
		return ErrPartialWrite
	}
	defer s.cache.invalidatePosts(ctx, append(hexIDs(ownPosts), hexIDs(commentedPosts)...)...)

	if _, err := s.repo.Mongo.Post.SetAuthorName(ctx, userID, newUsername); err != nil {
		log.Errorf("failed to rename post author: %s", err.Error())
		return ErrPartialWrite
	}

	// Comments carry only the author name, so they cannot be told apart while another user keeps it.
	namesakes, err := s.repo.Mongo.User.Count(ctx, bson.M{"username": oldUsername})
	if err != nil {
		log.Errorf("failed to count users named %s: %s", oldUsername, err.Error())
		return ErrPartialWrite
	}
	if namesakes > 0 {
		log.Warnf("%d other users are still named %s, comments keep the old name", namesakes, oldUsername)
		return nil
	}

	if _, err := s.repo.Mongo.Comment.Rename(ctx, oldUsername, newUsername); err != nil {
		log.Errorf("failed to rename comment author: %s", err.Error())
		return ErrPartialWrite
	}

	if _, err := s.repo.Mongo.Post.RenameCommentAuthor(ctx, oldUsername, newUsername); err != nil {
		log.Errorf("failed to rename embedded comment author: %s", err.Error())
		return ErrPartialWrite
	}

	log.Info("username change propagated")
	return nil
}

// UpdatePassword checks the old password against the stored hash before writing the new one.
func (s *userService) UpdatePassword(ctx context.Context, id string, oldPassword string, newPassword string) PasswordStatus {
	uid, err := parseID(id)
	if err != nil {
		return PasswordInvalidUserID
	}

	user, err := s.repo.Mongo.User.FindOneWithPassword(ctx, bson.M{"_id": uid})
	if err != nil {
		if isNoDocuments(err) {
			return PasswordUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id, err.Error())
		return PasswordUpdateFailed
	}

	if !utils.CheckPassword(user.Password, oldPassword) {
		return PasswordWrongOld
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash new password for user(%s): %s", id, err.Error())
		return PasswordUpdateFailed
	}

	matched, err := s.repo.Mongo.User.SetPassword(ctx, uid, hash)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s) password: %s", id, err.Error())
		return PasswordUpdateFailed
	}
	if !matched {
		return PasswordUserNotFound
	}

	return PasswordUpdated
}

// Delete removes, in order, the comments on the user's posts, the posts and the user.
// A failing step stops the cascade; earlier steps are not rolled back.
func (s *userService) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	if _, err := s.repo.Mongo.User.FindOne(ctx, bson.M{"_id": uid}); err != nil {
		if isNoDocuments(err) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id, err.Error())
		return ErrInternal
	}

	log := s.logger.Sugar().With("op", uuid.NewString(), "user_id", id)

	postIDs, err := s.repo.Mongo.Post.FindIDs(ctx, bson.M{"user_id": id})
	if err != nil {
		log.Errorf("failed to list posts: %s", err.Error())
		return ErrInternal
	}

	if err := s.comments.DeleteMany(ctx, dto.CommentFilter{UserID: id}); err != nil {
		log.Errorf("aborting user delete, comment cascade failed: %s", err.Error())
		return err
	}

	deletedPosts, err := s.repo.Mongo.Post.Delete(ctx, bson.M{"user_id": id})
	if err != nil {
		log.Errorf("aborting user delete, post cascade failed: %s", err.Error())
		return ErrInternal
	}
	s.cache.invalidatePosts(ctx, hexIDs(postIDs)...)

	if _, err := s.repo.Mongo.User.Delete(ctx, uid); err != nil {
		log.Errorf("posts deleted but user was not: %s", err.Error())
		return ErrInternal
	}
	s.cache.invalidate(ctx, redisrepo.UserKey(id))

	log.Infof("user deleted with %d posts", deletedPosts)
	return nil
}
