package service

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/config"
	"github.com/BloggingApp/journal-service/internal/dto"
	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository"
	"go.uber.org/zap"
)

const MAX_LIMIT = 50

func maxLimit(limit *int) {
	if *limit <= 0 || *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

type User interface {
	Create(ctx context.Context, input dto.CreateUserDto) (string, error)
	Find(ctx context.Context, filter map[string]interface{}) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Authenticate(ctx context.Context, email string, password string) (*model.User, error)
	UpdateInfo(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	UpdatePassword(ctx context.Context, id string, oldPassword string, newPassword string) PasswordStatus
	Delete(ctx context.Context, id string) error
}

type Post interface {
	Create(ctx context.Context, userID string, input dto.CreatePostDto) (string, error)
	Find(ctx context.Context, filter map[string]interface{}) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindUserPosts(ctx context.Context, userID string) ([]*model.Post, error)
	FindPublic(ctx context.Context, limit int, offset int) ([]*model.Post, error)
	Update(ctx context.Context, postID string, userID string, fields map[string]interface{}) (*model.Post, error)
	Like(ctx context.Context, userID string, postID string) (bool, error)
	Unlike(ctx context.Context, userID string, postID string) (bool, error)
	Delete(ctx context.Context, postID string, userID string) error
}

type Comment interface {
	Create(ctx context.Context, postID string, input dto.CreateCommentDto) (string, error)
	Find(ctx context.Context, commentID string, username string) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID string) ([]*model.Comment, error)
	Update(ctx context.Context, commentID string, username string, body string) (*model.Comment, error)
	Delete(ctx context.Context, commentID string, username string, postID string) error
	DeleteMany(ctx context.Context, filter dto.CommentFilter) error
}

type Consistency interface {
	Check(ctx context.Context) ([]*model.PostDrift, error)
	Reconcile(ctx context.Context, postID string) error
}

type Service struct {
	User
	Post
	Comment
	Consistency
	logger   *zap.Logger
	repo     *repository.Repository
	dbConfig config.DBConfig
}

func New(logger *zap.Logger, repo *repository.Repository, dbConfig config.DBConfig) *Service {
	comments := newCommentService(logger, repo)
	return &Service{
		User:        newUserService(logger, repo, comments),
		Post:        newPostService(logger, repo, comments),
		Comment:     comments,
		Consistency: newConsistencyService(logger, repo),
		logger:      logger,
		repo:        repo,
		dbConfig:    dbConfig,
	}
}

// ClearDB drops the users, posts and comments collections. It refuses to run outside TEST mode.
func (s *Service) ClearDB(ctx context.Context) error {
	if !s.dbConfig.IsTest() {
		return ErrNotTestMode
	}

	if err := s.repo.Mongo.Drop(ctx); err != nil {
		s.logger.Sugar().Errorf("failed to drop database(%s): %s", s.dbConfig.DatabaseName(), err.Error())
		return ErrInternal
	}

	s.logger.Sugar().Warnf("database(%s) cleared", s.dbConfig.DatabaseName())
	return nil
}
