package mongodb

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	USERS_COLLECTION    = "users"
	POSTS_COLLECTION    = "posts"
	COMMENTS_COLLECTION = "comments"
)

var withoutPassword = bson.M{"password": 0}

type User interface {
	Create(ctx context.Context, user model.User) (primitive.ObjectID, error)
	FindOne(ctx context.Context, filter bson.M) (*model.User, error)
	FindOneWithPassword(ctx context.Context, filter bson.M) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (primitive.ObjectID, error)
	FindOne(ctx context.Context, filter bson.M) (*model.Post, error)
	Find(ctx context.Context, filter bson.M, sort bson.D, limit int, offset int) ([]*model.Post, error)
	FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
	Update(ctx context.Context, filter bson.M, fields bson.M) (*model.Post, error)
	SetAuthorName(ctx context.Context, userID string, username string) (int64, error)
	AddLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error)
	PushComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) (bool, error)
	PullComment(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID) (bool, error)
	SetCommentBody(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID, body string) error
	RenameCommentAuthor(ctx context.Context, oldUsername string, newUsername string) (int64, error)
	ClearComments(ctx context.Context, postIDs []primitive.ObjectID) error
	ResetDerived(ctx context.Context, postID primitive.ObjectID, comments []model.Comment) (bool, error)
	Delete(ctx context.Context, filter bson.M) (int64, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (primitive.ObjectID, error)
	FindOne(ctx context.Context, filter bson.M) (*model.Comment, error)
	FindByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error)
	Update(ctx context.Context, filter bson.M, body string) (*model.Comment, error)
	Rename(ctx context.Context, oldUsername string, newUsername string) (int64, error)
	Delete(ctx context.Context, filter bson.M) (int64, error)
	DeleteByPosts(ctx context.Context, postIDs []primitive.ObjectID) (int64, error)
}

type MongoRepository struct {
	User
	Post
	Comment
	db *mongo.Database
}

func New(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		User:    newUserRepo(db.Collection(USERS_COLLECTION)),
		Post:    newPostRepo(db.Collection(POSTS_COLLECTION)),
		Comment: newCommentRepo(db.Collection(COMMENTS_COLLECTION)),
		db:      db,
	}
}

// Drop removes every collection. Only the test-mode ClearDB path calls it.
func (r *MongoRepository) Drop(ctx context.Context) error {
	for _, name := range []string{USERS_COLLECTION, POSTS_COLLECTION, COMMENTS_COLLECTION} {
		if err := r.db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}

	return nil
}
