package mongodb

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentRepo struct {
	coll *mongo.Collection
}

func newCommentRepo(coll *mongo.Collection) Comment {
	return &commentRepo{
		coll: coll,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (primitive.ObjectID, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return primitive.NilObjectID, err
	}

	return comment.ID, nil
}

func (r *commentRepo) FindOne(ctx context.Context, filter bson.M) (*model.Comment, error) {
	var comment model.Comment
	if err := r.coll.FindOne(ctx, filter).Decode(&comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindByPost returns the post's comments oldest first. Ties on date_posted fall back to insertion order.
func (r *commentRepo) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_posted", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}

	comments := []*model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, filter bson.M, body string) (*model.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment model.Comment
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"body": body}}, opts).Decode(&comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) Rename(ctx context.Context, oldUsername string, newUsername string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"username": oldUsername}, bson.M{"$set": bson.M{"username": newUsername}})
	if err != nil {
		return 0, err
	}

	return res.ModifiedCount, nil
}

func (r *commentRepo) Delete(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (r *commentRepo) DeleteByPosts(ctx context.Context, postIDs []primitive.ObjectID) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"post_id": bson.M{"$in": postIDs}})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}
