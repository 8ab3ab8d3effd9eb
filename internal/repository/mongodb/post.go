package mongodb

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRepo struct {
	coll *mongo.Collection
}

func newPostRepo(coll *mongo.Collection) Post {
	return &postRepo{
		coll: coll,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (primitive.ObjectID, error) {
	// $addToSet and $pull fail on a null field, so the sets start empty.
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	post.NumberOfLikes = int64(len(post.Likes))
	post.NumberOfComments = int64(len(post.Comments))

	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *postRepo) FindOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	var post model.Post
	if err := r.coll.FindOne(ctx, filter).Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Find(ctx context.Context, filter bson.M, sort bson.D, limit int, offset int) ([]*model.Post, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	return ids, nil
}

func (r *postRepo) Update(ctx context.Context, filter bson.M, fields bson.M) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post model.Post
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) SetAuthorName(ctx context.Context, userID string, username string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"username": username}})
	if err != nil {
		return 0, err
	}

	return res.MatchedCount, nil
}

// AddLike reports whether the like was recorded. The membership test and the counter
// increment run as one document update, so repeated likes never double count.
func (r *postRepo) AddLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"likes": userID},
			"$inc":      bson.M{"number_of_likes": 1},
		},
	)
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

func (r *postRepo) RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$inc":  bson.M{"number_of_likes": -1},
		},
	)
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

func (r *postRepo) PushComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) (bool, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": postID},
		bson.M{
			"$addToSet": bson.M{"comments": comment},
			"$inc":      bson.M{"number_of_comments": 1},
		},
	)
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

// PullComment decrements the counter only when the embedded copy was present.
func (r *postRepo) PullComment(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentID}},
			"$inc":  bson.M{"number_of_comments": -1},
		},
	)
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

func (r *postRepo) SetCommentBody(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID, body string) error {
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$set": bson.M{"comments.$.body": body}},
	)
	return err
}

func (r *postRepo) RenameCommentAuthor(ctx context.Context, oldUsername string, newUsername string) (int64, error) {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"c.username": oldUsername}},
	})

	res, err := r.coll.UpdateMany(
		ctx,
		bson.M{"comments.username": oldUsername},
		bson.M{"$set": bson.M{"comments.$[c].username": newUsername}},
		opts,
	)
	if err != nil {
		return 0, err
	}

	return res.ModifiedCount, nil
}

func (r *postRepo) ClearComments(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}

	_, err := r.coll.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": postIDs}},
		bson.M{"$set": bson.M{"comments": []model.Comment{}, "number_of_comments": 0}},
	)
	return err
}

// ResetDerived rebuilds the counters from the likes set and replaces the embedded comments.
func (r *postRepo) ResetDerived(ctx context.Context, postID primitive.ObjectID, comments []model.Comment) (bool, error) {
	if comments == nil {
		comments = []model.Comment{}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
			{Key: "number_of_likes", Value: bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}}},
			{Key: "comments", Value: bson.M{"$literal": comments}},
			{Key: "number_of_comments", Value: len(comments)},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": postID}, pipeline)
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

func (r *postRepo) Delete(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}
