package store

import (
	"context"

	"github.com/contra19/book-search/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, user, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// PushSavedBook appends book to the user's savedBooks list and returns the
// updated document. The $push is atomic on the user document; that is the
// only concurrency guarantee saves rely on. Duplicate bookIds are allowed.
func (db *DB) PushSavedBook(ctx context.Context, id primitive.ObjectID, book models.SavedBook) (*models.User, error) {
	var u models.User
	err := db.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"savedBooks": book}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PullSavedBook removes every saved book matching bookID and returns the
// updated document. Pulling an id that is not in the list is not an error;
// the document comes back unchanged.
func (db *DB) PullSavedBook(ctx context.Context, id primitive.ObjectID, bookID string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
