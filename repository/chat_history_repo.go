package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tieubaoca/docstudy-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ChatHistoryRepo interface {
	// GetOrCreate is idempotent: it returns the existing history for the
	// (user, document) pair or creates an empty one.
	GetOrCreate(ctx context.Context, userID, documentID string) (*types.ChatHistory, error)
	// AppendTurn appends the user and assistant messages of one chat
	// turn together, so no partial turn is ever visible.
	AppendTurn(ctx context.Context, userID, documentID string, userMsg, assistantMsg types.Message) error
	// GetMessages returns the ordered message log, empty when no history
	// exists yet.
	GetMessages(ctx context.Context, userID, documentID string) ([]types.Message, error)
}

type chatHistoryRepo struct {
	collection *mongo.Collection
}

func NewChatHistoryRepo(db *mongo.Database) ChatHistoryRepo {
	collection := db.Collection("chat_histories")
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "document_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating chat history indexes: %v", err)
	}

	return &chatHistoryRepo{
		collection: collection,
	}
}

func (r *chatHistoryRepo) GetOrCreate(ctx context.Context, userID, documentID string) (*types.ChatHistory, error) {
	now := time.Now().Unix()
	var history types.ChatHistory
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "document_id": documentID},
		bson.M{"$setOnInsert": bson.M{
			"messages":   []types.Message{},
			"created_at": now,
			"updated_at": now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&history)
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *chatHistoryRepo) AppendTurn(ctx context.Context, userID, documentID string, userMsg, assistantMsg types.Message) error {
	now := time.Now().Unix()
	// Both messages go in one update so a turn is all-or-nothing.
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "document_id": documentID},
		bson.M{
			"$push": bson.M{
				"messages": bson.M{"$each": []types.Message{userMsg, assistantMsg}},
			},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *chatHistoryRepo) GetMessages(ctx context.Context, userID, documentID string) ([]types.Message, error) {
	var history types.ChatHistory
	err := r.collection.FindOne(ctx,
		bson.M{"user_id": userID, "document_id": documentID},
	).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []types.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	if history.Messages == nil {
		return []types.Message{}, nil
	}
	return history.Messages, nil
}
