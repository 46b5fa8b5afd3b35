package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tieubaoca/docstudy-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type DocumentRepo interface {
	CreateDocument(ctx context.Context, doc *types.Document) error
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	// SetChunks persists the chunk sequence and flips the document from
	// processing to ready. It fails with types.ErrChunksExist when the
	// document already left the processing state.
	SetChunks(ctx context.Context, id string, chunks []types.Chunk) error
	GetChunks(ctx context.Context, id string) ([]types.Chunk, error)
}

type documentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(collection *mongo.Collection) DocumentRepo {
	return &documentRepo{
		collection: collection,
	}
}

func (r *documentRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	doc.Status = types.DOCUMENT_STATUS_PROCESSING
	doc.CreatedAt = time.Now().Unix()
	doc.UpdatedAt = doc.CreatedAt
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *documentRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) SetChunks(ctx context.Context, id string, chunks []types.Chunk) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": types.DOCUMENT_STATUS_PROCESSING},
		bson.M{"$set": bson.M{
			"chunks":     chunks,
			"status":     types.DOCUMENT_STATUS_READY,
			"updated_at": time.Now().Unix(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the document is missing or chunks were built already.
		if _, err := r.GetDocument(ctx, id); err != nil {
			return err
		}
		return types.ErrChunksExist
	}
	return nil
}

func (r *documentRepo) GetChunks(ctx context.Context, id string) ([]types.Chunk, error) {
	doc, err := r.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Chunks, nil
}
