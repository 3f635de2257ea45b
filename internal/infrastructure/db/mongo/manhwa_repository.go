package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

const collectionManhwa = "manhwa"

type ManhwaRepository struct {
	col *mongo.Collection
}

var _ ports.ManhwaRepository = (*ManhwaRepository)(nil)

func NewManhwaRepository(db *mongo.Database) *ManhwaRepository {
	return &ManhwaRepository{col: db.Collection(collectionManhwa)}
}

// Create inserts a new catalog entry. A title clash returns ErrManhwaExists.
func (r *ManhwaRepository) Create(ctx context.Context, m *domain.Manhwa) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrManhwaExists
		}
		return fmt.Errorf("insert manhwa: %w", err)
	}
	return nil
}

func (r *ManhwaRepository) FindByID(ctx context.Context, id string) (*domain.Manhwa, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ManhwaRepository) FindByTitle(ctx context.Context, title string) (*domain.Manhwa, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *ManhwaRepository) List(ctx context.Context) ([]domain.Manhwa, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list manhwa: %w", err)
	}

	list := make([]domain.Manhwa, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode manhwa: %w", err)
	}
	return list, nil
}

func (r *ManhwaRepository) Update(ctx context.Context, id string, upd domain.ManhwaUpdate) (*domain.Manhwa, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["desc"] = *upd.Description
	}
	if upd.CoverImage != nil {
		set["cover_image"] = *upd.CoverImage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m domain.Manhwa
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrManhwaNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrManhwaExists
		}
		return nil, fmt.Errorf("update manhwa: %w", err)
	}
	return &m, nil
}

func (r *ManhwaRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete manhwa: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrManhwaNotFound
	}
	return nil
}

// EnsureIndexes creates the unique title index.
func (r *ManhwaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ManhwaRepository) findOne(ctx context.Context, filter bson.M) (*domain.Manhwa, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Manhwa
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrManhwaNotFound
		}
		return nil, fmt.Errorf("find manhwa: %w", err)
	}
	return &m, nil
}
