package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

const collectionBookmarks = "bookmarks"

type BookmarkRepository struct {
	col *mongo.Collection
}

var _ ports.BookmarkRepository = (*BookmarkRepository)(nil)

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{col: db.Collection(collectionBookmarks)}
}

type mongoBookmark struct {
	ID        string                `bson:"_id"`
	UserID    string                `bson:"user_id"`
	ManhwaID  string                `bson:"manhwa_id"`
	Chapter   int                   `bson:"chapter"`
	Manhwa    *domain.ManhwaSummary `bson:"manhwa,omitempty"`
	CreatedAt time.Time             `bson:"created_at"`
	UpdatedAt time.Time             `bson:"updated_at"`
}

func (mb *mongoBookmark) toDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:        mb.ID,
		UserID:    mb.UserID,
		ManhwaID:  mb.ManhwaID,
		Chapter:   mb.Chapter,
		Manhwa:    mb.Manhwa,
		CreatedAt: mb.CreatedAt.UTC(),
		UpdatedAt: mb.UpdatedAt.UTC(),
	}
}

// Create inserts a bookmark. A second bookmark of the same manhwa by the same
// user returns ErrAlreadyBookmarked.
func (r *BookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBookmark{
		ID:        b.ID,
		UserID:    b.UserID,
		ManhwaID:  b.ManhwaID,
		Chapter:   b.Chapter,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyBookmarked
		}
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID, titleFilter string) ([]domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.aggregate(ctx, bson.M{"user_id": userID}, titleFilter)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	list := make([]domain.Bookmark, 0, len(docs))
	for i := range docs {
		list = append(list, docs[i].toDomain())
	}
	return list, nil
}

func (r *BookmarkRepository) UpdateChapter(ctx context.Context, userID, id string, chapter int) (*domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "user_id": userID}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"chapter":    chapter,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBookmarkNotFound
	}

	docs, err := r.aggregate(ctx, filter, "")
	if err != nil {
		return nil, fmt.Errorf("reload bookmark: %w", err)
	}
	if len(docs) == 0 {
		// The manhwa was removed between the update and the reload.
		return nil, domain.ErrBookmarkNotFound
	}
	b := docs[0].toDomain()
	return &b, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteMany(ctx, bson.M{"user_id": userID})
}

func (r *BookmarkRepository) DeleteByManhwa(ctx context.Context, manhwaID string) error {
	return r.deleteMany(ctx, bson.M{"manhwa_id": manhwaID})
}

// EnsureIndexes creates the (user_id, manhwa_id) unique index and the
// listing index.
func (r *BookmarkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "manhwa_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "manhwa_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookmarkRepository) deleteMany(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete bookmarks: %w", err)
	}
	return nil
}

// aggregate joins bookmarks matching match with their manhwa, newest first.
func (r *BookmarkRepository) aggregate(ctx context.Context, match bson.M, titleFilter string) ([]mongoBookmark, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionManhwa,
			"localField":   "manhwa_id",
			"foreignField": "_id",
			"as":           "manhwa",
		}}},
		{{Key: "$unwind", Value: "$manhwa"}},
	}
	if titleFilter != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"manhwa.title": primitive.Regex{Pattern: regexp.QuoteMeta(titleFilter), Options: "i"},
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"user_id":            1,
			"manhwa_id":          1,
			"chapter":            1,
			"created_at":         1,
			"updated_at":         1,
			"manhwa._id":         1,
			"manhwa.title":       1,
			"manhwa.cover_image": 1,
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var docs []mongoBookmark
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
