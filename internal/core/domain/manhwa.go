package domain

import "time"

// Manhwa is a catalog entry.
type Manhwa struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"desc,omitempty" bson:"desc,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty" bson:"cover_image,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// ManhwaUpdate holds the optional fields of a catalog edit.
type ManhwaUpdate struct {
	Title       *string
	Description *string
	CoverImage  *string
}

// ManhwaSummary is the part of a catalog entry embedded in bookmark listings.
type ManhwaSummary struct {
	ID         string `json:"id" bson:"_id"`
	Title      string `json:"title" bson:"title"`
	CoverImage string `json:"coverImage,omitempty" bson:"cover_image,omitempty"`
}
