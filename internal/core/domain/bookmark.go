package domain

import "time"

// Bookmark tracks the chapter a user has reached on a manhwa.
type Bookmark struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	ManhwaID  string         `json:"manhwaId"`
	Chapter   int            `json:"chapter"`
	Manhwa    *ManhwaSummary `json:"manhwa,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
