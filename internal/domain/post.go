package domain

import "time"

// Post is immutable once published. AuthorName and AuthorAvatar are a
// snapshot taken at creation time; they are advisory only and get
// overwritten at read time whenever AuthorEmail still resolves to a
// user (see service.Feed).
type Post struct {
	Id           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Title        string    `json:"title"`
	Desc         string    `json:"desc"`
	Category     string    `json:"category"`
	Images       []string  `json:"images"`
	AuthorEmail  string    `json:"authorEmail"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
}
