package domain

import "time"

// Comment belongs to a post via PostId (string-compared). UserName and
// UserAvatar are legacy cached fields kept for old records; current
// identity is joined at read time.
type Comment struct {
	Id         string    `json:"id"`
	PostId     string    `json:"postId"`
	UserEmail  string    `json:"userEmail"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UserName   string    `json:"userName,omitempty"`
	UserAvatar string    `json:"userAvatar,omitempty"`
}

// CommentUser is the commenter's current identity embedded in listings.
type CommentUser struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// CommentView is a comment joined with its author's current identity.
// Never persisted.
type CommentView struct {
	Comment
	User CommentUser `json:"user"`
}

// CommentPage is one page of a post's comments. Total counts all
// matches before pagination.
type CommentPage struct {
	Items []CommentView `json:"items"`
	Total int           `json:"total"`
}
