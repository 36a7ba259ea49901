package service

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/identity"
)

// fallbackCommenterName is shown when neither a user record nor a
// legacy cached name exists for a comment's author.
const fallbackCommenterName = "user"

type CommentService interface {
	List(postId string, offset, limit int) (domain.CommentPage, error)
	Create(postId, requester, content string) (domain.CommentView, error)
	Delete(postId, commentId, requester string) error
}

type CommentStorage interface {
	LoadComments() []domain.Comment
	UpdateComments(fn func([]domain.Comment) ([]domain.Comment, error)) error
}

type Comments struct {
	storage  CommentStorage
	posts    PostStorage
	users    Directory
	sanitize *bluemonday.Policy
}

func NewComments(storage CommentStorage, posts PostStorage, users Directory) *Comments {
	return &Comments{storage: storage, posts: posts, users: users, sanitize: bluemonday.StrictPolicy()}
}

func (s *Comments) findPost(postId string) (domain.Post, bool) {
	for _, p := range s.posts.LoadPosts() {
		if p.Id == postId {
			return p, true
		}
	}
	return domain.Post{}, false
}

// view joins a comment with its author's current identity. Same
// freshness rule as the feed, with a legacy-cached-name fallback and a
// final literal placeholder.
func (s *Comments) view(c domain.Comment) domain.CommentView {
	var u domain.User
	if found, err := s.users.ByIdentity(c.UserEmail); err == nil {
		u = found
	}

	name := u.Nickname
	if name == "" {
		name = u.Email
	}
	if name == "" {
		name = c.UserName
	}
	if name == "" {
		name = fallbackCommenterName
	}

	avatar := u.AvatarPath
	if avatar == "" {
		avatar = c.UserAvatar
	}

	email := u.Email
	if email == "" {
		email = c.UserEmail
	}

	return domain.CommentView{
		Comment: c,
		User:    domain.CommentUser{Name: name, Avatar: avatar, Email: email},
	}
}

// List pages through a post's comments newest-first. Total counts all
// matches before the offset/limit slice is applied.
func (s *Comments) List(postId string, offset, limit int) (domain.CommentPage, error) {
	matches := []domain.Comment{}
	for _, c := range s.storage.LoadComments() {
		if c.PostId == postId {
			matches = append(matches, c)
		}
	}
	total := len(matches)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]domain.CommentView, 0, end-offset)
	for _, c := range matches[offset:end] {
		items = append(items, s.view(c))
	}
	return domain.CommentPage{Items: items, Total: total}, nil
}

func (s *Comments) Create(postId, requester, content string) (domain.CommentView, error) {
	key := identity.Normalize(requester)
	if key == "" {
		return domain.CommentView{}, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	if _, ok := s.findPost(postId); !ok {
		return domain.CommentView{}, &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}

	content = strings.TrimSpace(s.sanitize.Sanitize(content))
	if content == "" {
		return domain.CommentView{}, &errors.ErrorWithStatusCode{Message: "Content is required", StatusCode: http.StatusBadRequest}
	}

	comment := domain.Comment{
		Id:        uuid.NewString(),
		PostId:    postId,
		UserEmail: key,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.UpdateComments(func(comments []domain.Comment) ([]domain.Comment, error) {
		return append([]domain.Comment{comment}, comments...), nil
	})
	if err != nil {
		return domain.CommentView{}, err
	}
	return s.view(comment), nil
}

// Delete removes a comment outright. Allowed for the comment's author
// and for the parent post's author, nobody else.
func (s *Comments) Delete(postId, commentId, requester string) error {
	key := identity.Normalize(requester)
	if key == "" {
		return &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	post, ok := s.findPost(postId)
	if !ok {
		return &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}

	return s.storage.UpdateComments(func(comments []domain.Comment) ([]domain.Comment, error) {
		for i, c := range comments {
			if c.Id != commentId || c.PostId != postId {
				continue
			}
			isCommentOwner := identity.Normalize(c.UserEmail) == key
			isPostAuthor := identity.Normalize(post.AuthorEmail) == key
			if !isCommentOwner && !isPostAuthor {
				return nil, &errors.ErrorWithStatusCode{Message: "No permission to delete", StatusCode: http.StatusForbidden}
			}
			return append(comments[:i], comments[i+1:]...), nil
		}
		return nil, &errors.ErrorWithStatusCode{Message: "Comment not found", StatusCode: http.StatusNotFound}
	})
}
