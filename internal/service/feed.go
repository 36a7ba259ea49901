package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/identity"
)

const defaultCategory = "life"

type FeedService interface {
	List(category string) ([]domain.Post, error)
	Get(id string) (domain.Post, error)
	Create(data PostCreationData) (domain.Post, error)
}

type PostCreationData struct {
	Title    string
	Desc     string
	Category string
	Images   []string

	// AuthorEmail comes from the session when present. The fallback
	// fields are honored only when the session is absent, matching the
	// legacy client that posts its own author block.
	AuthorEmail    string
	FallbackName   string
	FallbackAvatar string
}

type PostStorage interface {
	LoadPosts() []domain.Post
	UpdatePosts(fn func([]domain.Post) ([]domain.Post, error)) error
}

type Feed struct {
	storage  PostStorage
	users    Directory
	sanitize *bluemonday.Policy
}

func NewFeed(storage PostStorage, users Directory) *Feed {
	return &Feed{storage: storage, users: users, sanitize: bluemonday.StrictPolicy()}
}

// enrich overlays the author's current nickname and avatar onto the
// stored post. Freshness over staleness: whenever the author key still
// resolves, the creation-time snapshot is unconditionally overwritten.
// Posts whose author is empty or unresolvable pass through untouched.
func enrich(p domain.Post, index map[identity.Key]domain.User) domain.Post {
	key := identity.Normalize(p.AuthorEmail)
	if key == "" {
		return p
	}
	u, ok := index[key]
	if !ok {
		return p
	}
	name := u.Nickname
	if name == "" {
		name = u.Email
	}
	p.AuthorName = name
	p.AuthorAvatar = u.AvatarPath
	return p
}

// List returns enriched posts, newest first (storage order), filtered
// by category after enrichment. Empty category means all.
func (s *Feed) List(category string) ([]domain.Post, error) {
	category = strings.TrimSpace(category)
	index := s.users.Index()

	out := []domain.Post{}
	for _, p := range s.storage.LoadPosts() {
		p = enrich(p, index)
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Feed) Get(id string) (domain.Post, error) {
	for _, p := range s.storage.LoadPosts() {
		if p.Id == id {
			return enrich(p, s.users.Index()), nil
		}
	}
	return domain.Post{}, &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
}

// Create publishes a post, stamping the author snapshot from the
// current user record. The snapshot is advisory: reads re-derive it.
func (s *Feed) Create(data PostCreationData) (domain.Post, error) {
	category := strings.TrimSpace(data.Category)
	if category == "" {
		category = defaultCategory
	}
	images := data.Images
	if images == nil {
		images = []string{}
	}

	authorEmail := identity.Normalize(data.AuthorEmail)
	var authorName, authorAvatar string
	if authorEmail != "" {
		if u, err := s.users.ByIdentity(authorEmail); err == nil {
			authorName = u.Nickname
			if authorName == "" {
				authorName = u.Email
			}
			authorAvatar = u.AvatarPath
		}
	}
	if authorName == "" {
		authorName = strings.TrimSpace(data.FallbackName)
	}
	if authorAvatar == "" {
		authorAvatar = strings.TrimSpace(data.FallbackAvatar)
	}

	post := domain.Post{
		Id:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Title:        s.sanitize.Sanitize(data.Title),
		Desc:         s.sanitize.Sanitize(data.Desc),
		Category:     category,
		Images:       images,
		AuthorEmail:  authorEmail,
		AuthorName:   authorName,
		AuthorAvatar: authorAvatar,
	}

	err := s.storage.UpdatePosts(func(posts []domain.Post) ([]domain.Post, error) {
		// newest first in storage order
		return append([]domain.Post{post}, posts...), nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}
