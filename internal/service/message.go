package service

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/identity"
)

type MessageService interface {
	History(me, peer string) ([]domain.Message, error)
	Send(me, to, text string, images []string) (domain.Message, error)
	Threads(me string) ([]domain.ThreadSummary, error)
}

type MessageStorage interface {
	LoadMessages() []domain.Message
	UpdateMessages(fn func([]domain.Message) ([]domain.Message, error)) error
}

type Messages struct {
	storage MessageStorage
}

func NewMessages(storage MessageStorage) *Messages {
	return &Messages{storage: storage}
}

// History returns the conversation between me and peer, both
// directions, oldest first. A conversation reads chronologically,
// unlike comment listings.
func (s *Messages) History(me, peer string) ([]domain.Message, error) {
	meKey := identity.Normalize(me)
	if meKey == "" {
		return nil, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	peerKey := identity.Normalize(peer)
	if peerKey == "" {
		return nil, &errors.ErrorWithStatusCode{Message: "Peer is required", StatusCode: http.StatusBadRequest}
	}

	out := []domain.Message{}
	for _, m := range s.storage.LoadMessages() {
		from, to := identity.Normalize(m.From), identity.Normalize(m.To)
		if (from == meKey && to == peerKey) || (from == peerKey && to == meKey) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

// Send appends one message to the log. Text may be empty when at least
// one image is attached; an empty message with no images is rejected.
func (s *Messages) Send(me, to, text string, images []string) (domain.Message, error) {
	meKey := identity.Normalize(me)
	if meKey == "" {
		return domain.Message{}, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	toKey := identity.Normalize(to)
	text = strings.TrimSpace(text)
	if toKey == "" || (text == "" && len(images) == 0) {
		return domain.Message{}, &errors.ErrorWithStatusCode{Message: "Recipient and text or images are required", StatusCode: http.StatusBadRequest}
	}
	if images == nil {
		images = []string{}
	}

	msg := domain.Message{
		Id:     uuid.NewString(),
		From:   meKey,
		To:     toKey,
		Text:   text,
		Images: images,
		Time:   time.Now().UTC(),
	}

	err := s.storage.UpdateMessages(func(messages []domain.Message) ([]domain.Message, error) {
		// append-only, chronological storage order
		return append(messages, msg), nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// Threads reduces the flat log into one latest-message summary per
// conversation partner, most recently active first. One streaming pass
// over the full log; fine while the log stays small.
func (s *Messages) Threads(me string) ([]domain.ThreadSummary, error) {
	meKey := identity.Normalize(me)
	if meKey == "" {
		return nil, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}

	latest := map[identity.Key]domain.ThreadSummary{}
	order := []identity.Key{}
	for _, m := range s.storage.LoadMessages() {
		from, to := identity.Normalize(m.From), identity.Normalize(m.To)

		var peer identity.Key
		switch meKey {
		case from:
			peer = to
		case to:
			peer = from
		default:
			continue
		}

		kept, seen := latest[peer]
		if !seen {
			order = append(order, peer)
		}
		// strict greater-than: on equal timestamps the first one wins
		if !seen || m.Time.After(kept.Time) {
			latest[peer] = domain.ThreadSummary{Peer: peer, Last: m.Text, Time: m.Time}
		}
	}

	out := make([]domain.ThreadSummary, 0, len(order))
	for _, peer := range order {
		out = append(out, latest[peer])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out, nil
}
