package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
)

func newCommentRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/posts/{id}/comments", h.GetComments).Methods("GET")
	router.HandleFunc("/api/posts/{id}/comments", h.CreateComment).Methods("POST")
	router.HandleFunc("/api/posts/{id}/comments/{cid}", h.DeleteComment).Methods("DELETE")
	return router
}

func TestGetCommentsHandler(t *testing.T) {
	h := newTestHandler(t)
	router := newCommentRouter(h)

	t.Run("defaults when paging is absent", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockList: func(postId string, offset, limit int) (domain.CommentPage, error) {
				assert.Equal(t, "p1", postId)
				assert.Equal(t, 0, offset)
				assert.Equal(t, 10, limit)
				return domain.CommentPage{Items: []domain.CommentView{}, Total: 0}, nil
			},
		}

		req := createRequest(t, http.MethodGet, "/api/posts/p1/comments", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total":0`)
	})

	t.Run("explicit paging is passed through", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockList: func(postId string, offset, limit int) (domain.CommentPage, error) {
				assert.Equal(t, 5, offset)
				assert.Equal(t, 3, limit)
				return domain.CommentPage{}, nil
			},
		}

		req := createRequest(t, http.MethodGet, "/api/posts/p1/comments?offset=5&limit=3", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("malformed paging falls back to defaults", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockList: func(postId string, offset, limit int) (domain.CommentPage, error) {
				assert.Equal(t, 0, offset)
				assert.Equal(t, 10, limit)
				return domain.CommentPage{}, nil
			},
		}

		req := createRequest(t, http.MethodGet, "/api/posts/p1/comments?offset=abc&limit=xyz", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestCreateCommentHandler(t *testing.T) {
	h := newTestHandler(t)
	router := newCommentRouter(h)
	route := "/api/posts/p1/comments"

	t.Run("successful request", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockCreate: func(postId, requester, content string) (domain.CommentView, error) {
				assert.Equal(t, "p1", postId)
				assert.Equal(t, "bob@mail.com", requester)
				assert.Equal(t, "nice one", content)
				return domain.CommentView{
					Comment: domain.Comment{Id: "c1", PostId: postId, Content: content},
					User:    domain.CommentUser{Name: "bob", Email: requester},
				}, nil
			},
		}

		req := withIdentity(createRequest(t, http.MethodPost, route, []byte(`{"content": "nice one"}`)), "bob@mail.com")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"bob"`)
	})

	t.Run("missing content", func(t *testing.T) {
		req := withIdentity(createRequest(t, http.MethodPost, route, []byte(`{}`)), "bob@mail.com")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockCreate: func(postId, requester, content string) (domain.CommentView, error) {
				return domain.CommentView{}, &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
			},
		}

		req := withIdentity(createRequest(t, http.MethodPost, route, []byte(`{"content": "hi"}`)), "bob@mail.com")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteCommentHandler(t *testing.T) {
	h := newTestHandler(t)
	router := newCommentRouter(h)
	route := "/api/posts/p1/comments/c1"

	t.Run("successful request", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockDelete: func(postId, commentId, requester string) error {
				assert.Equal(t, "p1", postId)
				assert.Equal(t, "c1", commentId)
				assert.Equal(t, "bob@mail.com", requester)
				return nil
			},
		}

		req := withIdentity(createRequest(t, http.MethodDelete, route, nil), "bob@mail.com")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"msg":"Deleted"`)
	})

	t.Run("no permission", func(t *testing.T) {
		h.comments = &MockCommentService{
			MockDelete: func(postId, commentId, requester string) error {
				return &errors.ErrorWithStatusCode{Message: "No permission to delete", StatusCode: http.StatusForbidden}
			},
		}

		req := withIdentity(createRequest(t, http.MethodDelete, route, nil), "mallory@mail.com")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
