package httpapi

// Тесты HTTP-клиента forum-backend'а поверх httptest-сервера.
//
//  Проверяем маршруты и query-параметры, разбор конверта ApiResponseDTO,
//  маппинг машинных кодов ошибок в сентинели storage и нормализацию сетевых
//  и не-JSON ответов в ErrUnavailable.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-forum-comments/internal/config"
	"github.com/pribylovaa/go-forum-comments/internal/storage"
)

// newTestClient — клиент, направленный на httptest-сервер.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		API: config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
	})
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, env apiEnvelope) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func TestClient_CommentsTree_OK(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/comments/tree", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("postId"))
		require.Equal(t, "42", r.URL.Query().Get("userId"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		data, _ := json.Marshal([]map[string]any{
			{
				"id": 1, "post_id": 1, "author_id": 7,
				"parent_id": nil, "level": 1, "content": "root",
				"likes_count": 2, "is_liked": true,
				"author_name": "Alice", "author_avatar": "a.png",
				"created_at": created,
			},
			{
				"id": 2, "post_id": 1, "author_id": 8,
				"parent_id": 1, "level": 2, "content": "reply",
				"mention_user_id": 7,
			},
		})
		writeEnvelope(t, w, apiEnvelope{Success: true, Data: data})
	})

	rows, err := client.CommentsTree(context.Background(), 1, 42)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.EqualValues(t, 1, rows[0].ID)
	require.EqualValues(t, 0, rows[0].ParentID, "JSON null -> нулевой ParentID")
	require.True(t, rows[0].IsLiked)
	require.Equal(t, "Alice", rows[0].AuthorName)
	require.Equal(t, created, rows[0].CreatedAt)

	require.EqualValues(t, 1, rows[1].ParentID)
	require.EqualValues(t, 7, rows[1].MentionUserID)
}

func TestClient_CommentsTree_AnonymousOmitsUserID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("userId"))
		writeEnvelope(t, w, apiEnvelope{Success: true, Data: json.RawMessage(`[]`)})
	})

	rows, err := client.CommentsTree(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestClient_CreateComment_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/comments", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 1, body["postId"])
		require.EqualValues(t, 42, body["authorId"])
		require.EqualValues(t, 5, body["parentId"])
		require.Equal(t, "Đồng ý", body["content"])
		require.EqualValues(t, 7, body["mentionUserId"])

		data, _ := json.Marshal(map[string]any{
			"id": 20, "post_id": 1, "author_id": 42,
			"parent_id": 5, "level": 3, "content": "Đồng ý",
			"mention_user_id": 7,
		})
		writeEnvelope(t, w, apiEnvelope{Success: true, Data: data})
	})

	row, err := client.CreateComment(context.Background(), storage.CreateCommentInput{
		PostID: 1, AuthorID: 42, ParentID: 5,
		Content: "Đồng ý", MentionUserID: 7,
	})
	require.NoError(t, err)
	require.EqualValues(t, 20, row.ID)
	require.EqualValues(t, 5, row.ParentID)
	require.EqualValues(t, 7, row.MentionUserID)
}

// Корневой комментарий: parentId и mentionUserId уходят как JSON null.
func TestClient_CreateComment_RootNulls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Nil(t, body["parentId"])
		require.Nil(t, body["mentionUserId"])

		data, _ := json.Marshal(map[string]any{
			"id": 10, "post_id": 1, "author_id": 42, "level": 1, "content": "root",
		})
		writeEnvelope(t, w, apiEnvelope{Success: true, Data: data})
	})

	row, err := client.CreateComment(context.Background(), storage.CreateCommentInput{
		PostID: 1, AuthorID: 42, Content: "root",
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, row.ParentID)
	require.EqualValues(t, 0, row.MentionUserID)
}

func TestClient_UpdateAndDelete_Routes(t *testing.T) {
	var gotMethod, gotPath, gotAuthor string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAuthor = r.URL.Query().Get("authorId")
		writeEnvelope(t, w, apiEnvelope{Success: true})
	})

	require.NoError(t, client.UpdateComment(context.Background(), 5, 42, "edited", 0))
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/api/comments/5", gotPath)
	require.Equal(t, "42", gotAuthor)

	require.NoError(t, client.DeleteComment(context.Background(), 5, 42))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/comments/5", gotPath)
	require.Equal(t, "42", gotAuthor)
}

func TestClient_LikeUnlike_Routes(t *testing.T) {
	var gotPath, gotLiker string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotLiker = r.URL.Query().Get("likerId")
		writeEnvelope(t, w, apiEnvelope{Success: true})
	})

	require.NoError(t, client.LikeComment(context.Background(), 5, 42))
	require.Equal(t, "/api/comments/5/like", gotPath)
	require.Equal(t, "42", gotLiker)

	require.NoError(t, client.UnlikeComment(context.Background(), 5, 42))
	require.Equal(t, "/api/comments/5/unlike", gotPath)
	require.Equal(t, "42", gotLiker)
}

func TestClient_ErrorCodeMapping(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"POST_NOT_FOUND", storage.ErrPostNotFound},
		{"USER_NOT_FOUND", storage.ErrUserNotFound},
		{"COMMENT_NOT_FOUND", storage.ErrNotFound},
		{"PARENT_NOT_FOUND", storage.ErrNotFound},
		{"FORBIDDEN", storage.ErrForbidden},
		{"NOT_AUTHOR", storage.ErrForbidden},
		{"COMMENT_CREATION_ERROR", storage.ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, apiEnvelope{
					Success: false, Message: "boom", Errors: tc.code,
				})
			})

			_, err := client.CommentsTree(context.Background(), 1, 42)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_NonJSONResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502</html>"))
	})

	_, err := client.CommentsTree(context.Background(), 1, 42)
	require.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // закрываем сразу: соединение откажет

	client := New(&config.Config{
		API: config.APIConfig{BaseURL: srv.URL, Timeout: time.Second},
	})

	_, err := client.CommentsTree(context.Background(), 1, 42)
	require.ErrorIs(t, err, storage.ErrUnavailable)
}
