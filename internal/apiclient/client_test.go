package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/observability"
	apperrors "github.com/spec-kit/quiz-client/pkg/util"
)

type mutableTokens struct {
	token string
}

func (m *mutableTokens) Token() string {
	return m.token
}

func newTestClient(baseURL, token string) (*Client, *mutableTokens) {
	tokens := &mutableTokens{token: token}
	client := New(config.APIConfig{BaseURL: baseURL, RequestTimeoutSeconds: 5},
		tokens, zap.NewNop(), observability.NewMetrics())
	return client, tokens
}

func TestDo_DefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "tok-123")
	_, err := client.Do(context.Background(), "/user/quiz/all", RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Empty(t, got.Get("Content-Type"), "no content type without a body")
}

func TestDo_BodySetsContentType(t *testing.T) {
	var contentType, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		body = string(buf)
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	_, err := client.Do(context.Background(), "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"username": "alice"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"username":"alice"}`, body)
}

func TestDo_CallerHeadersOverrideDefaults(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	_, err := client.Do(context.Background(), "/", RequestOptions{
		Headers: map[string]string{"Accept": "text/plain"},
	})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", accept)
}

func TestDo_NoAuthorizationWithoutCredential(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	_, err := client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestDo_ReadsTokenFreshOnEveryCall(t *testing.T) {
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	client, tokens := newTestClient(srv.URL, "first")
	_, err := client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)

	tokens.token = ""
	_, err = client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)

	require.Len(t, auths, 2)
	assert.Equal(t, "Bearer first", auths[0])
	assert.Empty(t, auths[1])
}

func TestDo_AbsoluteURLPassesThrough(t *testing.T) {
	hit := false
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer other.Close()

	client, _ := newTestClient("http://unreachable.invalid", "")
	_, err := client.Do(context.Background(), other.URL+"/elsewhere", RequestOptions{})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestDo_EmptyBodyYieldsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	raw, err := client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDo_NumberBodyParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("5"))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	raw, err := client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)

	var number int
	require.NoError(t, json.Unmarshal(raw, &number))
	assert.Equal(t, 5, number)
}

func TestDo_NonJSONSuccessBodyYieldsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	raw, err := client.Do(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDo_ErrorStatusUsesBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not found"))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	_, err := client.Do(context.Background(), "/", RequestOptions{})
	require.Error(t, err)

	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "Not found", reqErr.Message)
}

func TestDo_ErrorStatusSynthesizesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL, "")
	_, err := client.Do(context.Background(), "/", RequestOptions{})
	require.Error(t, err)
	assert.Equal(t, "request failed (500)", err.Error())
}

func TestDo_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	metrics := observability.NewMetrics()
	client := New(config.APIConfig{BaseURL: srv.URL, RequestTimeoutSeconds: 5},
		&mutableTokens{}, zap.NewNop(), metrics)

	_, err := client.Do(context.Background(), "/user/quiz/all", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.RequestCount("/user/quiz/all", http.MethodGet, http.StatusOK))
}

func TestLogin(t *testing.T) {
	t.Run("returns the issued token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token":"issued"}`))
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, "")
		token, err := client.Login(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "issued", token)
	})

	t.Run("missing token fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, "")
		_, err := client.Login(context.Background(), "alice", "secret")
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestSubmitQuiz_ScoreShapes(t *testing.T) {
	t.Run("bare number", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("2"))
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, "")
		score, err := client.SubmitQuiz(context.Background(), 1, []domain.Answer{{ID: 1, Response: "A"}})
		require.NoError(t, err)
		assert.Equal(t, 2, score)
	})

	t.Run("score object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"score":3}`))
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, "")
		score, err := client.SubmitQuiz(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, score)
	})

	t.Run("empty body scores zero", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, "")
		score, err := client.SubmitQuiz(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})
}
