package stubapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New("test-secret", zap.NewNop())
	require.NoError(t, s.SeedUser("admin", "admin", "admin@example.com", domain.RoleAdmin))
	require.NoError(t, s.SeedUser("bob", "hunter2", "bob@example.com", "ROLE_USER"))
	return s
}

func doJSON(t *testing.T, s *Server, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, s *Server, username, password string) string {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		loginToken(t, s, "admin", "admin")
	})

	t.Run("bad credentials are rejected", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/auth/login", "",
			`{"username":"admin","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "Bad credentials", string(body))
	})
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	t.Run("succeeds with plain text body", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/auth/register", "",
			`{"username":"carol","password":"pw","email":"c@example.com"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "User registered successfully with USER role", string(body))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/auth/register", "",
			`{"username":"bob","password":"pw","email":""}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "username exists", string(body))
	})
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/admin/question/allQuestions", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user token", func(t *testing.T) {
		token := loginToken(t, s, "bob", "hunter2")
		resp := doJSON(t, s, http.MethodGet, "/admin/question/allQuestions", token, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin token", func(t *testing.T) {
		token := loginToken(t, s, "admin", "admin")
		resp := doJSON(t, s, http.MethodGet, "/admin/question/allQuestions", token, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t)
	q1 := s.SeedQuestion(domain.Question{Title: "Q1", Option1: "A", Option2: "B", RightAnswer: "A", Category: "Go"})
	q2 := s.SeedQuestion(domain.Question{Title: "Q2", Option1: "A", Option2: "B", RightAnswer: "B", Category: "Go"})
	quizID := s.SeedQuiz("Go Basics", q1, q2)
	token := loginToken(t, s, "bob", "hunter2")

	t.Run("questions are served without the right answer", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/user/quiz/get/1", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var questions []domain.Question
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&questions))
		require.Len(t, questions, 2)
		for _, q := range questions {
			assert.Empty(t, q.RightAnswer)
		}
	})

	t.Run("submit returns a bare number score", func(t *testing.T) {
		answers, err := json.Marshal([]domain.Answer{
			{ID: q1, Response: "A"},
			{ID: q2, Response: "A"},
		})
		require.NoError(t, err)

		resp := doJSON(t, s, http.MethodPost, "/user/quiz/submit/"+strconv.Itoa(quizID), token, string(answers))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "1", string(body))
	})
}

func TestCreateQuizFromCategory(t *testing.T) {
	s := newTestServer(t)
	s.SeedQuestion(domain.Question{Title: "Q1", RightAnswer: "A", Category: "Go"})
	s.SeedQuestion(domain.Question{Title: "Q2", RightAnswer: "B", Category: "Go"})
	token := loginToken(t, s, "admin", "admin")

	resp := doJSON(t, s, http.MethodPost, "/admin/quiz/create?category=Go&numQ=1&title=Small", token, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/user/quiz/all", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quizzes []domain.Quiz
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quizzes))
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Small", quizzes[0].Title)
	assert.Len(t, quizzes[0].Questions, 1)
}
