// Package stubapi is an in-process double of the remote quiz API, backed by
// in-memory stores. It exists for end-to-end tests and local development; it
// is not a product server.
package stubapi

import (
	"net"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/quiz-client/internal/domain"
)

const tokenTTL = time.Hour

type account struct {
	Username     string
	PasswordHash []byte
	Email        string
	Roles        []string
}

type quiz struct {
	ID          int
	Title       string
	QuestionIDs []int
}

// Server serves the quiz API contract from in-memory state.
type Server struct {
	app    *fiber.App
	secret []byte
	logger *zap.Logger

	mu             sync.Mutex
	accounts       map[string]*account
	questions      map[int]domain.Question
	quizzes        map[int]*quiz
	nextQuestionID int
	nextQuizID     int
}

// New builds a stub server signing tokens with the given secret.
func New(secret string, logger *zap.Logger) *Server {
	s := &Server{
		app:            fiber.New(fiber.Config{DisableStartupMessage: true}),
		secret:         []byte(secret),
		logger:         logger,
		accounts:       make(map[string]*account),
		questions:      make(map[int]domain.Question),
		quizzes:        make(map[int]*quiz),
		nextQuestionID: 1,
		nextQuizID:     1,
	}
	s.registerRoutes()
	return s
}

// SeedUser creates an account directly, bypassing the registration endpoint.
func (s *Server) SeedUser(username, password, email string, roles ...string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = &account{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Roles:        roles,
	}
	return nil
}

// SeedQuestion inserts a question directly and returns its assigned ID.
func (s *Server) SeedQuestion(question domain.Question) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addQuestionLocked(question)
}

// SeedQuiz assembles a quiz from the given question IDs and returns its ID.
func (s *Server) SeedQuiz(title string, questionIDs ...int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextQuizID
	s.nextQuizID++
	s.quizzes[id] = &quiz{ID: id, Title: title, QuestionIDs: questionIDs}
	return id
}

// Listener serves on an already-bound listener; it blocks until Shutdown.
func (s *Server) Listener(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Listen binds and serves on the given address; it blocks until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) addQuestionLocked(question domain.Question) int {
	question.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[question.ID] = question
	return question.ID
}

func (s *Server) issueToken(acct *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   acct.Username,
		"roles": acct.Roles,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) categoriesLocked() []string {
	seen := make(map[string]struct{})
	for _, q := range s.questions {
		if q.Category != "" {
			seen[q.Category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
