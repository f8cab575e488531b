package stubapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/quiz-client/internal/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (s *Server) registerRoutes() {
	s.app.Post("/auth/login", s.login)
	s.app.Post("/auth/register", s.register)

	admin := s.app.Group("/admin", s.requireAuth, s.requireAdmin)
	s.app.Post("/auth/admin/register", s.requireAuth, s.requireAdmin, s.registerWithRole)

	user := s.app.Group("/user", s.requireAuth)
	user.Get("/quiz/all", s.listQuizzes)
	user.Get("/quiz/get/:id", s.quizQuestions)
	user.Post("/quiz/submit/:id", s.submitQuiz)

	admin.Get("/question/allQuestions", s.allQuestions)
	admin.Get("/question/categories", s.categories)
	admin.Post("/question/addQuestions", s.addQuestion)
	admin.Put("/question/update/:id", s.updateQuestion)
	admin.Delete("/question/delete/:id", s.deleteQuestion)
	admin.Post("/quiz/create", s.createQuiz)
	admin.Delete("/quiz/delete/all", s.deleteAllQuizzes)
	admin.Delete("/quiz/delete/:id", s.deleteQuiz)
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(http.StatusUnauthorized).SendString("missing bearer token")
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return c.Status(http.StatusUnauthorized).SendString("invalid token")
	}

	roles := make([]string, 0, 2)
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}
	username, _ := claims["sub"].(string)
	c.Locals("username", username)
	c.Locals("roles", roles)
	return c.Next()
}

func (s *Server) requireAdmin(c *fiber.Ctx) error {
	roles, _ := c.Locals("roles").([]string)
	for _, role := range roles {
		if role == domain.RoleAdmin {
			return c.Next()
		}
	}
	return c.Status(http.StatusForbidden).SendString("admin role required")
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		return c.Status(http.StatusUnauthorized).SendString("Bad credentials")
	}

	tokenStr, err := s.issueToken(acct)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("token signing failed")
	}
	return c.JSON(fiber.Map{"token": tokenStr})
}

func (s *Server) register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}
	if err := s.createAccount(req.Username, req.Password, req.Email, "ROLE_USER"); err != nil {
		return c.Status(http.StatusBadRequest).SendString(err.Error())
	}
	// Plain-text body on purpose, matching the real backend.
	return c.SendString("User registered successfully with USER role")
}

func (s *Server) registerWithRole(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}
	role := "ROLE_" + strings.ToUpper(req.Role)
	if err := s.createAccount(req.Username, req.Password, req.Email, role); err != nil {
		return c.Status(http.StatusBadRequest).SendString(err.Error())
	}
	return c.SendString("User registered successfully with " + req.Role + " role")
}

func (s *Server) listQuizzes(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Quiz, 0, len(s.quizzes))
	for _, qz := range s.quizzes {
		out = append(out, domain.Quiz{
			ID:        qz.ID,
			Title:     qz.Title,
			Questions: s.quizQuestionsLocked(qz, false),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (s *Server) quizQuestions(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid quiz id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	qz, ok := s.quizzes[id]
	if !ok {
		return c.Status(http.StatusNotFound).SendString("quiz not found")
	}
	return c.JSON(s.quizQuestionsLocked(qz, false))
}

func (s *Server) submitQuiz(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid quiz id")
	}
	var answers []domain.Answer
	if err := c.BodyParser(&answers); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return c.Status(http.StatusNotFound).SendString("quiz not found")
	}

	score := 0
	for _, answer := range answers {
		if q, ok := s.questions[answer.ID]; ok && answer.Response != "" && answer.Response == q.RightAnswer {
			score++
		}
	}
	// Bare number body, as the real backend returns.
	return c.JSON(score)
}

func (s *Server) allQuestions(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (s *Server) categories(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.categoriesLocked())
}

func (s *Server) addQuestion(c *fiber.Ctx) error {
	var q domain.Question
	if err := c.BodyParser(&q); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}
	s.mu.Lock()
	s.addQuestionLocked(q)
	s.mu.Unlock()
	return c.Status(http.StatusCreated).SendString("success")
}

func (s *Server) updateQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid question id")
	}
	var q domain.Question
	if err := c.BodyParser(&q); err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return c.Status(http.StatusNotFound).SendString("question not found")
	}
	q.ID = id
	s.questions[id] = q
	return c.SendString("success")
}

func (s *Server) deleteQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid question id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return c.Status(http.StatusNotFound).SendString("question not found")
	}
	delete(s.questions, id)
	return c.SendString("deleted")
}

func (s *Server) createQuiz(c *fiber.Ctx) error {
	category := c.Query("category")
	title := c.Query("title")
	numQ, err := strconv.Atoi(c.Query("numQ"))
	if err != nil || numQ <= 0 {
		return c.Status(http.StatusBadRequest).SendString("invalid numQ")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, numQ)
	for _, q := range s.questions {
		if q.Category == category {
			ids = append(ids, q.ID)
		}
	}
	if len(ids) == 0 {
		return c.Status(http.StatusBadRequest).SendString("no questions for category " + category)
	}
	sort.Ints(ids)
	if len(ids) > numQ {
		ids = ids[:numQ]
	}

	id := s.nextQuizID
	s.nextQuizID++
	s.quizzes[id] = &quiz{ID: id, Title: title, QuestionIDs: ids}
	return c.Status(http.StatusCreated).SendString("Success")
}

func (s *Server) deleteQuiz(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("invalid quiz id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return c.Status(http.StatusNotFound).SendString("quiz not found")
	}
	delete(s.quizzes, id)
	return c.SendString("Quiz deleted")
}

func (s *Server) deleteAllQuizzes(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes = make(map[int]*quiz)
	return c.SendString("All quizzes deleted")
}

func (s *Server) createAccount(username, password, email, role string) error {
	if username == "" || password == "" {
		return errBadRegistration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return errUsernameExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.accounts[username] = &account{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Roles:        []string{role},
	}
	return nil
}

// quizQuestionsLocked copies the quiz's questions, optionally keeping the
// right answer. The user-facing fetch strips it, as the real backend does.
func (s *Server) quizQuestionsLocked(qz *quiz, withAnswer bool) []domain.Question {
	out := make([]domain.Question, 0, len(qz.QuestionIDs))
	for _, id := range qz.QuestionIDs {
		q, ok := s.questions[id]
		if !ok {
			continue
		}
		if !withAnswer {
			q.RightAnswer = ""
		}
		out = append(out, q)
	}
	return out
}
