package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/apiclient"
	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/events"
	"github.com/spec-kit/quiz-client/internal/nav"
	"github.com/spec-kit/quiz-client/internal/notice"
	"github.com/spec-kit/quiz-client/internal/observability"
	"github.com/spec-kit/quiz-client/internal/session"
)

// App is the application root. It owns the state-bearing components and
// exposes the user-initiated actions; every API failure is converted to an
// error notice here and none escapes to the caller.
type App struct {
	logger     *zap.Logger
	dispatcher events.Dispatcher
	session    *session.Store
	api        *apiclient.Client
	nav        *nav.Machine
	notices    *notice.Center
}

// New wires the application from configuration.
func New(cfg *config.Config, logger *zap.Logger) *App {
	dispatcher := events.NewInMemoryDispatcher()
	store := session.NewStore(cfg.Session, dispatcher, logger)
	metrics := observability.NewMetrics()

	return &App{
		logger:     logger,
		dispatcher: dispatcher,
		session:    store,
		api:        apiclient.New(cfg.API, store, logger, metrics),
		nav:        nav.NewMachine(dispatcher),
		notices:    notice.NewCenter(dispatcher, notice.DisplayWindow),
	}
}

// Start restores a persisted session, moving straight to the matching
// dashboard when a live credential exists.
func (a *App) Start() {
	a.session.Load()
}

// Dispatcher exposes the event stream for the view layer.
func (a *App) Dispatcher() events.Dispatcher {
	return a.dispatcher
}

// Page returns the currently visible page.
func (a *App) Page() domain.Page {
	return a.nav.Page()
}

// Identity returns the authenticated identity, nil when logged out.
func (a *App) Identity() *domain.Identity {
	return a.session.Identity()
}

// Notice returns the visible transient message, nil when none.
func (a *App) Notice() *domain.Notice {
	return a.notices.Current()
}

// SelectedQuizID returns the quiz selected for taking, zero when none.
func (a *App) SelectedQuizID() int {
	return a.nav.SelectedQuizID()
}

// SelectedQuestion returns the question selected for editing, nil when none.
func (a *App) SelectedQuestion() *domain.Question {
	return a.nav.SelectedQuestion()
}

// NavigateTo moves to the target page.
func (a *App) NavigateTo(target domain.Page) {
	a.nav.NavigateTo(target)
}

// StartQuiz selects a quiz and moves to the quiz page.
func (a *App) StartQuiz(quizID int) {
	a.nav.StartQuiz(quizID)
}

// EditQuestion selects a question and moves to the update page.
func (a *App) EditQuestion(question domain.Question) {
	a.nav.EditQuestion(question)
}

// Login authenticates, stores the credential and derives the identity. The
// identity change moves the page to the matching dashboard.
func (a *App) Login(ctx context.Context, username, password string) {
	credential, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.session.Login(credential, username)
	a.notices.Success("Login successful!")
}

// Register creates a user account and returns to the login page on success.
func (a *App) Register(ctx context.Context, username, password, email string) {
	if err := a.api.Register(ctx, username, password, email); err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.notices.Success("Registration successful! Please log in.")
	a.nav.NavigateTo(domain.PageLogin)
}

// Logout clears the credential and identity; the identity change returns the
// page to login.
func (a *App) Logout() {
	a.session.Logout()
	a.notices.Success("You have been logged out.")
}

// CreateUser registers an account with an explicit role via the admin
// endpoint.
func (a *App) CreateUser(ctx context.Context, username, password, email, role string) {
	if err := a.api.RegisterWithRole(ctx, username, password, email, role); err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.notices.Success(fmt.Sprintf("User '%s' registered successfully with role %s!", username, role))
	a.nav.NavigateTo(domain.PageAdminDashboard)
}

// FetchQuizzes lists the quizzes, returning nil after notifying on failure.
func (a *App) FetchQuizzes(ctx context.Context) []domain.Quiz {
	quizzes, err := a.api.Quizzes(ctx)
	if err != nil {
		a.notices.Error(err.Error())
		return nil
	}
	return quizzes
}

// FetchQuizQuestions loads the questions of the selected quiz.
func (a *App) FetchQuizQuestions(ctx context.Context, quizID int) []domain.Question {
	questions, err := a.api.QuizQuestions(ctx, quizID)
	if err != nil {
		a.notices.Error(err.Error())
		return nil
	}
	return questions
}

// SubmitQuiz posts the answers and returns the score. The second return is
// false when submission failed.
func (a *App) SubmitQuiz(ctx context.Context, quizID int, answers []domain.Answer) (int, bool) {
	score, err := a.api.SubmitQuiz(ctx, quizID, answers)
	if err != nil {
		a.notices.Error(err.Error())
		return 0, false
	}
	a.notices.Success("Quiz submitted!")
	return score, true
}

// FetchQuestionData loads the question bank and the category list. The two
// fetches run concurrently and both are awaited before any state is updated.
func (a *App) FetchQuestionData(ctx context.Context) ([]domain.Question, []string) {
	var (
		wg         sync.WaitGroup
		questions  []domain.Question
		categories []string
		qErr, cErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		questions, qErr = a.api.AllQuestions(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, cErr = a.api.Categories(ctx)
	}()
	wg.Wait()

	if qErr != nil {
		a.notices.Error(qErr.Error())
		return nil, nil
	}
	if cErr != nil {
		a.notices.Error(cErr.Error())
		return nil, nil
	}
	return questions, categories
}

// FetchCategories loads the category list alone, for the create-quiz form.
func (a *App) FetchCategories(ctx context.Context) []string {
	categories, err := a.api.Categories(ctx)
	if err != nil {
		a.notices.Error(err.Error())
		return nil
	}
	return categories
}

// AddQuestion creates a question and returns to the question list.
func (a *App) AddQuestion(ctx context.Context, question domain.Question) {
	if err := a.api.AddQuestion(ctx, question); err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.notices.Success("Question added!")
	a.nav.NavigateTo(domain.PageManageQuestions)
}

// UpdateQuestion saves the edited question and returns to the question list.
func (a *App) UpdateQuestion(ctx context.Context, question domain.Question) {
	if err := a.api.UpdateQuestion(ctx, question); err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.notices.Success("Question updated!")
	a.nav.NavigateTo(domain.PageManageQuestions)
}

// DeleteQuestion removes a question. Returns true on success so the list view
// can re-fetch.
func (a *App) DeleteQuestion(ctx context.Context, questionID int) bool {
	if err := a.api.DeleteQuestion(ctx, questionID); err != nil {
		a.notices.Error(err.Error())
		return false
	}
	a.notices.Success("Question deleted successfully.")
	return true
}

// DeleteQuiz removes a quiz. Returns true on success so the list view can
// re-fetch.
func (a *App) DeleteQuiz(ctx context.Context, quizID int) bool {
	if err := a.api.DeleteQuiz(ctx, quizID); err != nil {
		a.notices.Error(err.Error())
		return false
	}
	a.notices.Success("Quiz deleted successfully.")
	return true
}

// CreateQuiz asks the server to assemble a quiz and returns to the quiz list.
func (a *App) CreateQuiz(ctx context.Context, category string, numQuestions int, title string) {
	if err := a.api.CreateQuiz(ctx, category, numQuestions, title); err != nil {
		a.notices.Error(err.Error())
		return
	}
	a.notices.Success("Quiz created successfully!")
	a.nav.NavigateTo(domain.PageManageQuizzes)
}
