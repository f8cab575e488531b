// Package view renders the current page to a terminal and maps line-oriented
// input onto application actions. State reaches it through dispatcher events;
// it never mutates credential, identity or page itself.
package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spec-kit/quiz-client/internal/app"
	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/events"
)

// Terminal is the interactive view loop.
type Terminal struct {
	app  *app.App
	in   *bufio.Scanner
	out  io.Writer
	quit bool

	mu     sync.Mutex
	page   domain.Page
	notice *domain.Notice
}

// NewTerminal builds the view and subscribes it to state changes.
func NewTerminal(a *app.App, in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		app:  a,
		in:   bufio.NewScanner(in),
		out:  out,
		page: a.Page(),
	}

	a.Dispatcher().Subscribe(events.EventPageChanged, func(event events.Event) {
		if payload, ok := event.Payload.(events.PageChangedPayload); ok {
			t.mu.Lock()
			t.page = payload.Page
			t.mu.Unlock()
		}
	})
	a.Dispatcher().Subscribe(events.EventNoticeChanged, func(event events.Event) {
		if payload, ok := event.Payload.(events.NoticeChangedPayload); ok {
			t.mu.Lock()
			t.notice = payload.Notice
			t.mu.Unlock()
		}
	})

	return t
}

// Run drives the page loop until the user quits or input ends.
func (t *Terminal) Run(ctx context.Context) error {
	for !t.quit {
		if err := ctx.Err(); err != nil {
			return err
		}

		t.renderHeader()
		switch t.currentPage() {
		case domain.PageRegister:
			t.registerPage(ctx)
		case domain.PageUserDashboard:
			t.userDashboardPage(ctx)
		case domain.PageAdminDashboard:
			t.adminDashboardPage(ctx)
		case domain.PageCreateAdmin:
			t.createAdminPage(ctx)
		case domain.PageManageQuizzes:
			t.manageQuizzesPage(ctx)
		case domain.PageManageQuestions:
			t.manageQuestionsPage(ctx)
		case domain.PageQuiz:
			t.quizPage(ctx)
		case domain.PageAddQuestion:
			t.addQuestionPage(ctx)
		case domain.PageUpdateQuestion:
			t.updateQuestionPage(ctx)
		case domain.PageCreateQuiz:
			t.createQuizPage(ctx)
		default:
			t.loginPage(ctx)
		}
	}
	return nil
}

func (t *Terminal) currentPage() domain.Page {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

func (t *Terminal) renderHeader() {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "=== QuizMaster Pro ===")
	if identity := t.app.Identity(); identity != nil {
		fmt.Fprintf(t.out, "Welcome, %s\n", identity.Username)
	}

	t.mu.Lock()
	notice := t.notice
	t.mu.Unlock()
	if notice != nil {
		label := "OK"
		if notice.Kind == domain.NoticeError {
			label = "ERROR"
		}
		fmt.Fprintf(t.out, "[%s] %s\n", label, notice.Text)
	}
}

// prompt reads one input line; the second return is false when input ended.
func (t *Terminal) prompt(label string) (string, bool) {
	fmt.Fprintf(t.out, "%s: ", label)
	if !t.in.Scan() {
		t.quit = true
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

// promptWithDefault keeps the current value when the user enters nothing.
func (t *Terminal) promptWithDefault(label, current string) (string, bool) {
	value, ok := t.prompt(fmt.Sprintf("%s [%s]", label, current))
	if !ok {
		return "", false
	}
	if value == "" {
		return current, true
	}
	return value, true
}

func (t *Terminal) confirm(label string) bool {
	answer, ok := t.prompt(label + " (y/N)")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// handleGlobal intercepts the commands available on every menu. It returns
// true when the command was consumed.
func (t *Terminal) handleGlobal(command string) bool {
	switch strings.ToLower(command) {
	case "quit", "exit":
		t.quit = true
		return true
	case "logout":
		t.app.Logout()
		return true
	}
	return false
}
