package nav

import (
	"sync"

	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/events"
)

// Machine maps the identity and user-initiated transitions to exactly one
// visible page. It is the only writer of the page.
type Machine struct {
	mu               sync.RWMutex
	page             domain.Page
	selectedQuizID   int
	selectedQuestion *domain.Question
	dispatcher       events.Dispatcher
}

// NewMachine builds the state machine on its initial page and subscribes it
// to identity changes: an identity change preempts whatever page the user was
// on, it is not a user action.
func NewMachine(dispatcher events.Dispatcher) *Machine {
	m := &Machine{
		page:       domain.PageLogin,
		dispatcher: dispatcher,
	}
	dispatcher.Subscribe(events.EventIdentityChanged, m.handleIdentityChanged)
	return m
}

// Page returns the currently visible page.
func (m *Machine) Page() domain.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.page
}

// NavigateTo sets the page verbatim. No legality check is performed against
// the current identity; the views only offer transitions consistent with the
// user's role.
func (m *Machine) NavigateTo(target domain.Page) {
	m.setPage(target)
}

// StartQuiz selects a quiz and moves to the quiz page.
func (m *Machine) StartQuiz(quizID int) {
	m.mu.Lock()
	m.selectedQuizID = quizID
	m.mu.Unlock()
	m.setPage(domain.PageQuiz)
}

// EditQuestion stores the question being edited and moves to the update page.
func (m *Machine) EditQuestion(question domain.Question) {
	m.mu.Lock()
	m.selectedQuestion = &question
	m.mu.Unlock()
	m.setPage(domain.PageUpdateQuestion)
}

// SelectedQuizID returns the quiz chosen via StartQuiz, zero when none. It is
// not cleared on re-entry; the quiz view renders a fallback for zero.
func (m *Machine) SelectedQuizID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectedQuizID
}

// SelectedQuestion returns the question chosen via EditQuestion, nil when
// none.
func (m *Machine) SelectedQuestion() *domain.Question {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectedQuestion
}

func (m *Machine) handleIdentityChanged(event events.Event) {
	payload, ok := event.Payload.(events.IdentityChangedPayload)
	if !ok {
		return
	}
	switch {
	case payload.Identity == nil:
		m.setPage(domain.PageLogin)
	case payload.Identity.IsAdmin():
		m.setPage(domain.PageAdminDashboard)
	default:
		m.setPage(domain.PageUserDashboard)
	}
}

func (m *Machine) setPage(target domain.Page) {
	m.mu.Lock()
	m.page = target
	m.mu.Unlock()

	m.dispatcher.Publish(events.Event{
		Type:    events.EventPageChanged,
		Payload: events.PageChangedPayload{Page: target},
	})
}
