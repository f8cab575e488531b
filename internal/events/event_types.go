package events

import (
	"github.com/spec-kit/quiz-client/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIdentityChanged EventType = "identity_changed"
	EventPageChanged     EventType = "page_changed"
	EventNoticeChanged   EventType = "notice_changed"
)

// Event represents a state change emitted by the session store, the
// navigation machine or the notice center.
type Event struct {
	Type    EventType
	Payload interface{}
}

// IdentityChangedPayload payload. Identity is nil after logout or expiry.
type IdentityChangedPayload struct {
	Identity *domain.Identity
}

// PageChangedPayload payload.
type PageChangedPayload struct {
	Page domain.Page
}

// NoticeChangedPayload payload. Notice is nil when the message cleared.
type NoticeChangedPayload struct {
	Notice *domain.Notice
}
