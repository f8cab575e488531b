package notice

import (
	"sync"
	"time"

	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/events"
)

// DisplayWindow is how long a notice stays visible.
const DisplayWindow = 5 * time.Second

// Center holds the single visible transient message. The newest message
// replaces any prior one, but every message schedules its own expiry timer;
// a timer fires at its own time and clears whatever message is visible then.
type Center struct {
	mu         sync.Mutex
	current    *domain.Notice
	ttl        time.Duration
	dispatcher events.Dispatcher
}

// NewCenter builds a notice center publishing changes on the dispatcher.
func NewCenter(dispatcher events.Dispatcher, ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DisplayWindow
	}
	return &Center{ttl: ttl, dispatcher: dispatcher}
}

// Success shows a success notice.
func (c *Center) Success(text string) {
	c.show(text, domain.NoticeSuccess)
}

// Error shows an error notice.
func (c *Center) Error(text string) {
	c.show(text, domain.NoticeError)
}

// Current returns the visible notice, nil when none.
func (c *Center) Current() *domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Center) show(text string, kind domain.NoticeKind) {
	notice := &domain.Notice{Text: text, Kind: kind}

	c.mu.Lock()
	c.current = notice
	c.mu.Unlock()

	c.publish(notice)
	time.AfterFunc(c.ttl, c.clear)
}

func (c *Center) clear() {
	c.mu.Lock()
	cleared := c.current != nil
	c.current = nil
	c.mu.Unlock()

	if cleared {
		c.publish(nil)
	}
}

func (c *Center) publish(notice *domain.Notice) {
	c.dispatcher.Publish(events.Event{
		Type:    events.EventNoticeChanged,
		Payload: events.NoticeChangedPayload{Notice: notice},
	})
}
