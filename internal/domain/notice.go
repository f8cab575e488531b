package domain

// NoticeKind classifies a transient user-facing message.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a short-lived message shown to the user. At most one is visible
// at a time; the newest replaces any prior one.
type Notice struct {
	Text string
	Kind NoticeKind
}
