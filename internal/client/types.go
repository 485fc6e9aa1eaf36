package client

// EventKind distinguishes stream payloads from stream faults.
type EventKind int

const (
	// EventData carries one pushed line from the session stream, verbatim.
	EventData EventKind = iota
	// EventError signals a connection fault on the stream. Text is empty.
	EventError
)

// Event is a single notification delivered to the stream observer.
type Event struct {
	Kind EventKind
	Text string
}

// SubmitResult reports what a send operation actually did.
type SubmitResult int

const (
	// Skipped means no request was issued (no session, or blank content).
	Skipped SubmitResult = iota
	// Submitted means the request was dispatched to the server.
	Submitted
)

// MessagePayload is the body of POST /sessions/{id}/messages.
type MessagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EventPayload is the body of POST /sessions/{id}/events.
type EventPayload struct {
	Message string `json:"message"`
}

type sessionCreated struct {
	ID string `json:"id"`
}
