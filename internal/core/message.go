package core

// Message is the domain model for a chat message. It is immutable
// once appended to a channel's log. The JSON tags match the entries
// the original web client reads out of the store.
type Message struct {
	Author string `json:"username"`
	Body   string `json:"message"`
}
