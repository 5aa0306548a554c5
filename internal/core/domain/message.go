package domain

import "time"

// Sender identifies who authored a transcript message.
type Sender string

// Message senders.
const (
	// SenderUser is the person asking questions.
	SenderUser Sender = "user"

	// SenderAssistant is the onboarding assistant.
	SenderAssistant Sender = "assistant"
)

// IsValid returns true if the sender is recognised.
func (s Sender) IsValid() bool {
	return s == SenderUser || s == SenderAssistant
}

// String returns the string representation.
func (s Sender) String() string {
	return string(s)
}

// Message is one immutable entry in a conversation transcript.
type Message struct {
	// ID is monotonic in creation order within one conversation.
	ID int64

	// Text is the message body. Assistant text is markdown.
	Text string

	// Sender is who wrote the message.
	Sender Sender

	// Timestamp is when the message was created.
	Timestamp time.Time
}

// Fixed assistant texts.
const (
	// GreetingText seeds a fresh transcript.
	GreetingText = "Hey! I'm your AI onboarding assistant. I'm here to help you get up to speed " +
		"with everything you need to know. What would you like to learn about?"

	// FallbackErrorText replaces a reply when the completion call fails.
	FallbackErrorText = "Sorry, I encountered an error. Please check your API key and try again."

	// EmptyReplyText replaces an empty completion.
	EmptyReplyText = "Sorry, I couldn't generate a response."

	// UnconfiguredText answers every question when no provider is configured.
	UnconfiguredText = "I'm not connected to a language model yet. Set an API key with " +
		"'onboard settings apikey' or the OPENAI_API_KEY environment variable, then ask again."
)

// LastMessages returns at most n trailing messages of a transcript.
// The returned slice shares no backing array with the input.
func LastMessages(transcript []Message, n int) []Message {
	if n <= 0 || len(transcript) == 0 {
		return nil
	}
	start := 0
	if len(transcript) > n {
		start = len(transcript) - n
	}
	window := make([]Message, len(transcript)-start)
	copy(window, transcript[start:])
	return window
}

// TurnResult is the outcome of one submitted question.
type TurnResult struct {
	// User is the appended user message.
	User Message

	// Assistant is the appended assistant message. On failure it carries
	// FallbackErrorText.
	Assistant Message

	// Citation is set when the reply carried a marker that resolved to a
	// reference document.
	Citation *CitationReference

	// Err is the failure surfaced to the error banner, if any.
	Err error
}

// Failed returns true if the turn ended with a banner-worthy error.
func (r TurnResult) Failed() bool {
	return r.Err != nil
}
