package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity type tags. Anything outside this set is printed verbatim in
// brackets by the console printer.
const (
	TypeMessage = "message"
	TypeTyping  = "typing"
	TypeEvent   = "event"
)

// ContentTypeAdaptiveCard marks an attachment whose Content is an adaptive
// card form to be resolved into operator answers.
const ContentTypeAdaptiveCard = "application/vnd.microsoft.card.adaptive"

// ConversationAccount references the conversation an activity belongs to.
type ConversationAccount struct {
	ID string `json:"id"`
}

// ChannelAccount identifies the sender of an activity.
type ChannelAccount struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// CardAction is a single suggested action offered alongside a message.
type CardAction struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title"`
	Value string `json:"value,omitempty"`
}

// SuggestedActions carries the ordered suggested actions of a message turn.
type SuggestedActions struct {
	Actions []CardAction `json:"actions,omitempty"`
}

// Attachment is an opaque structured payload attached to an activity. Content
// is left untyped; consumers dispatch on ContentType.
type Attachment struct {
	ContentType string `json:"contentType"`
	Name        string `json:"name,omitempty"`
	Content     any    `json:"content,omitempty"`
}

// Activity is one unit of agent-or-user communication within a conversation.
// The runner only ever reads fields; after emission an activity should be
// treated as immutable.
type Activity struct {
	Type             string               `json:"type"`
	ID               string               `json:"id,omitempty"`
	Name             string               `json:"name,omitempty"`
	Timestamp        time.Time            `json:"timestamp"`
	From             ChannelAccount       `json:"from,omitempty"`
	Conversation     *ConversationAccount `json:"conversation,omitempty"`
	Text             string               `json:"text,omitempty"`
	SuggestedActions *SuggestedActions    `json:"suggestedActions,omitempty"`
	Attachments      []Attachment         `json:"attachments,omitempty"`
}

// New creates a bare activity of the given type with a fresh ID and UTC
// timestamp. Prefer the typed constructors for common cases.
func New(activityType string) *Activity {
	return &Activity{
		Type:      activityType,
		ID:        NewID(),
		Timestamp: time.Now().UTC(),
	}
}

// NewMessage creates an agent-authored message activity.
func NewMessage(text string) *Activity {
	a := New(TypeMessage)
	a.From = ChannelAccount{ID: "agent"}
	a.Text = text
	return a
}

// NewUserMessage creates a user-authored message activity.
func NewUserMessage(text string) *Activity {
	a := New(TypeMessage)
	a.From = ChannelAccount{ID: "user"}
	a.Text = text
	return a
}

// NewTyping creates a typing indicator activity.
func NewTyping() *Activity { return New(TypeTyping) }

// NewEvent creates a named protocol event activity.
func NewEvent(name string) *Activity {
	a := New(TypeEvent)
	a.Name = name
	return a
}

// NewID generates a unique identifier for activities and conversations.
func NewID() string { return uuid.NewString() }

// IsMessage reports whether the activity is a message turn.
func (a *Activity) IsMessage() bool { return a.Type == TypeMessage }

// ConversationID returns the conversation identifier or "" when the activity
// carries no conversation reference.
func (a *Activity) ConversationID() string {
	if a.Conversation == nil {
		return ""
	}
	return a.Conversation.ID
}

// AdaptiveCards returns the attachments carrying adaptive card content,
// preserving their original order.
func (a *Activity) AdaptiveCards() []Attachment {
	var cards []Attachment
	for _, att := range a.Attachments {
		if att.ContentType == ContentTypeAdaptiveCard {
			cards = append(cards, att)
		}
	}
	return cards
}
