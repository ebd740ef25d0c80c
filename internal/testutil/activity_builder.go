package testutil

import (
	"github.com/hupe1980/copilotcli/activity"
)

// ActivityBuilder provides a fluent helper for constructing activities in
// tests. Example:
//
//	a := NewActivityBuilder().Text("hello").Conversation("conv-1").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type ActivityBuilder struct {
	a *activity.Activity
}

// NewActivityBuilder creates a builder with a default message activity.
func NewActivityBuilder() *ActivityBuilder {
	return &ActivityBuilder{a: activity.NewMessage("")}
}

// Type overrides the activity type tag (chainable).
func (b *ActivityBuilder) Type(t string) *ActivityBuilder { b.a.Type = t; return b }

// Text sets the message text (chainable).
func (b *ActivityBuilder) Text(t string) *ActivityBuilder { b.a.Text = t; return b }

// Conversation attaches a conversation reference (chainable).
func (b *ActivityBuilder) Conversation(id string) *ActivityBuilder {
	b.a.Conversation = &activity.ConversationAccount{ID: id}
	return b
}

// SuggestedAction appends one suggested action (chainable).
func (b *ActivityBuilder) SuggestedAction(title, value string) *ActivityBuilder {
	if b.a.SuggestedActions == nil {
		b.a.SuggestedActions = &activity.SuggestedActions{}
	}
	b.a.SuggestedActions.Actions = append(b.a.SuggestedActions.Actions, activity.CardAction{
		Type:  "imBack",
		Title: title,
		Value: value,
	})
	return b
}

// AdaptiveCard appends an adaptive card attachment with the given content
// (chainable).
func (b *ActivityBuilder) AdaptiveCard(content any) *ActivityBuilder {
	b.a.Attachments = append(b.a.Attachments, activity.Attachment{
		ContentType: activity.ContentTypeAdaptiveCard,
		Content:     content,
	})
	return b
}

// Build returns the constructed activity.
func (b *ActivityBuilder) Build() *activity.Activity { return b.a }
