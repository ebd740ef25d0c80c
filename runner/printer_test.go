package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/copilotcli/activity"
	"github.com/hupe1980/copilotcli/internal/testutil"
)

func TestPrintActivity_Markers(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(testutil.NewScriptClient(), strings.NewReader(""), &out, t.TempDir())

	r.printActivity(activity.NewTyping())
	assert.Equal(t, ".", out.String())

	out.Reset()
	r.printActivity(activity.NewEvent("stream-start"))
	assert.Equal(t, "+", out.String())

	out.Reset()
	r.printActivity(activity.New("trace"))
	assert.Equal(t, "[trace]\n", out.String())
}

func TestPrintActivity_MessageWithSuggestedActions(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(testutil.NewScriptClient(), strings.NewReader(""), &out, t.TempDir())

	a := testutil.NewActivityBuilder().
		Text("Pick a topic").
		SuggestedAction("Weather", "weather").
		SuggestedAction("News", "news").
		Build()
	followUps := r.printActivity(a)

	assert.Empty(t, followUps)
	assert.Contains(t, out.String(), "Pick a topic")
	assert.Contains(t, out.String(), "Suggested actions:")
	assert.Contains(t, out.String(), "  - Weather")
	assert.Contains(t, out.String(), "  - News")
}

func TestInteractive_CardFollowUp(t *testing.T) {
	cardContent := map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{
				"type": "Input.ChoiceSet",
				"id":   "color",
				"choices": []any{
					map[string]any{"title": "Red", "value": "red-v"},
					map[string]any{"title": "Green", "value": "green-v"},
					map[string]any{"title": "Blue", "value": "blue-v"},
				},
			},
		},
	}

	c := testutil.NewScriptClient()
	c.SetStart(testutil.NewActivityBuilder().Text("Welcome!").Build())
	c.AddResponse("pick", testutil.NewActivityBuilder().Text("Choose:").AdaptiveCard(cardContent).Build())

	// Line 1 answers the mode-free question prompt, line 2 the choice field.
	in := strings.NewReader("pick\n2\n")
	var out bytes.Buffer
	r := newTestRunner(c, in, &out, t.TempDir())

	require.NoError(t, r.RunInteractive(context.Background()))

	questions := c.Questions()
	require.Len(t, questions, 2, "card answers must be replayed as a follow-up question")
	assert.Equal(t, "pick", questions[0])
	assert.JSONEq(t, `{"color":"green-v"}`, questions[1])
}

func TestInteractive_OpeningCardFollowUp(t *testing.T) {
	cardContent := map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{
				"type": "Input.ChoiceSet",
				"id":   "color",
				"choices": []any{
					map[string]any{"title": "Red", "value": "red-v"},
					map[string]any{"title": "Green", "value": "green-v"},
				},
			},
		},
	}

	c := testutil.NewScriptClient()
	c.SetStart(testutil.NewActivityBuilder().Text("Welcome!").AdaptiveCard(cardContent).Build())

	// The single line answers the greeting card's choice field.
	var out bytes.Buffer
	r := newTestRunner(c, strings.NewReader("2\n"), &out, t.TempDir())

	require.NoError(t, r.RunInteractive(context.Background()))

	questions := c.Questions()
	require.Len(t, questions, 1, "a greeting card's answers must be replayed as a question")
	assert.JSONEq(t, `{"color":"green-v"}`, questions[0])
}

func TestInteractive_EmptyAnswerSetSendsNothing(t *testing.T) {
	// Malformed card content: warning, empty answers, no follow-up.
	c := testutil.NewScriptClient()
	c.SetStart(testutil.NewActivityBuilder().Text("Welcome!").Build())
	c.AddResponse("pick", testutil.NewActivityBuilder().Text("Choose:").AdaptiveCard("garbage").Build())

	var out bytes.Buffer
	r := newTestRunner(c, strings.NewReader("pick\n"), &out, t.TempDir())

	require.NoError(t, r.RunInteractive(context.Background()))
	assert.Equal(t, []string{"pick"}, c.Questions())
}
