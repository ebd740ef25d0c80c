package card

import (
	"encoding/json"
	"fmt"
)

// Input element kinds the resolver knows how to collect.
const (
	InputText      = "Input.Text"
	InputNumber    = "Input.Number"
	InputChoiceSet = "Input.ChoiceSet"
	InputToggle    = "Input.Toggle"
	InputDate      = "Input.Date"
	InputTime      = "Input.Time"
)

// Choice is one entry of a single-choice input. Title is shown to the
// operator; Value is what the answer set records.
type Choice struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Element is a single card body element. The type is deliberately wide: one
// struct covers every element kind we interpret, with unused fields left at
// their zero value. Container-style elements nest further elements in Items.
type Element struct {
	Type        string    `json:"type"`
	ID          string    `json:"id,omitempty"`
	Text        string    `json:"text,omitempty"`
	Label       string    `json:"label,omitempty"`
	Title       string    `json:"title,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Value       string    `json:"value,omitempty"`
	ValueOn     string    `json:"valueOn,omitempty"`
	ValueOff    string    `json:"valueOff,omitempty"`
	Choices     []Choice  `json:"choices,omitempty"`
	Items       []Element `json:"items,omitempty"`
}

// IsInput reports whether the element is one of the collectable input kinds.
func (e Element) IsInput() bool {
	switch e.Type {
	case InputText, InputNumber, InputChoiceSet, InputToggle, InputDate, InputTime:
		return true
	default:
		return false
	}
}

// Prompt returns the label shown when asking the operator for this field.
func (e Element) Prompt() string {
	switch {
	case e.Label != "":
		return e.Label
	case e.Title != "":
		return e.Title
	case e.Placeholder != "":
		return e.Placeholder
	default:
		return e.ID
	}
}

// Card is the parsed adaptive card body.
type Card struct {
	Type    string    `json:"type"`
	Version string    `json:"version,omitempty"`
	Body    []Element `json:"body"`
}

// Inputs returns the collectable input elements of the card in document
// order, walking container items recursively.
func (c *Card) Inputs() []Element {
	var inputs []Element
	var walk func(elements []Element)
	walk = func(elements []Element) {
		for _, e := range elements {
			if e.IsInput() {
				inputs = append(inputs, e)
				continue
			}
			if len(e.Items) > 0 {
				walk(e.Items)
			}
		}
	}
	walk(c.Body)
	return inputs
}

// Parse converts raw attachment content (typically a map produced by JSON
// decoding) into a Card. Content that cannot be re-serialized, does not
// decode into a card, or carries no body is reported as an error.
func Parse(content any) (*Card, error) {
	if content == nil {
		return nil, fmt.Errorf("card content is empty")
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("serialize card content: %w", err)
	}
	var c Card
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode card content: %w", err)
	}
	if len(c.Body) == 0 {
		return nil, fmt.Errorf("card has no body")
	}
	return &c, nil
}
