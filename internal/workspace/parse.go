package workspace

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnrecognizedShape is returned when a chat payload matches none of
// the known storage formats. Callers can treat it as "no data" or surface
// it; it is never silently swallowed here.
var ErrUnrecognizedShape = errors.New("unrecognized chat payload shape")

// PayloadShape classifies the JSON layout of a stored chat payload.
// Cursor has shipped several formats over time; each one gets exactly one
// handler instead of ad-hoc sniffing at every call site.
type PayloadShape int

const (
	ShapeUnknown PayloadShape = iota
	// ShapePromptArray is a flat array of prompt records: the
	// aiService.prompts format.
	ShapePromptArray
	// ShapeRoleArray is a flat array of role-tagged chat messages.
	ShapeRoleArray
	// ShapeTabs is an object keyed by tab ID, each tab holding a title
	// and a messages array.
	ShapeTabs
	// ShapeMessagesObject is an object with a top-level messages array.
	ShapeMessagesObject
)

// String returns the shape name for diagnostics.
func (s PayloadShape) String() string {
	switch s {
	case ShapePromptArray:
		return "prompt-array"
	case ShapeRoleArray:
		return "role-array"
	case ShapeTabs:
		return "tabs"
	case ShapeMessagesObject:
		return "messages-object"
	default:
		return "unknown"
	}
}

// promptRecord is the wire form of one aiService.prompts entry.
// commandType has been observed as both a number and a string across
// Cursor versions, so it is decoded leniently.
type promptRecord struct {
	Text        string          `json:"text"`
	Timestamp   int64           `json:"timestamp"`
	CommandType json.RawMessage `json:"commandType"`
}

// chatMessage is the wire form of one chat message. Newer formats store
// content as an array of typed parts, older ones as a plain string, and
// some carry the text under "text" instead.
type chatMessage struct {
	Role    string          `json:"role"`
	Text    string          `json:"text"`
	Content json.RawMessage `json:"content"`
}

type chatTab struct {
	ChatTitle string            `json:"chatTitle"`
	Messages  []json.RawMessage `json:"messages"`
}

// ClassifyPayload inspects a raw payload and reports its shape without
// fully decoding it.
func ClassifyPayload(raw []byte) PayloadShape {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		if len(elems) == 0 {
			return ShapePromptArray
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(elems[0], &probe); err != nil {
			return ShapeUnknown
		}
		if _, ok := probe["role"]; ok {
			return ShapeRoleArray
		}
		if _, ok := probe["text"]; ok {
			return ShapePromptArray
		}
		return ShapeUnknown
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ShapeUnknown
	}
	if _, ok := obj["tabs"]; ok {
		return ShapeTabs
	}
	if _, ok := obj["messages"]; ok {
		return ShapeMessagesObject
	}
	return ShapeUnknown
}

// ParsePrompts classifies a payload once and dispatches to the handler
// for its shape. User-authored messages become Prompts; assistant output
// is not a prompt. Malformed individual records are skipped, but an
// unrecognized overall shape returns ErrUnrecognizedShape.
func ParsePrompts(raw []byte) ([]Prompt, error) {
	switch ClassifyPayload(raw) {
	case ShapePromptArray:
		return parsePromptArray(raw)
	case ShapeRoleArray:
		return parseRoleArray(raw)
	case ShapeTabs:
		return parseTabs(raw)
	case ShapeMessagesObject:
		return parseMessagesObject(raw)
	default:
		return nil, ErrUnrecognizedShape
	}
}

func parsePromptArray(raw []byte) ([]Prompt, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	var prompts []Prompt
	for _, elem := range elems {
		var rec promptRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			continue
		}
		prompts = append(prompts, Prompt{
			Text:        rec.Text,
			Timestamp:   rec.Timestamp,
			CommandType: commandTypeString(rec.CommandType),
		})
	}
	return prompts, nil
}

func parseRoleArray(raw []byte) ([]Prompt, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	return promptsFromMessages(elems), nil
}

func parseTabs(raw []byte) ([]Prompt, error) {
	var payload struct {
		Tabs map[string]chatTab `json:"tabs"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	var prompts []Prompt
	for _, tab := range payload.Tabs {
		prompts = append(prompts, promptsFromMessages(tab.Messages)...)
	}
	return prompts, nil
}

func parseMessagesObject(raw []byte) ([]Prompt, error) {
	var payload struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return promptsFromMessages(payload.Messages), nil
}

func promptsFromMessages(elems []json.RawMessage) []Prompt {
	var prompts []Prompt
	for _, elem := range elems {
		var msg chatMessage
		if err := json.Unmarshal(elem, &msg); err != nil {
			continue
		}
		if msg.Role != "user" {
			continue
		}
		text := messageText(msg)
		if text == "" {
			continue
		}
		prompts = append(prompts, Prompt{Text: text, CommandType: "chat"})
	}
	return prompts
}

// messageText resolves the message body across format generations: a
// "text" field, a plain-string "content", or a content array of typed
// parts.
func messageText(msg chatMessage) string {
	if msg.Text != "" {
		return msg.Text
	}
	if len(msg.Content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(msg.Content, &s); err == nil {
		return s
	}

	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(msg.Content, &parts); err != nil {
		return ""
	}

	var texts []string
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// commandTypeString renders the lenient commandType field. Missing values
// become "unknown" so downstream grouping always has a label.
func commandTypeString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "unknown"
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "unknown"
		}
		return s
	}

	return strings.TrimSpace(string(raw))
}
