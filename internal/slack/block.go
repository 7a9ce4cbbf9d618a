package slack

import (
	"encoding/json"
	"fmt"

	"quill.fyi/relay/internal/papers"
)

// Block Kit fragments, shaped for the webhook payload. Only the subset the
// relay emits is modeled.

type TextObject struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Emoji    *bool  `json:"emoji,omitempty"`
	Verbatim *bool  `json:"verbatim,omitempty"`
}

type Button struct {
	Type     string     `json:"type"`
	Text     TextObject `json:"text"`
	ActionID string     `json:"action_id"`
	URL      string     `json:"url,omitempty"`
	Style    string     `json:"style,omitempty"`
}

type Section struct {
	Type      string     `json:"type"`
	Text      TextObject `json:"text"`
	BlockID   string     `json:"block_id,omitempty"`
	Accessory *Button    `json:"accessory,omitempty"`
}

type Actions struct {
	Type     string   `json:"type"`
	Elements []Button `json:"elements"`
}

type payload struct {
	Blocks []any `json:"blocks"`
}

func markdown(text string) TextObject {
	verbatim := true
	return TextObject{
		Type:     "mrkdwn",
		Text:     text,
		Verbatim: &verbatim,
	}
}

func plain(text string, emoji bool) TextObject {
	obj := TextObject{
		Type: "plain_text",
		Text: text,
	}
	if emoji {
		obj.Emoji = &emoji
	}
	return obj
}

func button(text, actionID, url string) Button {
	return Button{
		Type:     "button",
		Text:     plain(text, true),
		ActionID: actionID,
		URL:      url,
	}
}

// BuildPayload renders the webhook JSON body for one paper: a section with
// the message text and a category button, then an actions row linking the
// abstract page and the PDF.
func BuildPayload(paper papers.Paper, text string) (string, error) {
	category := button(
		paper.Category.Name,
		paper.URL,
		fmt.Sprintf("https://arxiv.org/list/%s/recent", paper.Category.Name),
	)

	section := Section{
		Type:      "section",
		Text:      markdown(text),
		BlockID:   paper.URL,
		Accessory: &category,
	}

	web := button(":link: Open Web", "b_"+paper.URL, paper.URL)
	web.Style = "primary"
	pdf := button(":pdf: Open PDF", "b_"+paper.PDFURL, paper.PDFURL)
	pdf.Style = "primary"

	actions := Actions{
		Type:     "actions",
		Elements: []Button{web, pdf},
	}

	raw, err := json.Marshal(payload{Blocks: []any{section, actions}})
	if err != nil {
		return "", fmt.Errorf("marshal block payload: %w", err)
	}
	return string(raw), nil
}
