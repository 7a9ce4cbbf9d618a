package notify

import (
	"fmt"
	"sort"
	"strings"

	"quill.fyi/relay/internal/papers"
	"quill.fyi/relay/internal/slack"
)

const summaryTrimRunes = 200

// Message pairs a paper with the rendered body to deliver for it.
type Message struct {
	Paper papers.Paper
	Body  string
}

// Score counts how many of the keywords occur in the paper's comment.
// Matching is exact substring, case-sensitive; no keywords means zero.
func Score(paper papers.Paper, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if strings.Contains(paper.Comment, k) {
			count++
		}
	}
	return count
}

// RenderText renders the human-readable message text for one paper: a
// new/updated marker, one star per keyword hit, the title, timestamps, the
// submitter comment and the truncated summary.
func RenderText(paper papers.Paper, keywords []string) string {
	marker := ":up:"
	if paper.Published.Equal(paper.Updated) {
		marker = ":new:"
	}
	stars := strings.Repeat(":star:", Score(paper, keywords))

	times := fmt.Sprintf(
		"published %s updated %s\n",
		paper.Published.Format("2006/01/02 15:04"),
		paper.Updated.Format("2006/01/02 15:04"),
	)
	comment := fmt.Sprintf("> %s\n", paper.Comment)

	summary := paper.Summary
	if runes := []rune(summary); len(runes) > summaryTrimRunes {
		summary = string(runes[:summaryTrimRunes]) + "..."
	}

	return fmt.Sprintf("%s%s *%s*\n%s%s%s", marker, stars, paper.Title, times, comment, summary)
}

// BuildMessages renders one delivery body per paper and orders the result
// by keyword score, highest first. The sort is stable so papers with equal
// scores keep their encounter order.
func BuildMessages(batch []papers.Paper, keywords []string) ([]Message, error) {
	type scored struct {
		score   int
		message Message
	}

	items := make([]scored, 0, len(batch))
	for _, paper := range batch {
		body, err := slack.BuildPayload(paper, RenderText(paper, keywords))
		if err != nil {
			return nil, fmt.Errorf("build payload for %s: %w", paper.URL, err)
		}
		items = append(items, scored{
			score: Score(paper, keywords),
			message: Message{
				Paper: paper,
				Body:  body,
			},
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	messages := make([]Message, 0, len(items))
	for _, item := range items {
		messages = append(messages, item.message)
	}
	return messages, nil
}
