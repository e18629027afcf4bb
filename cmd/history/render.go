package main

import (
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"

	"github-agent/internal/conversation"
)

const cellWidth = 60

func renderSession(w io.Writer, sess conversation.Session, turns int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Session", sess.SessionID},
		{"User", sess.Username},
		{"Created", sess.CreatedAt.UTC().Format(time.RFC3339)},
		{"Updated", sess.UpdatedAt.UTC().Format(time.RFC3339)},
		{"Turns", turns},
	})
	t.Render()
}

func renderTurns(w io.Writer, turns []conversation.Turn) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Timestamp", "Conv ID", "Query", "Tools", "Answer"})
	for i, turn := range turns {
		t.AppendRow(table.Row{
			i + 1,
			turn.Timestamp,
			turn.ConvID,
			clip(turn.UserQuery),
			len(turn.AssistantOutput.ToolsResponses),
			clip(turn.AssistantOutput.FinalAssistantResponse),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(turns)})
	t.Render()
}

// clip flattens s to one line of at most cellWidth runes.
func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= cellWidth {
		return s
	}
	r := []rune(s)
	return string(r[:cellWidth-3]) + "..."
}
