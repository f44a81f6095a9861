// Package termview renders view trees as styled terminal text.
package termview

import (
	"html"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/abhisek/quizclient/internal/ui/components"
	"github.com/abhisek/quizclient/internal/ui/theme"
	"github.com/abhisek/quizclient/internal/view"
)

// Disclosure glyphs for the raw dump.
const (
	Collapsed = "▸"
	Expanded  = "▾"
)

// EmptyAnswerHint fills an untouched free-text answer.
const EmptyAnswerHint = "(type your answer)"

var stripPolicy = bluemonday.StrictPolicy()

// Strip removes all markup from an HTML fragment and decodes entities.
func Strip(fragment string) string {
	return html.UnescapeString(stripPolicy.Sanitize(fragment))
}

// Slots replace the rendering of elements whose data-slot matches a key.
// The quiz screen uses them to show live text editors.
type Slots map[string]string

// Render draws n within width columns.
func Render(n *view.Node, width int, slots Slots) string {
	return RenderWithKeys(n, width, slots, nil)
}

// RenderWithKeys is Render with a shortcut label for each button id.
func RenderWithKeys(n *view.Node, width int, slots Slots, keys map[string]string) string {
	r := renderer{width: max(width, 10), slots: slots, keys: keys}
	return r.block(n)
}

type renderer struct {
	width int
	slots Slots
	keys  map[string]string
}

func (r renderer) block(n *view.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case view.KindText:
		return n.Text
	case view.KindRaw:
		return Strip(n.Text)
	}

	if slot, ok := n.Attr(view.AttrSlot); ok {
		if s, ok := r.slots[slot]; ok {
			return s
		}
	}

	switch {
	case n.ID() == view.KeywordsBannerID:
		return r.banner(n)
	case n.HasAttr(view.AttrQuestionID):
		return r.question(n)
	case n.Tag == "button":
		return r.button(n)
	case n.Tag == "table":
		return r.table(n)
	case n.Tag == "details":
		return r.details(n)
	case n.HasClass("results-error"):
		return theme.ErrorText.Width(r.width).Render(inline(n))
	case n.HasClass("results-message"):
		return theme.Message.Width(r.width).Render(inline(n))
	case n.Tag == "pre":
		return theme.Body.Render(inline(n))
	case n.Tag == "p", n.Tag == "b", n.Tag == "i", n.Tag == "strong":
		return lipgloss.NewStyle().Width(r.width).Render(r.inlineStyled(n))
	}

	return r.children(n)
}

func (r renderer) children(n *view.Node) string {
	var parts []string
	var buttons []string
	flush := func() {
		if len(buttons) > 0 {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))
			buttons = nil
		}
	}
	for _, c := range n.Children {
		s := r.block(c)
		if c.Kind == view.KindElement && c.Tag == "button" {
			buttons = append(buttons, s, " ")
			continue
		}
		flush()
		if s != "" {
			parts = append(parts, s)
		}
	}
	flush()
	return strings.Join(parts, "\n")
}

func (r renderer) banner(n *view.Node) string {
	heading := ""
	if b := n.Find(view.ByTag("b")); b != nil {
		heading = theme.Strong.Render(b.TextContent())
	}
	content := ""
	if c := n.Find(view.ByID(view.KeywordsContentID)); c != nil {
		if c.Find(view.ByClass("placeholder")) != nil {
			content = theme.Hint.Render(c.TextContent())
		} else {
			content = theme.Body.Render(Strip(c.TextContent()))
		}
	}
	inner := r.width - 4
	return theme.Banner.Width(inner + 2).Render(heading + "\n" + lipgloss.NewStyle().Width(inner).Render(content))
}

func (r renderer) question(n *view.Node) string {
	inner := r.width - 4
	var lines []string

	if p := n.Find(view.ByClass("prompt")); p != nil {
		lines = append(lines, theme.Prompt.Width(inner).Render(p.TextContent()))
	}
	if s := n.Find(view.ByClass("stats")); s != nil {
		lines = append(lines, theme.Stats.Width(inner).Render(s.TextContent()))
	}

	focused := n.Find(view.ByAttr(view.AttrFocus)) != nil

	if group := n.Find(view.ByClass("choices")); group != nil {
		lines = append(lines, radioGroup(group).View())
	} else if ta := n.Find(view.ByTag("textarea")); ta != nil {
		lines = append(lines, r.textAnswer(ta, inner))
	}

	card := theme.Card
	if focused {
		card = theme.FocusedCard
	}
	return card.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func radioGroup(group *view.Node) components.RadioGroup {
	labels := group.FindAll(view.ByTag("label"))
	options := make([]string, len(labels))
	g := components.NewRadioGroup(options)
	for i, label := range labels {
		options[i] = strings.TrimSpace(label.TextContent())
		in := label.Find(view.ByTag("input"))
		if in.HasAttr("checked") {
			g.Selected = i
		}
		if in.HasAttr(view.AttrFocus) {
			g.Cursor = i
		}
	}
	return g
}

func (r renderer) textAnswer(ta *view.Node, width int) string {
	if slot, ok := ta.Attr(view.AttrSlot); ok {
		if s, ok := r.slots[slot]; ok {
			return s
		}
	}
	text := ta.TextContent()
	if text == "" {
		return theme.TextAnswer.Width(width).Render(theme.Hint.Render(EmptyAnswerHint))
	}
	return theme.TextAnswer.Width(width).Render(text)
}

func (r renderer) button(n *view.Node) string {
	b := components.NewButton(n.TextContent(), !n.HasAttr("disabled"))
	b.Key = r.keys[n.ID()]
	return b.View()
}

func (r renderer) details(n *view.Node) string {
	summary := ""
	if s := n.Find(view.ByTag("summary")); s != nil {
		summary = s.TextContent()
	}
	if !n.HasAttr("open") {
		return theme.Hint.Render(Collapsed + " " + summary)
	}
	body := ""
	if pre := n.Find(view.ByTag("pre")); pre != nil {
		body = theme.Raw.Render(pre.TextContent())
	}
	return theme.Hint.Render(Expanded+" "+summary) + "\n" + body
}

func (r renderer) table(n *view.Node) string {
	var header []string
	for _, th := range n.FindAll(view.ByTag("th")) {
		header = append(header, th.TextContent())
	}

	type tableRow struct {
		cells   []string
		correct bool
	}
	var rows []tableRow
	if body := n.Find(view.ByTag("tbody")); body != nil {
		for _, tr := range body.Children {
			var cells []string
			for _, td := range tr.Children {
				cells = append(cells, Strip(td.TextContent()))
			}
			rows = append(rows, tableRow{cells: cells, correct: tr.HasClass(view.ClassRowCorrect)})
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row.cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	// The last column takes whatever width is left.
	if last := len(widths) - 1; last >= 0 {
		used := 0
		for _, w := range widths[:last] {
			used += w + 3
		}
		widths[last] = max(8, min(widths[last], r.width-used))
	}

	format := func(cells []string) string {
		out := make([]string, len(widths))
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			out[i] = lipgloss.NewStyle().Width(widths[i]).MaxHeight(1).Render(c)
		}
		return strings.Join(out, " │ ")
	}

	lines := []string{theme.Strong.Render(format(header))}
	for _, row := range rows {
		style := theme.IncorrectRow
		if row.correct {
			style = theme.CorrectRow
		}
		lines = append(lines, style.Render(format(row.cells)))
	}
	return strings.Join(lines, "\n")
}

// inlineStyled renders phrasing content, bolding strong and b children.
func (r renderer) inlineStyled(n *view.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		switch {
		case c.Kind == view.KindText:
			b.WriteString(c.Text)
		case c.Kind == view.KindRaw:
			b.WriteString(Strip(c.Text))
		case c.Tag == "strong" || c.Tag == "b":
			b.WriteString(theme.Strong.Render(inline(c)))
		case c.Tag == "i":
			b.WriteString(theme.Hint.Render(inline(c)))
		default:
			b.WriteString(inline(c))
		}
	}
	return b.String()
}

func inline(n *view.Node) string {
	var b strings.Builder
	n.Walk(func(c *view.Node) bool {
		switch c.Kind {
		case view.KindText:
			b.WriteString(c.Text)
		case view.KindRaw:
			b.WriteString(Strip(c.Text))
		}
		return true
	})
	return b.String()
}
