// SPDX-License-Identifier: AGPL-3.0-or-later

package conformance

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var feedbackLoopExpr = regexp.MustCompile(`(?i)\bfeedback loop\b`)

// outline is what the structure checks need from a markdown body.
type outline struct {
	h2           map[string]bool
	feedbackLoop bool
}

func parseOutline(body string) outline {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	o := outline{h2: map[string]bool{}}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Blockquote, *ast.List:
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			title := strings.TrimSpace(inlineText(node, src))
			if node.Level == 2 {
				o.h2[title] = true
			}
			if node.Level >= 2 && feedbackLoopExpr.MatchString(title) {
				o.feedbackLoop = true
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if node.Parent() == doc && hasBoldLabelLine(node, src) {
				o.feedbackLoop = true
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return o
}

// hasBoldLabelLine reports whether any line of the paragraph is a single
// "**" strong-emphasis label mentioning the feedback loop, optionally
// followed by a colon.
func hasBoldLabelLine(p *ast.Paragraph, src []byte) bool {
	var line []ast.Node
	check := func() bool {
		defer func() { line = line[:0] }()
		if len(line) == 0 {
			return false
		}
		em, ok := line[0].(*ast.Emphasis)
		if !ok || em.Level != 2 || delimiter(em, src) != '*' || !feedbackLoopExpr.MatchString(inlineText(em, src)) {
			return false
		}
		var rest strings.Builder
		for _, n := range line[1:] {
			t, ok := n.(*ast.Text)
			if !ok {
				return false
			}
			rest.Write(t.Segment.Value(src))
		}
		tail := strings.TrimSpace(rest.String())
		return tail == "" || tail == ":"
	}

	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		line = append(line, c)
		if t, ok := c.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			if check() {
				return true
			}
		}
	}
	return check()
}

// delimiter returns the emphasis marker byte preceding the first text below em.
func delimiter(em *ast.Emphasis, src []byte) byte {
	for c := em.FirstChild(); c != nil; c = c.FirstChild() {
		if t, ok := c.(*ast.Text); ok {
			if t.Segment.Start == 0 {
				return 0
			}
			return src[t.Segment.Start-1]
		}
	}
	return 0
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
