package snippet

import (
	"fmt"
	"strings"
)

// MarkdownTitle heads a Markdown export document.
const MarkdownTitle = "# Code Snippets"

// Markdown renders the whole collection as one document with a level-2
// section per snippet.
func Markdown(snippets []Snippet) string {
	var b strings.Builder
	b.WriteString(MarkdownTitle)
	b.WriteString("\n\n")
	for i := range snippets {
		b.WriteString(snippets[i].MarkdownSection())
	}
	return b.String()
}

// MarkdownSection renders one snippet: heading, metadata lines, and the code
// in a fence tagged with the snippet's language.
func (s *Snippet) MarkdownSection() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", s.Title)
	fmt.Fprintf(&b, "**Language:** %s  \n", s.Language)
	fmt.Fprintf(&b, "**Category:** %s  \n", s.Category)
	fmt.Fprintf(&b, "**Tags:** %s  \n", s.TagList())
	fmt.Fprintf(&b, "**Description:** %s\n\n", s.DescriptionOrNone())

	fence := codeFence(s.Code)
	fmt.Fprintf(&b, "%s%s\n", fence, s.Language)
	b.WriteString(strings.TrimRight(s.Code, "\n"))
	fmt.Fprintf(&b, "\n%s\n\n", fence)
	return b.String()
}

// codeFence returns a backtick fence longer than any backtick run in code,
// so snippets that contain ``` still render as one block.
func codeFence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}
