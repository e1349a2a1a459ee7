package utils

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRenderMarkdown(t *testing.T) {
	c := qt.New(t)

	out := RenderMarkdown("Some days are **harder** than others")
	c.Assert(out, qt.Equals, "<p>Some days are <strong>harder</strong> than others</p>\n")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	c := qt.New(t)

	out := RenderMarkdown(`hello <script>alert(1)</script> [x](javascript:alert(1))`)
	c.Assert(strings.Contains(out, "<script"), qt.IsFalse)
	c.Assert(strings.Contains(out, "javascript:"), qt.IsFalse)
}

func TestRenderMarkdownLinks(t *testing.T) {
	c := qt.New(t)

	out := RenderMarkdown("see https://example.com/help")
	c.Assert(out, qt.Contains, `href="https://example.com/help"`)
	c.Assert(out, qt.Contains, `target="_blank"`)
	c.Assert(out, qt.Contains, "noreferrer")
}
