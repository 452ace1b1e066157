package views

import (
	"strings"
	"testing"
)

func TestRenderAppIncludesNotificationBanner(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "petd",
		LeftPane:     "today",
		RightPane:    "detail",
		StatusLine:   "ok",
		Footer:       "q quit",
		Notification: "Bella: heartworm dose due",
	})
	if !strings.Contains(out, "Bella: heartworm dose due") {
		t.Fatalf("notification missing from output:\n%s", out)
	}

	quiet := RenderApp(AppData{Header: "petd", StatusLine: "ok"})
	if strings.Contains(quiet, "Bella") {
		t.Fatalf("unexpected notification in output:\n%s", quiet)
	}
}

func TestRenderMarkdownFallsBackOnEmptyInput(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("blank notes rendered as %q", got)
	}
}
