package templates

import (
	"strings"
	"testing"
)

func TestRenderNotificationHTML(t *testing.T) {
	html, err := RenderNotificationHTML(NotificationEmailData{
		RecipientName:    "Priya",
		NotificationType: NotificationTypeHandover,
		Heading:          "Shift handover: Night Shift",
		Lines:            []string{"A shift handover for 'Night Shift' is waiting for your acknowledgement."},
		ActionLink:       "https://app.yardsync.io/handovers",
		ActionLabel:      "Open Handover",
	})
	if err != nil {
		t.Fatalf("RenderNotificationHTML returned error: %v", err)
	}
	for _, want := range []string{"Priya", "Shift handover: Night Shift", "Open Handover", "https://app.yardsync.io/handovers"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderNotificationHTMLWithoutRecipientOrAction(t *testing.T) {
	html, err := RenderNotificationHTML(NotificationEmailData{
		NotificationType: NotificationTypeSupport,
		Heading:          "New contact form submission",
		Lines:            []string{"From: A Carrier <ops@carrier.example>"},
	})
	if err != nil {
		t.Fatalf("RenderNotificationHTML returned error: %v", err)
	}
	if !strings.Contains(html, "Hello,") {
		t.Error("rendered email should fall back to a generic greeting")
	}
	if strings.Contains(html, "cta-button\" href") {
		t.Error("rendered email should omit the action button when no link is set")
	}
}

func TestRenderNotificationHTMLEscapesContent(t *testing.T) {
	html, err := RenderNotificationHTML(NotificationEmailData{
		Heading: "Heads up",
		Lines:   []string{"<script>alert(1)</script>"},
	})
	if err != nil {
		t.Fatalf("RenderNotificationHTML returned error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("line content must be HTML-escaped")
	}
}
