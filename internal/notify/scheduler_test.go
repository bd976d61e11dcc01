package notify

import (
	"strings"
	"testing"

	"github.com/pathakanu/medibot/internal/model"
)

func TestFormatDigest(t *testing.T) {
	t.Parallel()

	digest := FormatDigest([]model.Reminder{
		{Name: "Take pill", Time: "09:00"},
		{Name: "Evening walk", Time: "19:00"},
	})

	for _, want := range []string{"1. Take pill at 09:00", "2. Evening walk at 19:00", "Good morning"} {
		if !strings.Contains(digest, want) {
			t.Fatalf("digest %q missing %q", digest, want)
		}
	}
}

func TestNormalizeWhatsAppAddress(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                   "",
		"whatsapp:+15551234": "whatsapp:+15551234",
		"+15551234":          "whatsapp:+15551234",
		"15551234":           "whatsapp:+15551234",
		"  +15551234  ":      "whatsapp:+15551234",
	}
	for input, want := range cases {
		if got := normalizeWhatsAppAddress(input); got != want {
			t.Fatalf("normalizeWhatsAppAddress(%q) = %q, want %q", input, got, want)
		}
	}
}
