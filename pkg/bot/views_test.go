package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"flowrelay/pkg/models"
)

func TestApprovalBanner(t *testing.T) {
	reason := "missing paperwork"

	if got := approvalBanner(models.StatusApproved, nil); got != "" {
		t.Fatalf("approved accounts get no banner, got %q", got)
	}
	if got := approvalBanner(models.StatusPending, nil); !strings.Contains(got, "pending") {
		t.Fatalf("pending banner = %q", got)
	}
	if got := approvalBanner(models.StatusRejected, &reason); !strings.Contains(got, reason) {
		t.Fatalf("rejected banner must surface the notes, got %q", got)
	}
	if got := approvalBanner(models.StatusSuspended, &reason); !strings.Contains(got, reason) {
		t.Fatalf("suspended banner must surface the notes, got %q", got)
	}
	if got := approvalBanner(models.AccountStatus("frozen"), nil); !strings.Contains(got, "frozen") {
		t.Fatalf("unknown status must be named explicitly, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a very long address line", 10); utf8.RuneCountInString(got) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q", got)
	}
}

func TestTruncateKeepsMultibyteTextValid(t *testing.T) {
	cases := []string{
		"Новосибирская область, улица Ленина 15",
		"東京都港区六本木六丁目十番一号六本木ヒルズ森タワー",
		"Überlängenstraße 12, München",
	}
	for _, s := range cases {
		got := truncate(s, 20)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q) = %q is not valid UTF-8", s, got)
		}
		if utf8.RuneCountInString(got) != 20 || !strings.HasSuffix(got, "…") {
			t.Fatalf("truncate(%q) = %q, want 20 runes ending in the ellipsis", s, got)
		}
	}
	if got := truncate("北京市", 10); got != "北京市" {
		t.Fatalf("short multibyte text must pass through, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2026-08-01T12:30:00"); got != "2026-08-01" {
		t.Fatalf("formatDate = %q", got)
	}
	if got := formatDate(""); got != "—" {
		t.Fatalf("formatDate empty = %q", got)
	}
}

func TestParseApproval(t *testing.T) {
	id, status, ok := parseApproval("apu_15_suspended", "apu_")
	if !ok || id != 15 || status != models.StatusSuspended {
		t.Fatalf("parseApproval = %d %q %v", id, status, ok)
	}
	if _, _, ok := parseApproval("apu_15_frozen", "apu_"); ok {
		t.Fatal("unknown status must not parse")
	}
	if _, _, ok := parseApproval("apu_xx_approved", "apu_"); ok {
		t.Fatal("bad id must not parse")
	}
}
