package config

import "testing"

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: []string{"boss@example.com", "ops@example.com"}}

	if !cfg.IsAdminEmail("boss@example.com") {
		t.Error("listed email rejected")
	}
	if !cfg.IsAdminEmail("BOSS@example.com") {
		t.Error("allow-list should be case-insensitive")
	}
	if cfg.IsAdminEmail("jane@example.com") {
		t.Error("unlisted email accepted")
	}
	if (&Config{}).IsAdminEmail("boss@example.com") {
		t.Error("empty allow-list accepted an email")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a@x.com, ,b@x.com ,")
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != "b@x.com" {
		t.Errorf("splitCSV = %v", got)
	}
	if splitCSV("") != nil {
		t.Error("empty input should yield nil")
	}
}
