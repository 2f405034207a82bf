package raw

import "testing"

func TestGet(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", "  json ")
	t.Setenv("LOG_LEVEL", "   ")
	if got := c.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get(FORMAT) = %q", got)
	}
	if got := c.Get("LEVEL", "debug"); got != "debug" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
	if got := c.Get("SERVICE", "videobot"); got != "videobot" {
		t.Fatalf("unset value should fall back, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"No", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("LOG_CALLER", tc.val)
			if got := New().Prefix("LOG_").GetBool("CALLER", tc.def); got != tc.want {
				t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"", 7},
		{"10", 10},
		{" 3 ", 3},
		{"0", 0},
		{"-2", 7},
		{"5x", 7},
		{"1.5", 7},
	}
	for _, tc := range tests {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("LOG_SAMPLE_EVERY", tc.val)
			if got := New().Prefix("LOG_").GetInt("SAMPLE_EVERY", 7); got != tc.want {
				t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
			}
		})
	}
}

func TestPrefixNests(t *testing.T) {
	t.Setenv("CORE_BOT_DEBUG", "true")
	if !New().Prefix("CORE_").Prefix("BOT_").GetBool("DEBUG", false) {
		t.Fatal("nested prefix did not resolve CORE_BOT_DEBUG")
	}
}
