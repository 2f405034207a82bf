package version

import "testing"

func TestInfo(t *testing.T) {
	got := Info("videobot-api")
	if got.Service != "videobot-api" || got.Version != "dev" || got.Commit != "none" || got.Date != "unknown" {
		t.Fatalf("unexpected info %+v", got)
	}
	if s := got.String(); s != "videobot-api dev (none, unknown)" {
		t.Fatalf("String() = %q", s)
	}
}
