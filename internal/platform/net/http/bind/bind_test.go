package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "videobot/internal/platform/errors"
)

type question struct {
	Text  string `json:"text" validate:"notblank,max=20"`
	Limit int    `json:"limit" validate:"omitempty,min=1"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[question](post(`{"text":"сколько видео","limit":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "сколько видео" || got.Limit != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_Failures(t *testing.T) {
	tests := []struct {
		name  string
		req   *http.Request
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"empty body", httptest.NewRequest(http.MethodPost, "/", http.NoBody), perr.ErrorCodeJSON, "", "empty body"},
		{"malformed", post(`{"text":`), perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", post(`{"text":"a","zzz":1}`), perr.ErrorCodeJSON, "", "invalid JSON"},
		{"trailing data", post(`{"text":"a"} {"text":"b"}`), perr.ErrorCodeJSON, "", "trailing"},
		{"blank text", post(`{"text":"   "}`), perr.ErrorCodeValidation, "text", "text must not be blank"},
		{"too long", post(`{"text":"` + strings.Repeat("a", 21) + `"}`), perr.ErrorCodeValidation, "text", "text must be at most 20"},
		{"min", post(`{"text":"a","limit":-1}`), perr.ErrorCodeValidation, "limit", "limit must be at least 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[question](tc.req)
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code %v want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("message %q does not contain %q", err.Error(), tc.msg)
			}
			if e, _ := perr.As(err); e.Field() != tc.field {
				t.Fatalf("field %q want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	_, err := ParseJSON[question](post(`{"text":"abcdefgh"}`), JSONOptions{MaxBytes: 8})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected truncated body to fail as JSON, got %v", err)
	}
}

func TestParseJSON_AllowUnknown(t *testing.T) {
	got, err := ParseJSON[question](post(`{"text":"a","extra":true}`), JSONOptions{})
	if err != nil || got.Text != "a" {
		t.Fatalf("got %+v err=%v", got, err)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if err := Validate(42); perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Get() {
		t.Fatalf("expected singleton")
	}
}

func TestFieldAndMessage_Plain(t *testing.T) {
	f, m := FieldAndMessage(perr.InvalidArgf("x"))
	if f != "" || m != "x" {
		t.Fatalf("got %q %q", f, m)
	}
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
}
