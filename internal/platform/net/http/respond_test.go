package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "videobot/internal/platform/errors"
	pnet "videobot/internal/platform/net"

	"github.com/goccy/go-json"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, rr.Body.String())
	}
	return env
}

func reqWithID(id string) *stdhttp.Request {
	r := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	return r.WithContext(pnet.WithRequest(r.Context(), id))
}

func TestWrite_OK(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, reqWithID("rid-1"), OK(map[string]string{"answer": "42"}))

	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type %q", ct)
	}
	env := decode(t, rr)
	if env.RequestID != "rid-1" || env.Status != "OK" || env.Error != "" {
		t.Fatalf("envelope %+v", env)
	}
	data, _ := env.Data.(map[string]any)
	if data["answer"] != "42" {
		t.Fatalf("data %+v", env.Data)
	}
}

func TestWrite_ErrorMapsCode(t *testing.T) {
	tests := []struct {
		err    error
		status int
		field  string
	}{
		{perr.WithField(perr.Validationf("text is required"), "text"), stdhttp.StatusBadRequest, "text"},
		{perr.Unavailablef("breaker open"), stdhttp.StatusServiceUnavailable, ""},
		{perr.New(perr.ErrorCodeTimeout, "query timed out"), stdhttp.StatusGatewayTimeout, ""},
		{stdhttp.ErrBodyNotAllowed, stdhttp.StatusInternalServerError, ""},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		Write(rr, reqWithID("rid-2"), Error(tc.err))
		if rr.Code != tc.status {
			t.Fatalf("%v: status %d want %d", tc.err, rr.Code, tc.status)
		}
		env := decode(t, rr)
		if env.Error == "" || env.StatusCode != tc.status || env.RequestID != "rid-2" || env.Field != tc.field {
			t.Fatalf("%v: envelope %+v", tc.err, env)
		}
		if env.Data != nil {
			t.Fatalf("%v: error envelope carries data %v", tc.err, env.Data)
		}
	}
}

func TestHandle_ResponseShapes(t *testing.T) {
	t.Run("zero status defaults to 200 and headers are copied", func(t *testing.T) {
		h := Handle(func(*stdhttp.Request) Response {
			return Response{Body: "x", Header: stdhttp.Header{"X-Intent": {"total_videos"}}}
		})
		rr := httptest.NewRecorder()
		h(rr, reqWithID(""))
		if rr.Code != stdhttp.StatusOK || rr.Header().Get("X-Intent") != "total_videos" {
			t.Fatalf("got %d headers=%v", rr.Code, rr.Header())
		}
	})

	t.Run("error body wins over status", func(t *testing.T) {
		h := Handle(func(*stdhttp.Request) Response {
			return Response{Status: stdhttp.StatusOK, Body: perr.NotFoundf("nope")}
		})
		rr := httptest.NewRecorder()
		h(rr, reqWithID(""))
		if rr.Code != stdhttp.StatusNotFound {
			t.Fatalf("got %d", rr.Code)
		}
		if env := decode(t, rr); env.Code != perr.ErrorCodeNotFound {
			t.Fatalf("code %v", env.Code)
		}
	})
}
