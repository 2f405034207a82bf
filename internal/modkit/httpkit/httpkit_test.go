package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "videobot/internal/platform/errors"
	phttp "videobot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type echoIn struct {
	Text string `json:"text" validate:"notblank"`
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func serve(r Router, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestMountAPIV1_WithCommonStack(t *testing.T) {
	r := newRouter()
	var reqID string
	MountAPIV1(r, CommonStack(StackOptions{Timeout: time.Second}), func(api Router) {
		PostJSON(api, "/echo", func(req *http.Request, in echoIn) (any, error) {
			reqID = chimw.GetReqID(req.Context())
			return in.Text, nil
		})
		Get(api, "/boom", func(*http.Request) (any, error) { panic("x") })
		Get(api, "/missing", func(*http.Request) (any, error) { return nil, perr.NotFoundf("gone") })
	})

	rr := serve(r, http.MethodPost, "/api/v1/echo", `{"text":"привет"}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "привет") {
		t.Fatalf("echo: %d %s", rr.Code, rr.Body.String())
	}
	if reqID == "" {
		t.Fatalf("expected request id from the stack")
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("expected NoCache headers")
	}

	if rr := serve(r, http.MethodPost, "/api/v1/echo", `{"text":" "}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("blank: %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/api/v1/boom", ""); rr.Code != http.StatusInternalServerError {
		t.Fatalf("panic: %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/api/v1/missing", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("not found: %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/api/v2/missing", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unversioned: %d", rr.Code)
	}
}

func TestMountAPI_TrimsVersion(t *testing.T) {
	r := newRouter()
	MountAPI(r, "/v2/", nil, func(api Router) {
		Get(api, "/x", func(*http.Request) (any, error) { return 1, nil })
	})
	if rr := serve(r, http.MethodGet, "/api/v2/x", ""); rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
}

func TestAliases(t *testing.T) {
	r := newRouter()
	r.Get("/ok", Handle(func(*http.Request) Response { return OK("fine") }))
	r.Get("/err", Handle(func(*http.Request) Response { return Error(perr.Unavailablef("down")) }))

	if rr := serve(r, http.MethodGet, "/ok", ""); rr.Code != http.StatusOK {
		t.Fatalf("ok: %d", rr.Code)
	}
	if rr := serve(r, http.MethodGet, "/err", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("err: %d", rr.Code)
	}
}

func TestCommonStack_DefaultTimeout(t *testing.T) {
	if got := len(CommonStack(StackOptions{})); got == 0 {
		t.Fatalf("empty stack")
	}
}
