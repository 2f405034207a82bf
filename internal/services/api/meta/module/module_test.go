package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videobot/internal/modkit"
	phttp "videobot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestModule_MountsUnderPrefix(t *testing.T) {
	m := New(modkit.Deps{})
	assert.Equal(t, "meta", m.Name())
	assert.Nil(t, m.Ports())

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ServiceName)

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
	assert.True(t, strings.Contains(rr.Body.String(), `"skipped"`), rr.Body.String())
}

func TestModule_PrefixOverride(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithPrefix("/status"))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
