// Package http is the router seam modules mount on, plus the JSON envelope
// every endpoint answers with
package http

import (
	stdhttp "net/http"

	perr "videobot/internal/platform/errors"
	pnet "videobot/internal/platform/net"

	"github.com/goccy/go-json"
)

// Envelope wraps every response body. Errors fill Code, Error and Field;
// successes fill Data.
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce. A Body that is an error
// is rendered as an error envelope and its code picks the status.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		Write(w, r, h(r))
	}
}

// Write renders resp as an envelope tagged with the request id
func Write(w stdhttp.ResponseWriter, r *stdhttp.Request, resp Response) {
	hdr := w.Header()
	for k, vv := range resp.Header {
		hdr[k] = append(hdr[k], vv...)
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := perr.HTTP(err)
		env.StatusCode, env.Code, env.Error, env.Field = status, wire.Code, wire.Message, wire.Field
	} else {
		env.StatusCode, env.Data = resp.Status, resp.Body
		if env.StatusCode == 0 {
			env.StatusCode = stdhttp.StatusOK
		}
	}
	env.Status = stdhttp.StatusText(env.StatusCode)

	hdr.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
