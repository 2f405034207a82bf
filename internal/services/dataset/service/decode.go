package service

import (
	"bytes"
	"io"

	perr "videobot/internal/platform/errors"
	"videobot/internal/platform/net/http/bind"
	"videobot/internal/services/dataset/domain"

	"github.com/goccy/go-json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads {"videos":[...]} or a bare [...] array; a leading BOM is ignored
func Decode(r io.Reader) ([]domain.Video, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read dataset")
	}
	raw = bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if len(raw) == 0 {
		return nil, perr.JSONErrf("dataset is empty")
	}

	switch raw[0] {
	case '[':
		var vs []domain.Video
		if err := json.Unmarshal(raw, &vs); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "invalid dataset JSON")
		}
		return vs, nil
	case '{':
		var doc struct {
			Videos *[]domain.Video `json:"videos"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "invalid dataset JSON")
		}
		if doc.Videos == nil {
			return nil, perr.JSONErrf(`unexpected dataset format: want {"videos": [...]} or [...]`)
		}
		return *doc.Videos, nil
	default:
		return nil, perr.JSONErrf(`unexpected dataset format: want {"videos": [...]} or [...]`)
	}
}

// Validate checks every record before anything is written; the error names
// the first offending video by position and id
func Validate(vs []domain.Video) error {
	for i := range vs {
		v := &vs[i]
		if err := bind.Validate(v); err != nil {
			return perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "video #%d (%s)", i, v.ID), fieldOf(err))
		}
		for j := range v.Snapshots {
			if v.Snapshots[j].VideoID != v.ID {
				return perr.WithField(
					perr.Validationf("video #%d (%s): snapshot %s belongs to video %s", i, v.ID, v.Snapshots[j].ID, v.Snapshots[j].VideoID),
					"video_id",
				)
			}
		}
	}
	return nil
}

func fieldOf(err error) string {
	if e, ok := perr.As(err); ok {
		return e.Field()
	}
	return ""
}
