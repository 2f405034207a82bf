// Package domain holds DTOs and ports for answering questions about videos
package domain

import "videobot/internal/core/querycompiler"

// MaxQuestionLen caps the question size accepted at the HTTP edge
const MaxQuestionLen = 2000

// AskInput is a free text question
type AskInput struct {
	Text string `json:"text" validate:"notblank,max=2000" example:"Сколько всего видео есть в системе?"`
}

// AskOutput is the rendered scalar and the intent that produced it
type AskOutput struct {
	Answer string `json:"answer" example:"358"`
	Intent string `json:"intent" example:"total_videos"`
}

// CompileOutput shows the query a question compiles to
type CompileOutput struct {
	Intent string `json:"intent" example:"creator_videos"`
	SQL    string `json:"sql" example:"SELECT COUNT(*)::bigint FROM videos WHERE creator_id = $1"`
	Args   []any  `json:"args"`
}

// Answer is the service result
type Answer struct {
	// Text is the scalar rendered without numeric coercion
	Text   string
	Intent querycompiler.Intent
}
