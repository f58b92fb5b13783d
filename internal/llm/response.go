package llm

import (
	"bytes"
	"encoding/json"
)

// finishResponse turns raw provider output into a Response. Markdown code
// fences around JSON are stripped, truncated structured output is rejected
// and schema requests are validated.
func finishResponse(req Request, raw string, usage Usage, model, stop string) (*Response, error) {
	content := json.RawMessage(raw)
	if req.Schema != nil {
		content = stripCodeFence(content)
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, which some
// models emit even when asked for bare JSON.
func stripCodeFence(b []byte) []byte {
	t := bytes.TrimSpace(b)
	if !bytes.HasPrefix(t, []byte("```")) {
		return t
	}
	t = t[3:]
	if nl := bytes.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = bytes.TrimSuffix(bytes.TrimSpace(t), []byte("```"))
	return bytes.TrimSpace(t)
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names are used as-is so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
