package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/skilleval/internal/assess"
)

// readAnswersFile decodes answers from path, or stdin when path is "-".
// Both a bare array and an {"answers": [...]} object are accepted.
func readAnswersFile(path string) ([]assess.Answer, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return decodeAnswers(data)
}

func decodeAnswers(data []byte) ([]assess.Answer, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Answers []assess.Answer `json:"answers"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse answers: %w", err)
		}
		return wrapped.Answers, nil
	}
	var answers []assess.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}
