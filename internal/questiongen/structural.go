package questiongen

import (
	"strings"

	"github.com/abhisek/skilleval/internal/assess"
)

// Field length limits in bytes.
const (
	maxTitleLen = 300
	maxBodyLen  = 6000
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Content, _ SlotRequest) *ValidationError {
	switch {
	case strings.TrimSpace(c.Title) == "":
		return v.fail("title is empty")
	case len(c.Title) > maxTitleLen:
		return v.fail("title exceeds 300 characters")
	case strings.TrimSpace(c.Body) == "":
		return v.fail("body is empty")
	case len(c.Body) > maxBodyLen:
		return v.fail("body exceeds 6000 characters")
	case !c.Difficulty.Valid():
		return v.fail("difficulty must be easy, medium or hard")
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// OptionsValidator checks that mcq questions carry exactly 4 distinct
// options containing the expected answer, and that other types carry none.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(c *Content, req SlotRequest) *ValidationError {
	if req.Type != assess.TypeMCQ {
		if len(c.Options) > 0 {
			return v.fail("options are only allowed for mcq questions")
		}
		return nil
	}

	if len(c.Options) != 4 {
		return v.fail("mcq questions need exactly 4 options")
	}
	seen := make(map[string]bool, 4)
	found := false
	for _, o := range c.Options {
		key := normalize(o)
		if key == "" {
			return v.fail("mcq option is empty")
		}
		if seen[key] {
			return v.fail("mcq options must be distinct")
		}
		seen[key] = true
		if key == normalize(c.ExpectedAnswer) {
			found = true
		}
	}
	if !found {
		return v.fail("expected_answer is not one of the options")
	}
	return nil
}

func (v *OptionsValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
