package domain

import (
	"encoding/json"
	"strings"

	"github.com/afland/duende-publisher/internal/platform/apperror"
)

// Decoder turns a raw backend response into the five-field schema. Two
// interchangeable strategies exist: strict JSON for backends that support a
// forced-JSON output mode, and a delimiter-separated text format for those
// that do not. Both produce the same GeneratedContent shape.
type Decoder interface {
	Decode(raw string) (GeneratedContent, error)
	// WantsJSON reports whether the backend should be asked for its
	// structured-JSON output mode.
	WantsJSON() bool
}

// NewDecoder selects a strategy by configuration name. Unknown names fall
// back to JSON, the mode the default backend supports.
func NewDecoder(format string) Decoder {
	if strings.EqualFold(format, "delimited") {
		return DelimitedDecoder{}
	}
	return JSONDecoder{}
}

// JSONDecoder parses a strict-JSON response. Models occasionally wrap the
// object in a markdown fence despite instructions, so fences are stripped
// before unmarshalling.
type JSONDecoder struct{}

type jsonContent struct {
	Slug        string `json:"slug"`
	MetaTitle   string `json:"meta_title"`
	MetaDesc    string `json:"meta_desc"`
	PostTitle   string `json:"post_title"`
	PostContent string `json:"post_content"`
}

func (JSONDecoder) WantsJSON() bool { return true }

func (JSONDecoder) Decode(raw string) (GeneratedContent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed jsonContent
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return GeneratedContent{}, apperror.Wrap(err,
			apperror.CodeValidationFailed,
			apperror.BusinessCodeIncompleteContent,
			"backend response is not valid JSON",
		)
	}

	return GeneratedContent{
		Slug:      strings.TrimSpace(parsed.Slug),
		MetaTitle: strings.TrimSpace(parsed.MetaTitle),
		MetaDesc:  strings.TrimSpace(parsed.MetaDesc),
		PostTitle: strings.TrimSpace(parsed.PostTitle),
		PostBody:  strings.TrimSpace(parsed.PostContent),
	}, nil
}

// SectionSeparator is the fixed token the prompt instructs the backend to
// place between sections in delimited mode.
const SectionSeparator = "---SECTION---"

// DelimitedDecoder parses a separator-delimited response where each section
// starts with a "label:" prefix. Section order does not matter.
type DelimitedDecoder struct{}

func (DelimitedDecoder) WantsJSON() bool { return false }

func (DelimitedDecoder) Decode(raw string) (GeneratedContent, error) {
	var content GeneratedContent

	for _, section := range strings.Split(raw, SectionSeparator) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		label, value, found := strings.Cut(section, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(label)) {
		case "slug":
			content.Slug = value
		case "meta_title":
			content.MetaTitle = value
		case "meta_desc":
			content.MetaDesc = value
		case "post_title":
			content.PostTitle = value
		case "post_content":
			content.PostBody = value
		}
	}

	if content == (GeneratedContent{}) {
		return GeneratedContent{}, apperror.New(
			apperror.CodeValidationFailed,
			apperror.BusinessCodeIncompleteContent,
			"backend response contains no recognizable sections",
		)
	}

	return content, nil
}
