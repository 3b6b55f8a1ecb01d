package agent

import "strings"

// ModelChoice selects a generation backend variant.
type ModelChoice int

const (
	ModelPrimary ModelChoice = iota
	ModelSecondary
)

func (m ModelChoice) String() string {
	if m == ModelSecondary {
		return "secondary"
	}
	return "primary"
}

var (
	creativeKeywords = []string{"creative", "write"}
	codeKeywords     = []string{"code", "python"}
)

// ClassifyModel picks a backend by keyword match on the query. Creative
// keywords win over code keywords, first match wins, matching is a
// case-insensitive substring check. Not wired into the default graph; hosts
// composing a multi-provider setup can route on the result.
func ClassifyModel(query string) ModelChoice {
	lowered := strings.ToLower(query)

	for _, kw := range creativeKeywords {
		if strings.Contains(lowered, kw) {
			return ModelPrimary
		}
	}
	for _, kw := range codeKeywords {
		if strings.Contains(lowered, kw) {
			return ModelSecondary
		}
	}
	return ModelPrimary
}
