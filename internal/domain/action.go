package domain

import "strings"

// Action is the UI gesture suggested alongside a chat answer.
type Action string

const (
	ActionPoint Action = "point"
	ActionWalk  Action = "walk"
	ActionWave  Action = "wave"

	// DefaultAction applies when no keyword class matches.
	DefaultAction = ActionWave
)

var (
	pointKeywords = []string{"指", "哪", "看", "这里", "where", "point", "look", "here", "indicate"}
	walkKeywords  = []string{"走", "离开", "去", "leave", "go", "walk"}
)

// InferAction derives the suggested action from the raw question text.
// Point keywords win over walk keywords.
func InferAction(question string) Action {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, pointKeywords):
		return ActionPoint
	case containsAny(q, walkKeywords):
		return ActionWalk
	default:
		return DefaultAction
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
