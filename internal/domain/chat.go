package domain

// ChatRequest is the inbound half of a chat exchange.
type ChatRequest struct {
	RelicID  string
	Question string
	Persona  Persona
	Style    Style
}

// AnswerMode records which path produced a chat answer.
type AnswerMode string

const (
	AnswerModeModel    AnswerMode = "model"
	AnswerModeDegraded AnswerMode = "degraded"
	AnswerModeOffline  AnswerMode = "offline"
)

// ChatReply is the outbound half of a chat exchange. Answer and Action are
// always populated together.
type ChatReply struct {
	Answer string
	Action Action
	Mode   AnswerMode
}
