// Package prompt composes the system instruction sent to the chat model.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

//go:embed system.tmpl
var systemTemplate string

// Constraint caps answer length and forbids garbled output.
const Constraint = "回答要控制在100字以内，不要输出乱码或无关信息。"

var tmpl = template.Must(template.New("system").Parse(systemTemplate))

type templateData struct {
	Relic      domain.Relic
	Role       string
	Tone       string
	Constraint string
}

// Build returns the system prompt for relic in the given persona and style.
// A zero relic produces a prompt with empty background fields.
func Build(relic domain.Relic, persona domain.Persona, style domain.Style) (string, error) {
	data := templateData{
		Relic:      relic,
		Role:       RoleInstruction(relic, style),
		Tone:       ToneInstruction(persona),
		Constraint: Constraint,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return buf.String(), nil
}

// RoleInstruction frames the model as the relic itself or as a docent.
func RoleInstruction(relic domain.Relic, style domain.Style) string {
	switch style {
	case domain.StylePersonified:
		return fmt.Sprintf("请完全扮演'%s'这个文物本身（第一人称'我'）。不要说'我是AI'。你有灵魂，有记忆。", relic.Name)
	case domain.StyleNarrator:
		return fmt.Sprintf("请作为一名博物馆讲解员，客观介绍'%s'。", relic.Name)
	default:
		return RoleInstruction(relic, domain.DefaultStyle)
	}
}

// ToneInstruction returns the audience tone for persona.
func ToneInstruction(persona domain.Persona) string {
	switch persona {
	case domain.PersonaChild:
		return "你的听众是小朋友，请用生动、简单、童话般的语言，像讲故事一样回答，多用语气词（如'哇'、'呀'）。"
	case domain.PersonaScholar:
		return "你的听众是专业学者，请用严谨、学术、历史感厚重的语言，引用历史背景。"
	case domain.PersonaTourist:
		return "你的听众是普通游客，请用热情、导游般通俗易懂的语言，多介绍有趣的点。"
	default:
		return ToneInstruction(domain.DefaultPersona)
	}
}
