package prompt

import (
	"testing"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRelic() domain.Relic {
	return domain.Relic{
		ID:      "bronze_ding",
		Name:    "巴渝青铜祭祀鼎",
		Era:     "战国晚期",
		Summary: "青铜礼器",
		Story:   "我曾被埋藏在三峡",
		Craft:   "范铸法",
	}
}

func TestBuild_IncludesBackground(t *testing.T) {
	out, err := Build(testRelic(), domain.PersonaScholar, domain.StyleNarrator)
	require.NoError(t, err)

	assert.Contains(t, out, "你现在是：巴渝青铜祭祀鼎，处于战国晚期时代。")
	assert.Contains(t, out, "你的基本信息：青铜礼器")
	assert.Contains(t, out, "你的故事：我曾被埋藏在三峡")
	assert.Contains(t, out, "你的工艺：范铸法")
	assert.Contains(t, out, "3. "+Constraint)
}

func TestBuild_PersonifiedRole(t *testing.T) {
	out, err := Build(testRelic(), domain.PersonaChild, domain.StylePersonified)
	require.NoError(t, err)

	assert.Contains(t, out, "第一人称")
	assert.Contains(t, out, "小朋友")
	assert.NotContains(t, out, "讲解员")
}

func TestBuild_UnrecognizedSelectorsUseDefaults(t *testing.T) {
	out, err := Build(testRelic(), domain.Persona("pirate"), domain.Style("whisper"))
	require.NoError(t, err)

	assert.Contains(t, out, "博物馆讲解员")
	assert.Contains(t, out, "普通游客")
}

func TestBuild_ZeroRelic(t *testing.T) {
	out, err := Build(domain.Relic{}, domain.DefaultPersona, domain.DefaultStyle)
	require.NoError(t, err)

	assert.Contains(t, out, "你现在是：，处于时代。")
	assert.Contains(t, out, Constraint)
}

func TestToneInstruction(t *testing.T) {
	assert.Contains(t, ToneInstruction(domain.PersonaChild), "小朋友")
	assert.Contains(t, ToneInstruction(domain.PersonaScholar), "专业学者")
	assert.Contains(t, ToneInstruction(domain.PersonaTourist), "普通游客")
	assert.Equal(t, ToneInstruction(domain.PersonaTourist), ToneInstruction(""))
}
