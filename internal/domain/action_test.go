package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferAction(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected Action
	}{
		{"chinese where", "它在哪里出土的？", ActionPoint},
		{"chinese look", "看看这里的纹饰", ActionPoint},
		{"english where", "Where was it found?", ActionPoint},
		{"chinese leave", "我要离开了", ActionWalk},
		{"english go", "Let's GO", ActionWalk},
		{"point wins over walk", "去哪里看", ActionPoint},
		{"no keyword", "你好", ActionWave},
		{"empty", "", ActionWave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferAction(tt.question))
		})
	}
}

func TestInferAction_Deterministic(t *testing.T) {
	q := "这件文物在哪？"
	first := InferAction(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, InferAction(q))
	}
}
