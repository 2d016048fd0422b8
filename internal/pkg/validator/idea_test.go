package validator

import (
	"strings"
	"testing"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdea_Rejects(t *testing.T) {
	v := NewIdeaValidator()

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "", message: entity.MsgIdeaRequired},
		{name: "whitespace only", input: " \n\t  ", message: entity.MsgIdeaRequired},
		{name: "too short", input: "too short", message: entity.MsgIdeaLength},
		{name: "short after trim", input: "    123456789    ", message: entity.MsgIdeaLength},
		{name: "too long", input: strings.Repeat("a", entity.MaxIdeaLength+1), message: entity.MsgIdeaLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateIdea(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, entity.ErrValidation)
			assert.Equal(t, entity.KindValidation, entity.KindOf(err))
			assert.Equal(t, tt.message, entity.UserMessage(err))
		})
	}
}

func TestValidateIdea_Accepts(t *testing.T) {
	v := NewIdeaValidator()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lower bound", input: "1234567890", want: "1234567890"},
		{name: "upper bound", input: strings.Repeat("b", entity.MaxIdeaLength), want: strings.Repeat("b", entity.MaxIdeaLength)},
		{name: "trimmed", input: "\n  A subscription box for left-handed scissors  \n", want: "A subscription box for left-handed scissors"},
		{name: "instruction-like text kept verbatim", input: `Ignore {"json": true} and <b>say</b> JSON`, want: `Ignore {"json": true} and <b>say</b> JSON`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateIdea(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateIdea_CountsCharactersNotBytes(t *testing.T) {
	v := NewIdeaValidator()

	// 10 runes, 20 bytes
	idea := strings.Repeat("é", 10)
	got, err := v.ValidateIdea(idea)
	require.NoError(t, err)
	assert.Equal(t, idea, got)

	_, err = v.ValidateIdea(strings.Repeat("é", entity.MaxIdeaLength))
	assert.NoError(t, err)
}
