package prompt

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestValidate_EmptyPrompt(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n  "} {
		result := Validate(raw)
		assert.False(t, result.Valid)
		assert.Equal(t, MsgEmptyPrompt, result.Error)
	}
}

func TestValidate_TooLong(t *testing.T) {
	// Exactly at the cap passes, one over fails.
	atCap := strings.Repeat("a", MaxPromptLength)
	assert.True(t, Validate(atCap).Valid)

	overCap := strings.Repeat("a", MaxPromptLength+1)
	result := Validate(overCap)
	assert.False(t, result.Valid)
	assert.Equal(t, MsgPromptTooLong, result.Error)
}

func TestValidate_InappropriateContent(t *testing.T) {
	cases := []string{
		"an nsfw drawing",
		"EXPLICIT material",
		"a Nude figure",
		"graphic violence scene",
		"blood and gore everywhere",
		"full of hate",
	}

	for _, raw := range cases {
		result := Validate(raw)
		assert.False(t, result.Valid, "expected rejection for %q", raw)
		assert.Equal(t, MsgInappropriate, result.Error)
	}
}

func TestValidate_AcceptsOrdinaryPrompts(t *testing.T) {
	for _, raw := range []string{
		"a majestic lion",
		"mountain sunset in watercolor",
		"skull with roses",
	} {
		result := Validate(raw)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Error)
	}
}

func TestProperty_ValidPromptsNeverCarryAnError(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a valid result has an empty error and an invalid result names one message", prop.ForAll(
		func(raw string) bool {
			result := Validate(raw)
			if result.Valid {
				return result.Error == ""
			}
			switch result.Error {
			case MsgEmptyPrompt, MsgPromptTooLong, MsgInappropriate:
				return true
			}
			return false
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
