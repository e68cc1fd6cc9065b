package prompt

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_EnhanceIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("identical inputs always produce the identical prompt", prop.ForAll(
		func(userPrompt, color string, styleIdx int) bool {
			keys := StyleKeys()
			style := keys[((styleIdx%len(keys))+len(keys))%len(keys)]

			first := Enhance(userPrompt, style, color, "")
			second := Enhance(userPrompt, style, color, "")
			return first == second
		},
		gen.AnyString(),
		gen.OneConstOf("Black", "White", "Navy", "Red"),
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_EnhanceAlwaysCarriesFixedClauses(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every enhanced prompt contains the fixed clauses in order", prop.ForAll(
		func(userPrompt, color string) bool {
			out := Enhance(userPrompt, "realistic", color, "")

			positions := []int{
				strings.Index(out, "Professional t-shirt design:"),
				strings.Index(out, technicalSpecs),
				strings.Index(out, designGuidelines),
				strings.Index(out, avoidanceClause),
				strings.Index(out, contentGuidelines),
				strings.Index(out, closingInstruction),
			}
			prev := -1
			for _, pos := range positions {
				if pos < 0 || pos <= prev {
					return false
				}
				prev = pos
			}
			return true
		},
		gen.AlphaString(),
		gen.OneConstOf("Black", "White", "Navy"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestEnhance_BackgroundFollowsGarmentColor(t *testing.T) {
	black := Enhance("a lion", "realistic", "Black", "")
	assert.Contains(t, black, "BLACK garment")
	assert.Contains(t, black, "pop against black fabric")

	white := Enhance("a lion", "realistic", "White", "")
	assert.Contains(t, white, "WHITE garment")
	assert.Contains(t, white, "stand out on white fabric")

	navy := Enhance("a lion", "realistic", "Navy", "")
	assert.Contains(t, navy, "COLORED garment")

	// Substring match, not equality: shade names still bias correctly.
	heather := Enhance("a lion", "realistic", "heather black", "")
	assert.Contains(t, heather, "BLACK garment")
}

func TestEnhance_SimpleSubjectsGetExpanded(t *testing.T) {
	out := Enhance("lion", "realistic", "White", "")
	assert.Contains(t, out, "stylized lion graphic design")

	// Case-insensitive match on the bare word
	out = Enhance("Lion", "realistic", "White", "")
	assert.Contains(t, out, "stylized Lion graphic design")

	// Multi-word prompts are left alone
	out = Enhance("lion in sunglasses", "realistic", "White", "")
	assert.NotContains(t, out, "stylized")
}

func TestEnhance_PhotoPhrasesBecomeIllustrationPhrases(t *testing.T) {
	cases := map[string]string{
		"photo of a wolf":            "illustration of a wolf",
		"photograph of a city":       "design of a city",
		"picture of a tree":          "graphic of a tree",
		"a realistic photo close-up": "a detailed illustration close-up",
		"a bear in a forest":         "with decorative forest elements",
		"skyline in the city":        "with urban design elements",
		"surfer at the beach":        "with beach-themed elements",
	}

	for input, want := range cases {
		out := Enhance(input, "realistic", "White", "")
		assert.Contains(t, out, want, "input %q", input)
	}
}

func TestEnhance_PhotoOfRuleFiresBeforeRealisticPhoto(t *testing.T) {
	// "photo of" rewrites first, so "realistic photo" never matches when the
	// two overlap in one prompt.
	out := Enhance("realistic photo of a lion", "realistic", "White", "")
	assert.Contains(t, out, "realistic illustration of a lion")
	assert.NotContains(t, out, "detailed illustration of a lion")
}

func TestEnhance_StyleOverrideReplacesPresetStyle(t *testing.T) {
	override := "loose ink sketches with muted earth tones"
	out := Enhance("a fox", "watercolor", "White", override)

	assert.Contains(t, out, "Artistic style: "+override)
	assert.NotContains(t, out, StylePrompt("watercolor"))
}

func TestEnhance_UnknownStyleFallsBackToDefault(t *testing.T) {
	unknown := Enhance("a fox", "vaporwave", "White", "")
	fallback := Enhance("a fox", DefaultStyle, "White", "")
	assert.Equal(t, fallback, unknown)
}

func TestEnhance_StripsUnsafeCharacters(t *testing.T) {
	out := Enhance("a lion <script>alert(1)</script>", "realistic", "White", "")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, "(")
}

func TestEnhance_MajesticLionRealisticBlack(t *testing.T) {
	out := Enhance("Majestic lion", "realistic", "Black", "")

	require.True(t, strings.HasPrefix(out, "Professional t-shirt design: Majestic lion. "))
	assert.Contains(t, out, StylePrompt("realistic"))
	assert.Contains(t, out, "BLACK garment")
	assert.True(t, strings.HasSuffix(out, closingInstruction))
}

func TestStylePrompt_CoversAllTwelveStyles(t *testing.T) {
	keys := StyleKeys()
	assert.Len(t, keys, 12)

	for _, key := range keys {
		assert.NotEmpty(t, StylePrompt(key), "style %q has no prompt", key)
	}
}
