package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// Fixed clauses appended to every enhanced prompt, in concatenation order.
const (
	technicalSpecs = "High resolution vector-style design, professional quality optimized for t-shirt printing, centered composition with clean edges. Subject isolated and prominent, taking up 60-80% of the frame. Simple, clean background that can be easily removed. No complex backgrounds, no photographic backgrounds, no gradients in background. Bold, clear design elements suitable for screen printing or DTG printing."

	designGuidelines = "Create a design that works as a standalone graphic on apparel. Focus on the main subject with high contrast. Use bold, confident strokes and shapes. Ensure design reads well from a distance. Avoid tiny details that won't print well. Design should be eye-catching and memorable."

	avoidanceClause = "AVOID: photographic backgrounds, complex gradients in background, multiple scattered elements, text unless specifically requested, realistic environments, busy compositions. FOCUS ON: single strong focal point, clean composition, bold graphics."

	contentGuidelines = "no offensive content, no copyrighted images, no real people or celebrities"

	closingInstruction = "IMPORTANT: Create a bold, isolated graphic design perfect for t-shirt printing with the main subject prominent and a simple, solid color or minimal gradient background that can be easily removed."
)

// simpleSubjects are bare one-word prompts that get rewritten into richer
// design language before enhancement.
var simpleSubjects = []string{
	"cat", "dog", "lion", "tiger", "eagle", "wolf", "bear", "dragon",
	"skull", "flower", "rose", "mountain", "tree",
}

// phraseReplacements bias the generator away from photoreal scenes with
// backgrounds. Applied case-insensitively, in order.
var phraseReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)photo of`), "illustration of"},
	{regexp.MustCompile(`(?i)photograph of`), "design of"},
	{regexp.MustCompile(`(?i)picture of`), "graphic of"},
	{regexp.MustCompile(`(?i)realistic photo`), "detailed illustration"},
	{regexp.MustCompile(`(?i)in a forest`), "with decorative forest elements"},
	{regexp.MustCompile(`(?i)in the city`), "with urban design elements"},
	{regexp.MustCompile(`(?i)at the beach`), "with beach-themed elements"},
}

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s.,!?'-]`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// Enhance builds the fully-specified generation prompt from the raw user
// prompt, a style key, and the target garment color. When styleOverride is
// non-empty it takes the place of the preset style text (it comes from the
// reference-image analyzer). Enhance is pure: identical inputs always yield
// the identical output string.
func Enhance(userPrompt, style, productColor, styleOverride string) string {
	processed := preprocess(userPrompt)

	clean := unsafeChars.ReplaceAllString(processed, "")
	clean = multipleSpace.ReplaceAllString(clean, " ")

	styleText := styleOverride
	if styleText == "" {
		styleText = StylePrompt(style)
	} else {
		styleText = "Artistic style: " + styleText
	}

	parts := []string{
		fmt.Sprintf("Professional t-shirt design: %s", clean),
		styleText,
		backgroundInstruction(productColor),
		technicalSpecs,
		designGuidelines,
		avoidanceClause,
		contentGuidelines,
		closingInstruction,
	}

	return strings.Join(parts, ". ")
}

// preprocess rewrites simple or problematic phrasing into apparel-design
// language.
func preprocess(userPrompt string) string {
	processed := strings.TrimSpace(userPrompt)

	for _, word := range simpleSubjects {
		if strings.EqualFold(processed, word) {
			processed = fmt.Sprintf("stylized %s graphic design", processed)
			break
		}
	}

	for _, r := range phraseReplacements {
		processed = r.pattern.ReplaceAllString(processed, r.replacement)
	}

	return processed
}

// backgroundInstruction selects contrast guidance from the garment color. The
// decision is a case-insensitive substring check: "black" and "white" get
// color-bias language, everything else gets neutral contrast language.
func backgroundInstruction(productColor string) string {
	colorLower := strings.ToLower(productColor)

	switch {
	case strings.Contains(colorLower, "black"):
		return "T-shirt design for BLACK garment: Subject isolated on minimal dark background for easy removal. Use bright, vibrant colors (white, neon, pastels) that pop against black fabric. Strong contrast is essential. Bold graphic with light elements. Avoid dark colors that disappear on black shirts. Design should glow against dark background."
	case strings.Contains(colorLower, "white"):
		return "T-shirt design for WHITE garment: Subject isolated on minimal light background for easy removal. Use bold, saturated colors and strong black outlines that stand out on white fabric. Rich, deep colors work best. Avoid light pastels or white elements that vanish on white shirts. High contrast graphic design."
	default:
		return "T-shirt design for COLORED garment: Subject isolated on neutral background for easy removal. Use high contrast colors that complement the shirt color. Strong, bold design that remains visible. Consider both light and dark elements for versatility. Clear, impactful graphic that works on colored fabric."
	}
}
