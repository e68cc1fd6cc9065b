package prompt

// DefaultStyle is used when the requested style key is unknown.
const DefaultStyle = "realistic"

// stylePrompts maps style keys to apparel-optimized generation boilerplate.
// Each entry describes a print-friendly rendition of the user's subject.
var stylePrompts = map[string]string{
	"cartoonblocks": "Vector-style 3D cartoon t-shirt design. Simplified blocky character as the main focal point, isolated on minimal background. Bold, chunky shapes with flat colors - bright primary colors that pop. Clean black outlines, no complex shading. Character takes up 70% of composition. Perfect for screen printing on apparel. No photorealism, no gradients, no complex backgrounds.",

	"cyberpunk": "Bold cyberpunk t-shirt graphic design. Main subject with neon glow effects - cyan, magenta, electric blue accents. High contrast design with deep blacks and bright neons. Simplified futuristic elements, clean vector-style illustration. Subject isolated on dark or minimal background. Strong silhouette that reads well on fabric. No complex environments, focus on iconic cyberpunk imagery.",

	"comic": "Vintage comic book style t-shirt design. Bold illustration with thick black ink outlines, flat colors, halftone dot patterns. Dynamic character or subject as focal point. Limited color palette - primary colors plus black. Clean, readable design that works at any size. Isolated subject on simple background. Comic book aesthetic without complex panels or environments.",

	"watercolor": "Artistic watercolor t-shirt design. Main subject rendered in soft pastel watercolor style with visible brush strokes. Limited color bleeds, controlled paint effects. Subject stands out clearly despite artistic style. Minimal or white background for easy printing. Balance between artistic expression and t-shirt wearability. No muddy colors or overly complex washes.",

	"realistic": "Photorealistic illustration of the subject only, highly detailed and lifelike. Isolated main element with studio lighting. Sharp focus, professional photography style. Subject on clean, minimal background for easy removal. High contrast and vibrant colors. No t-shirt mockup, just the design element itself. Professional quality suitable for direct-to-garment printing.",

	"black-and-white": "Black and white vintage photograph style illustration of the subject only. Highly detailed, sharp focus, dramatic lighting with strong shadows. High contrast monochrome, retro aesthetic, centered composition. No t-shirt mockup, just the design element itself. Perfect for single-color screen printing. Clean, striking isolated subject.",

	"vector-stencil": "High contrast black and white stencil art of the subject only. Bold graphic with strong silhouette. Uses only pure black and white - no grays. Dramatic shadows and highlights. Subject isolated on opposite color background (black on white or white on black). No t-shirt mockup, just the design element itself. Perfect for single-color screen printing.",

	"botanical": "minimalist, elegant t-shirt design with clean thin lines. Hand-drawn botanical illustration style with delicate line work and subtle shading. Scientific illustration style simplified for apparel. Centered composition with botanical element as hero. Works well on light or dark garments. No complex backgrounds, focus on botanical beauty.",

	"cartoon-avatar": "Fun cartoon character t-shirt design. Single character with exaggerated features, big personality. Bold outlines, flat colors, minimal shading. Character isolated on simple background. Expressive and memorable design. Works like a logo or mascot on apparel. Clean vector style that scales well.",

	"childrens-book": "Charming Hand-painted watercolor children's book illustration style t-shirt design. warm, earthy palette (soft ochre, muted teal, dust-rose blush), simple rounded shapes, no hard outlines, gentle wet-in-wet shading, visible cold-press paper grain, mid-century storybook vibe, full-body pose, playful and friendly character or scene. Limited pastel color palette. Main subject clearly defined. Minimal background elements. Hand-drawn quality but clean enough for printing. Positive, uplifting imagery.",

	"grunge": "Edgy grunge t-shirt design. Distressed textures on main graphic element. High contrast - primarily black with accent colors. Raw, rebellious aesthetic. Bold central image with rough edges. Vintage band t-shirt inspired. Works well on black or dark colored shirts. Strong visual impact.",

	"y2k-chrome": "Monochrome graphite line illustration of the subject, posed like a 19th-century natural-history plate. Clean continuous strokes with even line width, subtle cross-hatching and micro-stippling for shading, no solid fills. Surrounded by a botanical wreath of slender leaves and simple five-petal flowers with balanced negative space. Drawn on soft off-white paper with faint grain. Flat vector output. No t-shirt mockup, just the design element itself.",
}

// StyleKeys returns the known style identifiers.
func StyleKeys() []string {
	keys := make([]string, 0, len(stylePrompts))
	for k := range stylePrompts {
		keys = append(keys, k)
	}
	return keys
}

// StylePrompt resolves a style key to its boilerplate, falling back to the
// default style for unknown keys.
func StylePrompt(style string) string {
	if p, ok := stylePrompts[style]; ok {
		return p
	}
	return stylePrompts[DefaultStyle]
}
