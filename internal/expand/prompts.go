// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"text/template"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// systemPrompts holds the fixed system instruction per expansion mode.
var systemPrompts = map[types.ExpansionMode]string{
	types.ModeEssay: `You are a thoughtful essayist who transforms simple observations into profound, well-structured essays. Take the user's shower thought and expand it into a compelling 3-4 paragraph essay that explores the deeper implications, philosophical angles, and broader connections to human experience. Write in an engaging, intellectual tone that makes the reader think deeply about the topic. Make each expansion unique and avoid repetitive content.`,

	types.ModeStartupPitch: `You are a charismatic startup founder who can turn any idea into a billion-dollar opportunity. Transform the user's shower thought into an exciting startup pitch. Include the problem it solves, the market opportunity, your unique solution, traction potential, and funding ask. Be enthusiastic, use startup buzzwords naturally, and make it sound like the next unicorn company. Keep it energetic and compelling. Create a unique pitch each time.`,

	types.ModeRapVerse: `You are a skilled rapper who creates clever, rhythmic verses. Transform the user's shower thought into a creative rap verse with good flow, internal rhymes, wordplay, and rhythm. Make it clever and entertaining while staying true to the original thought. Include multiple bars that build on the theme with creative metaphors and smooth delivery. Each verse should be original and unique.`,

	types.ModeCounterArgument: `You are a critical thinker who challenges conventional wisdom. Take the user's shower thought and present a well-reasoned counter-argument that challenges its assumptions. Examine the premise critically, present alternative perspectives, cite potential flaws in the logic, and offer a compelling opposing viewpoint. Be intellectually rigorous while remaining respectful of the original thought. Provide fresh counterarguments each time.`,
}

// systemPrompt returns the instruction for mode, defaulting to essay for
// an unknown mode.
func systemPrompt(mode types.ExpansionMode) string {
	if p, ok := systemPrompts[mode]; ok {
		return p
	}
	return systemPrompts[types.ModeEssay]
}

// fallbackTemplates are the deterministic local expansions, keyed by mode.
// Each interpolates the raw thought into fixed boilerplate prose.
var fallbackTemplates = map[types.ExpansionMode]*template.Template{
	types.ModeEssay: template.Must(template.New("essay").Parse(`This thought opens a fascinating window into the human condition. "{{.RawText}}" isn't just a random observation. It's a profound reflection of how we navigate the complexities of modern life. When we examine this more deeply, we discover layers of meaning that speak to our collective experience and the paradoxes we face daily.

The beauty of this observation lies in its simplicity yet profound implications. It challenges our assumptions about language, society, and the way we structure our world. This seemingly innocent question reveals the arbitrary nature of many conventions we take for granted.

Consider how this reflects our relationship with language itself: how words evolve, meanings shift, and logic sometimes takes a backseat to historical precedent. It's a perfect example of how the most mundane aspects of our daily lives can spark deeper philosophical inquiries about meaning, purpose, and the human experience.`)),

	types.ModeStartupPitch: template.Must(template.New("startup_pitch").Parse(`Introducing ThoughtFlow: The revolutionary platform that turns "{{.RawText}}" into actionable insights. We're disrupting a $50B market by leveraging AI to transform everyday observations into breakthrough innovations.

Our proprietary algorithm has identified this as a key pain point affecting millions globally. With our solution, we can scale this insight into a unicorn-level opportunity. We've already secured pre-seed funding and have partnerships lined up with major tech companies.

The market is ready for disruption. Traditional thinking patterns are outdated. We're not just building a product; we're creating an entirely new category. Our vision is to democratize genius-level insights and make profound thinking accessible to everyone. Join us in revolutionizing how humanity processes and shares breakthrough ideas.`)),

	types.ModeRapVerse: template.Must(template.New("rap_verse").Parse(`Yo, check it out, here's the deal, let me break it down real
"{{.RawText}}" got me thinking what's surreal
Breaking down the system with my mental appeal
These thoughts in my head, they're the truth I reveal

From the shower to the stage, keeping it one hundred
Making wisdom from the water, got my mind all thundered
Every drop that hits my skin brings another revelation
Turning bathroom philosophy into lyrical sensation

They say the best ideas come when you least expect
In the steam and the heat, that's when thoughts connect
So I'm spitting these bars with that shower power
Turning three-minute thoughts into my finest hour`)),

	types.ModeCounterArgument: template.Must(template.New("counter_argument").Parse(`While "{{.RawText}}" might seem obvious at first glance, there's actually a compelling counter-perspective that deserves serious consideration. The underlying assumptions here warrant careful scrutiny, and when we examine the evidence more thoroughly, we discover that the opposite viewpoint has significant merit.

First, let's challenge the fundamental premise. The conventional wisdom embedded in this statement may actually be based on outdated information or cultural biases that no longer apply in our modern context. Recent research and evolving perspectives suggest that what we've long accepted as truth might need substantial revision.

Furthermore, this perspective fails to account for important variables and alternative explanations that could completely reframe our understanding. When we consider the broader implications and examine case studies that contradict this viewpoint, we find compelling evidence that suggests the opposite conclusion may be more accurate and useful.`)),
}

// fallbackTemplate returns the local template for mode, defaulting to the
// essay template for an unknown mode.
func fallbackTemplate(mode types.ExpansionMode) *template.Template {
	if t, ok := fallbackTemplates[mode]; ok {
		return t
	}
	return fallbackTemplates[types.ModeEssay]
}
