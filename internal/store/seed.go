// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// seedThought is one demo record before ID and timestamp assignment.
type seedThought struct {
	RawText      string              `yaml:"raw_text"`
	ModeSelected types.ExpansionMode `yaml:"mode_selected"`
	ExpandedText string              `yaml:"expanded_text"`
	ValueMeter   types.ValueMeter    `yaml:"value_meter"`
}

// defaultSeeds are the built-in demo thoughts.
var defaultSeeds = []seedThought{
	{
		RawText:      "Why do we drive on parkways and park on driveways?",
		ModeSelected: types.ModeEssay,
		ExpandedText: "This linguistic paradox reveals the fascinating chaos of English etymology. Parkways, originally designed as scenic routes through park-like settings, earned their name from the landscaped beauty they traverse, not from any parking function. Meanwhile, driveways, the private roads leading to our homes, take their name from the act of driving upon them, despite being primarily used for parking.\n\nThis delightful contradiction showcases how language evolves organically, often prioritizing historical context over logical consistency. It's a perfect example of how our everyday vocabulary carries the weight of forgotten intentions and abandoned meanings.\n\nThe beauty lies in recognizing that language isn't a perfectly logical system. It's a living, breathing entity that grows through usage, cultural shifts, and historical accidents. These linguistic quirks remind us that human communication is beautifully imperfect, shaped more by tradition than by rational design.",
		ValueMeter:   types.MeterSeedling,
	},
	{
		RawText:      "If money is time, are ATMs time machines?",
		ModeSelected: types.ModeStartupPitch,
		ExpandedText: "Introducing ChronoBank: The world's first temporal financial platform. We've cracked the code that Ben Franklin hinted at centuries ago. Our revolutionary ATMs don't just dispense cash, they redistribute your most valuable resource: time itself.\n\nEvery withdrawal represents hours of your life, and every deposit adds moments back to your timeline. With ChronoBank, you can literally buy time, sell time, and even loan time to others. We're not just disrupting banking; we're revolutionizing the fabric of existence.\n\nOur proprietary TimeValue algorithm calculates the exact temporal worth of every transaction. Imagine withdrawing $100 and knowing you're trading 3.2 hours of your life. Or depositing your paycheck and watching your life expectancy increase in real-time.\n\nWe're seeking $50M Series A to scale our temporal infrastructure globally. Join us in making 'time is money' more than just a saying, the foundation of a $100 billion temporal economy.",
		ValueMeter:   types.MeterUnicorn,
	},
	{
		RawText:      "Do fish think water is wet?",
		ModeSelected: types.ModeCounterArgument,
		ExpandedText: "Actually, fish probably don't perceive water as 'wet' at all, and this reveals a fundamental flaw in how we anthropomorphize animal experiences. Wetness is entirely a human construct based on our terrestrial experience: we feel wet when water adheres to our dry skin, creating a contrast we can perceive.\n\nFor fish, water isn't a substance that covers them; it's their entire environmental medium. They don't experience the contrast between dry and wet that defines wetness for us. It's like asking if we think air is 'airy'.\n\nFish likely perceive water through pressure gradients, temperature variations, chemical concentrations, and electrical conductivity, not as a coating substance that makes things wet. Their sensory apparatus evolved specifically for aquatic environments, making our land-based concept of 'wetness' irrelevant to their experience.",
		ValueMeter:   types.MeterSeedling,
	},
}

// Seed clears st and loads the built-in demo thoughts. Timestamps are
// staggered backwards from the current time so List order is stable.
func Seed(st Store) error {
	return seed(st, defaultSeeds)
}

// SeedFromFile clears st and loads demo thoughts from a YAML fixtures file.
func SeedFromFile(st Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}
	var seeds []seedThought
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return seed(st, seeds)
}

func seed(st Store, seeds []seedThought) error {
	if err := st.Reset(); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}

	base := now()
	for i, s := range seeds {
		if !s.ModeSelected.IsValid() {
			return fmt.Errorf("seed %d: invalid mode %q", i, s.ModeSelected)
		}

		// Spread seeds over the preceding days, oldest first.
		age := time.Duration(len(seeds)-i) * 24 * time.Hour
		t, err := createAt(st, s.RawText, s.ModeSelected, base.Add(-age))
		if err != nil {
			return fmt.Errorf("seeding thought %d: %w", i, err)
		}

		upd := types.ThoughtUpdate{}
		if s.ExpandedText != "" {
			text := s.ExpandedText
			upd.ExpandedText = &text
		}
		if s.ValueMeter != "" {
			meter := s.ValueMeter
			if !meter.IsValid() {
				return fmt.Errorf("seed %d: invalid value meter %q", i, meter)
			}
			upd.ValueMeter = &meter
		}
		if _, err := st.Update(t.ID, upd); err != nil {
			return fmt.Errorf("populating seed thought %d: %w", i, err)
		}
	}
	return nil
}

// backdater is implemented by stores that can create a record with an
// explicit timestamp. Both in-package implementations do.
type backdater interface {
	createAt(rawText string, mode types.ExpansionMode, ts time.Time) (types.Thought, error)
}

func createAt(st Store, rawText string, mode types.ExpansionMode, ts time.Time) (types.Thought, error) {
	if b, ok := st.(backdater); ok {
		return b.createAt(rawText, mode, ts)
	}
	return st.Create(rawText, mode)
}
