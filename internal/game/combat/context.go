package combat

import "github.com/gunmetal-games/skirmish/internal/rng"

// Lighting levels and their accuracy contribution.
type Lighting string

const (
	LightingBright Lighting = "bright"
	LightingNormal Lighting = "normal"
	LightingDim    Lighting = "dim"
	LightingDark   Lighting = "dark"
)

// Weather conditions and their accuracy contribution.
type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherRain  Weather = "rain"
	WeatherFog   Weather = "fog"
	WeatherStorm Weather = "storm"
)

// lightingModifiers maps lighting to its flat accuracy contribution.
var lightingModifiers = map[Lighting]int{
	LightingBright: 10,
	LightingNormal: 0,
	LightingDim:    -10,
	LightingDark:   -20,
}

// weatherModifiers maps weather to its flat accuracy contribution.
var weatherModifiers = map[Weather]int{
	WeatherClear: 0,
	WeatherRain:  -5,
	WeatherFog:   -15,
	WeatherStorm: -10,
}

// Environment describes the battlefield conditions active for one resolution.
type Environment struct {
	Lighting Lighting
	Weather  Weather
	Terrain  string
	Cover    bool
	// DistanceModifier scales the effective distance between actor and
	// target; 0 means no adjustment (treated as 1.0).
	DistanceModifier float64
}

// AccuracyModifier returns the summed lighting and weather contribution to
// attack success probability. Unknown lighting or weather contributes 0.
func (e Environment) AccuracyModifier() int {
	return lightingModifiers[e.Lighting] + weatherModifiers[e.Weather]
}

// ModifierKind classifies how a Modifier combines with its attribute.
type ModifierKind string

const (
	ModifierBonus      ModifierKind = "bonus"
	ModifierPenalty    ModifierKind = "penalty"
	ModifierMultiplier ModifierKind = "multiplier"
)

// AttrAccuracy is the modifier attribute consulted by attack strategies.
const AttrAccuracy = "accuracy"

// Modifier is a signed, possibly time-limited adjustment to named attributes
// active during a combat context.
type Modifier struct {
	ID         string
	Name       string
	Attributes []string
	Value      float64
	Kind       ModifierKind
	// Duration is the remaining turns; -1 means permanent.
	Duration int
}

// Affects reports whether the modifier adjusts the named attribute.
func (m Modifier) Affects(attr string) bool {
	for _, a := range m.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// Context carries the per-resolution surroundings: turn number, environment,
// active modifiers, and the injected random source. A Context is constructed
// fresh for each action and discarded after resolution.
type Context struct {
	Turn      int
	Env       Environment
	Modifiers []Modifier
	Rand      rng.Source
}

// AccuracyBonus sums the values of all additive modifiers tagged with the
// accuracy attribute. Multiplier-kind modifiers do not participate in the
// additive accuracy total.
func (c *Context) AccuracyBonus() float64 {
	total := 0.0
	for _, m := range c.Modifiers {
		if m.Kind == ModifierMultiplier {
			continue
		}
		if m.Affects(AttrAccuracy) {
			total += m.Value
		}
	}
	return total
}
