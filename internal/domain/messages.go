package domain

import (
	"fmt"
	"strings"
)

// Probability bands for a single draw r in [0,1). Each bound is exclusive:
// r == 0.40 falls into the region band, r == 0.70 into the telemetry band.
const (
	actionBand    = 0.40
	regionBand    = 0.70
	telemetryBand = 0.85
)

const locationPlaceholder = "{location}"

// RandomSource yields uniform values in [0,1). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

var standbyMessages = []string{
	"PRE-FLIGHT CHECKLIST IN PROGRESS",
	"REINDEER TEAM RESTING IN HANGAR",
	"SLEIGH RUNNERS WAXED AND READY",
	"NAVIGATION SYSTEMS ON STANDBY",
	"AWAITING LAUNCH WINDOW",
}

var actionTemplates = []string{
	"DELIVERING PRESENTS IN {location}",
	"ROOFTOP APPROACH OVER {location}",
	"CHIMNEY DESCENT CONFIRMED IN {location}",
	"COOKIE INTAKE DETECTED IN {location}",
	"SLEIGH HOVERING ABOVE {location}",
}

var regionMessages = map[string][]string{
	"OCEANIA": {
		"DODGING SEAPLANES OVER THE REEF",
		"SUMMER HEAT: REINDEER SWITCHED TO SHORTS",
		"KANGAROO ESCORT FORMATION ACHIEVED",
	},
	"ASIA": {
		"LANTERN FIELD CLEARED FOR DESCENT",
		"HIGH ALTITUDE PASS OVER THE HIMALAYAS",
		"DUMPLING SUPPLY RESTOCKED",
	},
	"MIDDLE_EAST": {
		"DESERT WINDS CALM, VISIBILITY UNLIMITED",
		"STAR NAVIGATION LOCKED ON",
	},
	"AFRICA": {
		"CROSSING THE SAHARA AT CRUISE ALTITUDE",
		"KILIMANJARO WAYPOINT PASSED",
	},
	"EUROPE": {
		"MINCE PIE RESERVES REPLENISHED",
		"CHURCH BELLS DETECTED ON APPROACH",
		"SNOWFALL ASSISTING STEALTH MODE",
	},
	"AMERICAS": {
		"MILK AND COOKIES PROTOCOL ENGAGED",
		"AVOIDING SKYSCRAPER CANYONS",
		"NORAD ESCORT ACKNOWLEDGED",
	},
}

var genericMessages = []string{
	"ALL SYSTEMS NOMINAL",
	"REINDEER MORALE HIGH",
	"GIFT MANIFEST SYNCHRONIZED",
	"CLEAR SKIES AHEAD",
	"MAGIC RESERVES STABLE",
}

// MessageGenerator picks short status lines for the log feed.
type MessageGenerator struct {
	rnd RandomSource
}

// NewMessageGenerator creates a generator drawing from rnd.
func NewMessageGenerator(rnd RandomSource) *MessageGenerator {
	return &MessageGenerator{rnd: rnd}
}

// Generate returns one message for the given location. At home base only the
// standby set is used. Otherwise one draw selects the action, region,
// telemetry or generic band; unknown regions fall through to generic.
func (g *MessageGenerator) Generate(locationName, region string, speed float64, delivered int64) string {
	if locationName == HomeBase.Name {
		return g.pick(standbyMessages)
	}

	r := g.rnd.Float64()
	switch {
	case r < actionBand:
		return strings.ReplaceAll(g.pick(actionTemplates), locationPlaceholder, locationName)
	case r < regionBand:
		if msgs, ok := regionMessages[region]; ok && len(msgs) > 0 {
			return g.pick(msgs)
		}
	case r < telemetryBand:
		if g.rnd.Float64() < 0.5 {
			return FormatSpeed(speed)
		}
		return FormatDelivered(delivered)
	}
	return g.pick(genericMessages)
}

// FormatSpeed renders a velocity status line with two decimals.
func FormatSpeed(speed float64) string {
	return fmt.Sprintf("VELOCITY: %.2f KM/S", speed)
}

// FormatDelivered renders the delivered count in billions with three decimals.
func FormatDelivered(delivered int64) string {
	return fmt.Sprintf("GIFTS DELIVERED: %.3fB", float64(delivered)/1e9)
}

func (g *MessageGenerator) pick(set []string) string {
	i := int(g.rnd.Float64() * float64(len(set)))
	if i >= len(set) {
		i = len(set) - 1
	}
	return set[i]
}
