package filter

import "math"

// RangeTag is a salary bucket key such as "50-100" or "2000+".
type RangeTag string

// Interval is a half-open salary interval [Min, Max).
type Interval struct {
	Min float64
	Max float64
}

func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v < i.Max
}

const RangeOpenEnded RangeTag = "2000+"

var rangeTable = map[RangeTag]Interval{
	"0-50":         {0, 50},
	"50-100":       {50, 100},
	"100-200":      {100, 200},
	"200-500":      {200, 500},
	"0-100":        {0, 100},
	"100-500":      {100, 500},
	"500-1000":     {500, 1000},
	"1000-2000":    {1000, 2000},
	RangeOpenEnded: {2000, math.Inf(1)},
}

// Lookup returns the interval for a known tag.
func Lookup(tag RangeTag) (Interval, bool) {
	iv, ok := rangeTable[tag]
	return iv, ok
}

// ParseRanges converts raw query values to tags, dropping unknown keys and
// duplicates.
func ParseRanges(raw []string) []RangeTag {
	out := make([]RangeTag, 0, len(raw))
	seen := make(map[RangeTag]struct{}, len(raw))
	for _, r := range raw {
		tag := RangeTag(r)
		if _, ok := rangeTable[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// KnownRanges lists every tag in ascending order of lower bound.
func KnownRanges() []RangeTag {
	return []RangeTag{"0-50", "0-100", "50-100", "100-200", "100-500", "200-500", "500-1000", "1000-2000", RangeOpenEnded}
}
