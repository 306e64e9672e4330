package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind is a display format for a numeric channel.
type Kind int

const (
	// KindAuto means "infer from the column name".
	KindAuto Kind = iota
	KindCurrency
	KindPercent
	KindLarge
	KindDecimal
	KindInteger
	KindYear
	KindDefault
)

var kindNames = map[Kind]string{
	KindAuto:     "auto",
	KindCurrency: "currency",
	KindPercent:  "percent",
	KindLarge:    "large",
	KindDecimal:  "decimal",
	KindInteger:  "integer",
	KindYear:     "year",
	KindDefault:  "default",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a flag/tool argument to a Kind. The empty string means
// KindAuto.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindAuto, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindAuto, fmt.Errorf("unknown format kind %q", s)
}

// inferRules is the ordered heuristic table for name-based inference.
// First match wins; matching is case-insensitive substring containment.
// Kept as a table rather than scattered conditionals so the behavior is
// independently testable and overridable.
var inferRules = []struct {
	kind       Kind
	substrings []string
}{
	{KindYear, []string{"year"}},
	{KindCurrency, []string{"gdp", "income", "capita", "spending", "gni", "wage"}},
	{KindPercent, []string{"percent", "rate", "share"}},
	{KindLarge, []string{"population"}},
}

// FormatRule is a rendering policy for one channel: a number-to-string
// rendering function plus axis treatment flags.
type FormatRule struct {
	kind          Kind
	promoteOnTier bool
}

// FormatOption adjusts rule behavior for the cases the format grammar
// leaves open.
type FormatOption func(*FormatRule)

// PromoteOnRound makes abbreviation promote a value to the next SI tier
// when rounding would carry it there: 999,950 renders as "$1M" rather
// than "$1000k". The default keeps the tier of the raw magnitude.
func PromoteOnRound() FormatOption {
	return func(r *FormatRule) { r.promoteOnTier = true }
}

// ResolveFormat returns the FormatRule for a column. An explicit
// override wins outright; otherwise the ordered heuristic table decides,
// falling through to KindDefault. Never fails.
func ResolveFormat(column string, override Kind, opts ...FormatOption) FormatRule {
	kind := override
	if kind == KindAuto {
		kind = inferKind(column)
	}
	r := FormatRule{kind: kind}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func inferKind(column string) Kind {
	lower := strings.ToLower(column)
	for _, rule := range inferRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.kind
			}
		}
	}
	return KindDefault
}

// Kind returns the resolved format kind.
func (r FormatRule) Kind() Kind { return r.kind }

// Temporal reports whether the column is treated as temporal for axis
// purposes. True only for the year kind.
func (r FormatRule) Temporal() bool { return r.kind == KindYear }

// D3 returns the d3-format string embedded into axis and tooltip
// definitions of the serialized spec.
func (r FormatRule) D3() string {
	switch r.kind {
	case KindCurrency:
		return "$,.2s"
	case KindPercent:
		// Display-only: the source value is already in percentage units,
		// so this must not multiply by 100.
		return ".1f"
	case KindLarge:
		return ",.2s"
	case KindDecimal:
		return ".2f"
	case KindInteger:
		return ",d"
	case KindYear:
		return "d"
	default:
		return ",.2~f"
	}
}

var printer = message.NewPrinter(language.English)

// Render converts a numeric value to its display string under this rule.
func (r FormatRule) Render(v float64) string {
	switch r.kind {
	case KindCurrency:
		if v < 0 {
			return "-$" + r.abbrev(-v)
		}
		return "$" + r.abbrev(v)
	case KindPercent:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case KindLarge:
		if v < 0 {
			return "-" + r.abbrev(-v)
		}
		return r.abbrev(v)
	case KindDecimal:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case KindInteger:
		return printer.Sprint(number.Decimal(v, number.Scale(0)))
	case KindYear:
		return strconv.Itoa(int(math.Round(v)))
	default:
		return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	}
}

var tiers = []struct {
	div    float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
}

// abbrev renders a non-negative magnitude with SI-like suffixes at
// thousand/million/billion/trillion thresholds, one decimal place with
// a trailing ".0" trimmed. Values under one thousand render as a bare
// integer with no suffix.
func (r FormatRule) abbrev(v float64) string {
	for i, tier := range tiers {
		if v < tier.div {
			continue
		}
		scaled := math.Round(v/tier.div*10) / 10
		if r.promoteOnTier && i > 0 && scaled >= 1000 {
			up := tiers[i-1]
			scaled = math.Round(v/up.div*10) / 10
			return trimZero(strconv.FormatFloat(scaled, 'f', 1, 64)) + up.suffix
		}
		return trimZero(strconv.FormatFloat(scaled, 'f', 1, 64)) + tier.suffix
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
