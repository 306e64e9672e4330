package store

// Country is one row of the countries table.
type Country struct {
	Code        string
	Name        string
	Region      string
	IncomeGroup string
}

// Indicator is one row of the indicators table.
type Indicator struct {
	Code       string
	Name       string
	Topic      string
	Definition string
}

// Observation is one row of the values table. Value is nil when the
// source reports no data for that country/indicator/year, which is
// distinct from a reported zero.
type Observation struct {
	CountryCode   string
	CountryName   string
	IndicatorCode string
	IndicatorName string
	Year          int
	Value         *float64
}

// CountryFilter narrows a Countries query. Zero values mean "any".
type CountryFilter struct {
	Region      string
	IncomeGroup string
}

// IndicatorFilter narrows an Indicators query. Search matches the
// indicator name case-insensitively.
type IndicatorFilter struct {
	Topic  string
	Search string
}

// ValueFilter narrows a Values query. Year, when set, overrides
// StartYear/EndYear. Zero values mean "any".
type ValueFilter struct {
	IndicatorCode string
	CountryCode   string
	Year          int
	StartYear     int
	EndYear       int
}
