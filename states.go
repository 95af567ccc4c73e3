package cityscout

import (
	"sort"
	"sync"
)

// UsStateCodes maps US state and territory abbreviations to full names.
var UsStateCodes = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
	// Territories
	"AS": "American Samoa", "DC": "District of Columbia", "GU": "Guam",
	"MP": "Northern Mariana Islands", "PR": "Puerto Rico", "VI": "Virgin Islands",
}

// sortedUsStateCodes returns the state codes in alphabetical order.
var sortedUsStateCodes = sync.OnceValue(func() []string {
	codes := make([]string, 0, len(UsStateCodes))
	for sc := range UsStateCodes {
		codes = append(codes, sc)
	}
	sort.Strings(codes)
	return codes
})

// StateCodes returns every known state and territory code, sorted.
func StateCodes() []string {
	codes := sortedUsStateCodes()
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// IsStateCode reports whether code is a known state or territory code.
// The check is case-insensitive.
func IsStateCode(code string) bool {
	_, ok := UsStateCodes[toUpper(code)]
	return ok
}

// StateName returns the full name for a state code, or "" if unknown.
func StateName(code string) string {
	return UsStateCodes[toUpper(code)]
}
