package registry

// Kind classifies a jurisdiction in the reference table.
type Kind int

const (
	// KindState is one of the 50 states.
	KindState Kind = iota
	// KindDistrict is the District of Columbia.
	KindDistrict
	// KindSecondary is Puerto Rico.
	KindSecondary
	// KindTerritory is any other inhabited U.S. territory.
	KindTerritory
)

type jurisdiction struct {
	StateCode
	kind Kind
}

// jurisdictions lists every FIPS state-level code the registry knows about.
var jurisdictions = []jurisdiction{
	{StateCode{"01", "AL", "Alabama"}, KindState},
	{StateCode{"02", "AK", "Alaska"}, KindState},
	{StateCode{"04", "AZ", "Arizona"}, KindState},
	{StateCode{"05", "AR", "Arkansas"}, KindState},
	{StateCode{"06", "CA", "California"}, KindState},
	{StateCode{"08", "CO", "Colorado"}, KindState},
	{StateCode{"09", "CT", "Connecticut"}, KindState},
	{StateCode{"10", "DE", "Delaware"}, KindState},
	{StateCode{"11", "DC", "District of Columbia"}, KindDistrict},
	{StateCode{"12", "FL", "Florida"}, KindState},
	{StateCode{"13", "GA", "Georgia"}, KindState},
	{StateCode{"15", "HI", "Hawaii"}, KindState},
	{StateCode{"16", "ID", "Idaho"}, KindState},
	{StateCode{"17", "IL", "Illinois"}, KindState},
	{StateCode{"18", "IN", "Indiana"}, KindState},
	{StateCode{"19", "IA", "Iowa"}, KindState},
	{StateCode{"20", "KS", "Kansas"}, KindState},
	{StateCode{"21", "KY", "Kentucky"}, KindState},
	{StateCode{"22", "LA", "Louisiana"}, KindState},
	{StateCode{"23", "ME", "Maine"}, KindState},
	{StateCode{"24", "MD", "Maryland"}, KindState},
	{StateCode{"25", "MA", "Massachusetts"}, KindState},
	{StateCode{"26", "MI", "Michigan"}, KindState},
	{StateCode{"27", "MN", "Minnesota"}, KindState},
	{StateCode{"28", "MS", "Mississippi"}, KindState},
	{StateCode{"29", "MO", "Missouri"}, KindState},
	{StateCode{"30", "MT", "Montana"}, KindState},
	{StateCode{"31", "NE", "Nebraska"}, KindState},
	{StateCode{"32", "NV", "Nevada"}, KindState},
	{StateCode{"33", "NH", "New Hampshire"}, KindState},
	{StateCode{"34", "NJ", "New Jersey"}, KindState},
	{StateCode{"35", "NM", "New Mexico"}, KindState},
	{StateCode{"36", "NY", "New York"}, KindState},
	{StateCode{"37", "NC", "North Carolina"}, KindState},
	{StateCode{"38", "ND", "North Dakota"}, KindState},
	{StateCode{"39", "OH", "Ohio"}, KindState},
	{StateCode{"40", "OK", "Oklahoma"}, KindState},
	{StateCode{"41", "OR", "Oregon"}, KindState},
	{StateCode{"42", "PA", "Pennsylvania"}, KindState},
	{StateCode{"44", "RI", "Rhode Island"}, KindState},
	{StateCode{"45", "SC", "South Carolina"}, KindState},
	{StateCode{"46", "SD", "South Dakota"}, KindState},
	{StateCode{"47", "TN", "Tennessee"}, KindState},
	{StateCode{"48", "TX", "Texas"}, KindState},
	{StateCode{"49", "UT", "Utah"}, KindState},
	{StateCode{"50", "VT", "Vermont"}, KindState},
	{StateCode{"51", "VA", "Virginia"}, KindState},
	{StateCode{"53", "WA", "Washington"}, KindState},
	{StateCode{"54", "WV", "West Virginia"}, KindState},
	{StateCode{"55", "WI", "Wisconsin"}, KindState},
	{StateCode{"56", "WY", "Wyoming"}, KindState},
	{StateCode{"60", "AS", "American Samoa"}, KindTerritory},
	{StateCode{"66", "GU", "Guam"}, KindTerritory},
	{StateCode{"69", "MP", "Northern Mariana Islands"}, KindTerritory},
	{StateCode{"72", "PR", "Puerto Rico"}, KindSecondary},
	{StateCode{"78", "VI", "Virgin Islands"}, KindTerritory},
}
