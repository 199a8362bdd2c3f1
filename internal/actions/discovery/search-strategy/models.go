package searchstrategy

type Input struct {
	Goal    string `json:"goal"`
	Context string `json:"context,omitempty"`
}

type Output struct {
	RefinedQuery string   `json:"refinedQuery"`
	Industries   []string `json:"industries"`
	Roles        []string `json:"roles"`
	Reasoning    string   `json:"reasoning"`
}
