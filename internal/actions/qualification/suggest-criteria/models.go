package suggestcriteria

type Input struct {
	Business string `json:"business"`
	Niche    string `json:"niche,omitempty"`
}

type Output struct {
	Rules       []string `json:"rules"`
	Description string   `json:"description"`
}
