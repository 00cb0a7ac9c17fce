package types

// MenuRequest is the payload the browser front end sends when asking for a
// generated menu. JSON field names are the Portuguese wire names the front
// end uses; only MealType and PartySize are required.
type MenuRequest struct {
	MealType     string   `json:"tipoRefeicao"`
	Occasion     string   `json:"ocasiao"`
	PartySize    int      `json:"numeroPessoas"`
	Budget       *float64 `json:"orcamento"`
	Preferences  string   `json:"preferencias"`
	Restrictions string   `json:"restricoes"`
	UserID       string   `json:"usuarioId"`
}

// Dish is a single item of a generated menu. Every field except the name is
// optional; missing fields render as empty strings or empty lists.
type Dish struct {
	Name          string   `json:"nome"`
	Category      string   `json:"categoria"`
	Description   string   `json:"descricao"`
	Ingredients   []string `json:"ingredientes"`
	PrepTime      string   `json:"tempoPreparo"`
	Difficulty    string   `json:"dificuldade"`
	EstimatedCost string   `json:"custoEstimado"`
}

// GeneratedMenu is the structured result of one generation attempt. When the
// model's reply cannot be parsed the extractor substitutes a fallback value
// with the same shape, so ErrorNote and RawResponse are only set on fallback.
type GeneratedMenu struct {
	Title         string   `json:"titulo"`
	Description   string   `json:"descricao"`
	Dishes        []Dish   `json:"pratos"`
	ChefTips      []string `json:"dicasChef"`
	TotalPrepTime string   `json:"tempoTotalPreparo"`
	ErrorNote     string   `json:"erro,omitempty"`
	RawResponse   string   `json:"respostaOriginal,omitempty"`
}
