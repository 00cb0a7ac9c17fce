package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cardapio-inteligente/backend/internal/types"
)

// maxRawEcho bounds the copy of the raw reply kept on the fallback menu for
// diagnostics.
const maxRawEcho = 1000

// ExtractMenu parses the model's raw reply into a GeneratedMenu, tolerating
// surrounding prose and markdown code fences. It never fails: on any parse
// problem it returns a fallback menu with the same shape, so downstream code
// never branches on structure.
func ExtractMenu(raw string, req types.MenuRequest) types.GeneratedMenu {
	text := strings.TrimSpace(raw)

	// Strip markdown code fences wherever they occur, language-tagged first.
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Use the first {...} span as the candidate, greedy to the last brace.
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	var menu types.GeneratedMenu
	if err := json.Unmarshal([]byte(text), &menu); err != nil {
		return fallbackMenu(raw, req)
	}

	return coerceMenu(menu)
}

// coerceMenu normalizes a parsed menu so absent optional fields render as
// empty values instead of null.
func coerceMenu(menu types.GeneratedMenu) types.GeneratedMenu {
	if menu.Dishes == nil {
		menu.Dishes = []types.Dish{}
	}
	if menu.ChefTips == nil {
		menu.ChefTips = []string{}
	}
	for i := range menu.Dishes {
		if menu.Dishes[i].Ingredients == nil {
			menu.Dishes[i].Ingredients = []string{}
		}
	}
	return menu
}

// fallbackMenu is the deterministic substitute returned when the reply cannot
// be parsed. It carries a bounded copy of the raw text for diagnostics.
func fallbackMenu(raw string, req types.MenuRequest) types.GeneratedMenu {
	echo := strings.TrimSpace(raw)
	if len(echo) > maxRawEcho {
		echo = echo[:maxRawEcho]
	}

	return types.GeneratedMenu{
		ErrorNote:     "Não foi possível gerar o cardápio no formato esperado",
		Title:         fmt.Sprintf("Cardápio de %s", req.MealType),
		Description:   "O sistema está processando sua solicitação. Tente novamente.",
		Dishes:        []types.Dish{},
		ChefTips:      []string{"Tente novamente em alguns instantes"},
		TotalPrepTime: "Não disponível",
		RawResponse:   echo,
	}
}
