package service

import (
	"fmt"
	"strconv"

	"github.com/cardapio-inteligente/backend/internal/types"
)

// Default phrases substituted for optional request fields. The extractor
// depends on the schema field names embedded in the prompt, so both are kept
// as stable literals.
const (
	defaultOccasion     = "casual"
	defaultBudget       = "moderado"
	defaultPreferences  = "sem preferências específicas"
	defaultRestrictions = "nenhuma"
)

const promptTemplate = `Você é um chef especialista em criar cardápios personalizados.

Crie um cardápio detalhado com as seguintes especificações:
- Tipo de refeição: %s
- Ocasião: %s
- Número de pessoas: %d
- Orçamento: R$ %s
- Preferências: %s
- Restrições alimentares: %s

Forneça o cardápio em formato JSON com a seguinte estrutura:
{
  "titulo": "nome do cardápio",
  "descricao": "descrição breve",
  "pratos": [
    {
      "nome": "nome do prato",
      "categoria": "entrada/prato principal/sobremesa/bebida",
      "descricao": "descrição detalhada",
      "ingredientes": ["lista", "de", "ingredientes"],
      "tempoPreparo": "tempo estimado",
      "dificuldade": "fácil/média/difícil",
      "custoEstimado": "valor em reais"
    }
  ],
  "dicasChef": ["dica 1", "dica 2"],
  "tempoTotalPreparo": "tempo total"
}

Retorne APENAS o JSON, sem texto adicional.`

// BuildMenuPrompt turns a menu request into the instruction sent to the
// model. Pure function: missing optional fields fall back to fixed phrases,
// there is no failure mode.
func BuildMenuPrompt(req types.MenuRequest) string {
	occasion := req.Occasion
	if occasion == "" {
		occasion = defaultOccasion
	}

	budget := defaultBudget
	if req.Budget != nil {
		budget = strconv.FormatFloat(*req.Budget, 'f', 2, 64)
	}

	preferences := req.Preferences
	if preferences == "" {
		preferences = defaultPreferences
	}

	restrictions := req.Restrictions
	if restrictions == "" {
		restrictions = defaultRestrictions
	}

	return fmt.Sprintf(promptTemplate,
		req.MealType,
		occasion,
		req.PartySize,
		budget,
		preferences,
		restrictions,
	)
}
