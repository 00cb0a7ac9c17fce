package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardapio-inteligente/backend/internal/service"
	"github.com/cardapio-inteligente/backend/internal/types"
)

// MenuHandler handles menu generation, history and favorites requests
type MenuHandler struct {
	service *service.MenuService
}

// NewMenuHandler creates a new MenuHandler instance
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{service: menuService}
}

// Generate handles POST /api/menu/gerar
func (h *MenuHandler) Generate(c *gin.Context) {
	var req types.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"sucesso": false, "erro": err.Error()})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":    true,
		"cardapioId": result.GenerationID,
		"cardapio":   result.Menu,
		"metadata":   result.Metadata,
	})
}

// History handles GET /api/menu/historico/:usuarioId
func (h *MenuHandler) History(c *gin.Context) {
	entries, err := h.service.ListHistory(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true, "cardapios": entries})
}

// AddFavorite handles POST /api/menu/favoritos
func (h *MenuHandler) AddFavorite(c *gin.Context) {
	var input service.FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"sucesso": false, "erro": err.Error()})
		return
	}

	favorite, err := h.service.AddFavorite(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":    true,
		"mensagem":   "Prato adicionado aos favoritos!",
		"favoritoId": favorite.ID,
	})
}

// ListFavorites handles GET /api/menu/favoritos/:usuarioId
func (h *MenuHandler) ListFavorites(c *gin.Context) {
	entries, err := h.service.ListFavorites(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true, "favoritos": entries})
}

// Ping handles GET /api/menu/test
func (h *MenuHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API funcionando!"})
}

// renderError maps service errors onto the wire contract: validation problems
// are 400, everything else is 500 with an optional remediation hint.
func (h *MenuHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		status = http.StatusBadRequest
	}

	body := gin.H{"sucesso": false, "erro": err.Error()}
	if solution := service.SolutionFor(err); solution != "" {
		body["solucao"] = solution
	}
	c.JSON(status, body)
}
