package handlers

import (
	"net/http"
	"strconv"

	"gestor-visitas/internal/distancias"
	"gestor-visitas/internal/response"

	"github.com/gin-gonic/gin"
)

// DistanciasHandler expoe as consultas de rota entre escolas.
type DistanciasHandler struct {
	Servico *distancias.Servico
}

func NovoDistanciasHandler(srv *distancias.Servico) *DistanciasHandler {
	return &DistanciasHandler{Servico: srv}
}

// @Summary		Rota entre duas escolas
// @Description	Calcula distância e duração de carro entre duas escolas, com cache em Redis
// @Tags			distancias
// @Produce		json
// @Param			origem	query		int	true	"ID da escola de origem"
// @Param			destino	query		int	true	"ID da escola de destino"
// @Success		200		{object}	distancias.Rota
// @Failure		400		{object}	response.ErrorResponse	"Parâmetros inválidos (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Escola não encontrada (NOT_FOUND)"
// @Failure		502		{object}	response.ErrorResponse	"OSRM indisponível (EXTERNAL_SERVICE_ERROR)"
// @Router			/distancias/rota [get]
func (h *DistanciasHandler) Rota(c *gin.Context) {
	origem, err1 := strconv.ParseUint(c.Query("origem"), 10, 32)
	destino, err2 := strconv.ParseUint(c.Query("destino"), 10, 32)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Informe origem e destino como IDs de escola",
		})
		return
	}
	rota, err := h.Servico.RotaEntreEscolas(c.Request.Context(), uint(origem), uint(destino))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, rota)
}

// @Summary		Escolas mais próximas
// @Description	Ranqueia as escolas com coordenadas pela distância de carro até a escola de referência
// @Tags			distancias
// @Produce		json
// @Param			id		path		int	true	"ID da escola de referência"
// @Param			limite	query		int	false	"Quantidade máxima (padrão 5)"
// @Success		200		{array}		distancias.EscolaProxima
// @Failure		400		{object}	response.ErrorResponse	"Escola sem coordenadas (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Escola não encontrada (NOT_FOUND)"
// @Router			/distancias/escolas/{id}/proximas [get]
func (h *DistanciasHandler) Proximas(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	limite, _ := strconv.Atoi(c.Query("limite"))
	proximas, err := h.Servico.EscolasProximas(c.Request.Context(), id, limite)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, proximas)
}

// @Summary		Matriz de distâncias
// @Description	Devolve a matriz pré-calculada do Bloco 1; recalcula se ainda não existir
// @Tags			distancias
// @Produce		json
// @Success		200	{object}	distancias.Matriz
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/distancias/matriz [get]
func (h *DistanciasHandler) Matriz(c *gin.Context) {
	matriz, err := h.Servico.ObterMatriz(c.Request.Context())
	if err != nil {
		tratarErro(c, err)
		return
	}
	if matriz == nil {
		matriz, err = h.Servico.CalcularMatriz(c.Request.Context())
		if err != nil {
			tratarErro(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, matriz)
}
