package handlers

import (
	"net/http"
	"strconv"

	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/response"

	"github.com/gin-gonic/gin"
)

// EscolasHandler expoe o cadastro de escolas.
type EscolasHandler struct {
	Servico *escolas.Servico
}

func NovoEscolasHandler(srv *escolas.Servico) *EscolasHandler {
	return &EscolasHandler{Servico: srv}
}

func idDoCaminho(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "ID inválido",
			Details: c.Param("id"),
		})
		return 0, false
	}
	return uint(id), true
}

// @Summary		Lista de escolas
// @Tags			escolas
// @Produce		json
// @Param			bloco1	query		bool	false	"Somente escolas do Bloco 1"
// @Success		200		{array}		models.Escola
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/escolas [get]
func (h *EscolasHandler) Listar(c *gin.Context) {
	apenasBloco1 := c.Query("bloco1") == "true"
	lista, err := h.Servico.Listar(apenasBloco1)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// @Summary		Detalhe de escola
// @Tags			escolas
// @Produce		json
// @Param			id	path		int	true	"ID da escola"
// @Success		200	{object}	models.Escola
// @Failure		404	{object}	response.ErrorResponse	"Escola não encontrada (NOT_FOUND)"
// @Router			/escolas/{id} [get]
func (h *EscolasHandler) Obter(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	escola, err := h.Servico.Obter(id)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, escola)
}

// @Summary		Busca de escola
// @Description	Busca por ID numérico ou trecho do nome usual
// @Tags			escolas
// @Produce		json
// @Param			termo	query		string	true	"Termo de busca"
// @Success		200		{object}	models.Escola
// @Failure		404		{object}	response.ErrorResponse	"Nenhuma escola encontrada (NOT_FOUND)"
// @Router			/escolas/busca [get]
func (h *EscolasHandler) Buscar(c *gin.Context) {
	escola, err := h.Servico.Buscar(c.Query("termo"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, escola)
}

type EscolaRequest struct {
	NomeOficial string `json:"nome_oficial" binding:"required"`
	NomeUsual   string `json:"nome_usual" binding:"required"`
	Diretor     string `json:"diretor"`
	Mediador    string `json:"mediador"`
}

// @Summary		Cadastro de escola
// @Tags			escolas
// @Accept			json
// @Produce		json
// @Param			escola	body		EscolaRequest	true	"Dados da escola"
// @Success		201		{object}	models.Escola
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/escolas [post]
func (h *EscolasHandler) Adicionar(c *gin.Context) {
	var req EscolaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	escola, err := h.Servico.Adicionar(req.NomeOficial, req.NomeUsual, req.Diretor, req.Mediador)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, escola)
}

type AtualizarEscolaRequest struct {
	NomeOficial *string  `json:"nome_oficial"`
	NomeUsual   *string  `json:"nome_usual"`
	Diretor     *string  `json:"diretor"`
	Mediador    *string  `json:"mediador"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// @Summary		Atualização de escola
// @Description	Atualiza somente os campos presentes no corpo
// @Tags			escolas
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"ID da escola"
// @Param			escola	body		AtualizarEscolaRequest	true	"Campos a atualizar"
// @Success		200		{object}	models.Escola
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Escola não encontrada (NOT_FOUND)"
// @Router			/escolas/{id} [put]
func (h *EscolasHandler) Atualizar(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	var req AtualizarEscolaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	err := h.Servico.Atualizar(id, escolas.AtualizacaoEscola{
		NomeOficial: req.NomeOficial,
		NomeUsual:   req.NomeUsual,
		Diretor:     req.Diretor,
		Mediador:    req.Mediador,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}
	escola, err := h.Servico.Obter(id)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, escola)
}

// @Summary		Coordenadas da escola
// @Description	Devolve as coordenadas, geocodificando pelo Nominatim se necessário
// @Tags			escolas
// @Produce		json
// @Param			id	path		int	true	"ID da escola"
// @Success		200	{object}	escolas.Coordenadas
// @Failure		404	{object}	response.ErrorResponse	"Escola não encontrada (NOT_FOUND)"
// @Failure		502	{object}	response.ErrorResponse	"Geocodificação indisponível (EXTERNAL_SERVICE_ERROR)"
// @Router			/escolas/{id}/coordenadas [get]
func (h *EscolasHandler) Coordenadas(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	lat, lon, err := h.Servico.ObterCoordenadas(c.Request.Context(), id)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, escolas.Coordenadas{Latitude: lat, Longitude: lon})
}
