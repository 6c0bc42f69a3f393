package handlers

import (
	"net/http"

	"gestor-visitas/internal/mediadores"
	"gestor-visitas/internal/response"

	"github.com/gin-gonic/gin"
)

// MediadoresHandler expoe o cadastro de mediadores.
type MediadoresHandler struct {
	Servico *mediadores.Servico
}

func NovoMediadoresHandler(srv *mediadores.Servico) *MediadoresHandler {
	return &MediadoresHandler{Servico: srv}
}

type MediadorRequest struct {
	Nome       string `json:"nome" binding:"required"`
	EscolaID   *uint  `json:"escola_id"`
	EscolaNome string `json:"escola_nome"`
}

// @Summary		Cadastro de mediador
// @Tags			mediadores
// @Accept			json
// @Produce		json
// @Param			mediador	body		MediadorRequest	true	"Dados do mediador"
// @Success		201			{object}	models.Mediador
// @Failure		400			{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/mediadores [post]
func (h *MediadoresHandler) Adicionar(c *gin.Context) {
	var req MediadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	mediador, err := h.Servico.Adicionar(req.Nome, req.EscolaID, req.EscolaNome)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, mediador)
}

// @Summary		Lista de mediadores
// @Tags			mediadores
// @Produce		json
// @Param			ativos	query		bool	false	"Somente mediadores ativos"
// @Success		200		{array}		models.Mediador
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/mediadores [get]
func (h *MediadoresHandler) Listar(c *gin.Context) {
	lista, err := h.Servico.Listar(c.Query("ativos") == "true")
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// @Summary		Detalhe de mediador
// @Tags			mediadores
// @Produce		json
// @Param			id	path		int	true	"ID do mediador"
// @Success		200	{object}	models.Mediador
// @Failure		404	{object}	response.ErrorResponse	"Mediador não encontrado (NOT_FOUND)"
// @Router			/mediadores/{id} [get]
func (h *MediadoresHandler) Obter(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	mediador, err := h.Servico.Obter(id)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, mediador)
}

// @Summary		Busca de mediadores
// @Tags			mediadores
// @Produce		json
// @Param			termo	query		string	true	"Trecho do nome"
// @Success		200		{array}		models.Mediador
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/mediadores/busca [get]
func (h *MediadoresHandler) Buscar(c *gin.Context) {
	lista, err := h.Servico.Buscar(c.Query("termo"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

type AtualizarMediadorRequest struct {
	Nome       *string `json:"nome"`
	EscolaID   *uint   `json:"escola_id"`
	EscolaNome *string `json:"escola_nome"`
}

// @Summary		Atualização de mediador
// @Tags			mediadores
// @Accept			json
// @Produce		json
// @Param			id			path		int							true	"ID do mediador"
// @Param			mediador	body		AtualizarMediadorRequest	true	"Campos a atualizar"
// @Success		200			{object}	models.Mediador
// @Failure		400			{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404			{object}	response.ErrorResponse	"Mediador não encontrado (NOT_FOUND)"
// @Router			/mediadores/{id} [put]
func (h *MediadoresHandler) Atualizar(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	var req AtualizarMediadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	err := h.Servico.Atualizar(id, mediadores.AtualizacaoMediador{
		Nome:       req.Nome,
		EscolaID:   req.EscolaID,
		EscolaNome: req.EscolaNome,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}
	mediador, err := h.Servico.Obter(id)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, mediador)
}

// @Summary		Desativação de mediador
// @Tags			mediadores
// @Produce		json
// @Param			id	path		int	true	"ID do mediador"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Mediador não encontrado (NOT_FOUND)"
// @Router			/mediadores/{id}/desativar [post]
func (h *MediadoresHandler) Desativar(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	if err := h.Servico.Desativar(id); err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Mediador desativado"})
}

// @Summary		Reativação de mediador
// @Tags			mediadores
// @Produce		json
// @Param			id	path		int	true	"ID do mediador"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Mediador não encontrado (NOT_FOUND)"
// @Router			/mediadores/{id}/reativar [post]
func (h *MediadoresHandler) Reativar(c *gin.Context) {
	id, ok := idDoCaminho(c)
	if !ok {
		return
	}
	if err := h.Servico.Reativar(id); err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Mediador reativado"})
}
