package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gestor-visitas/internal/response"
	"gestor-visitas/internal/visitas"

	"github.com/gin-gonic/gin"
)

// VisitasHandler expoe o registro permanente de visitas.
type VisitasHandler struct {
	Registro *visitas.Registro
}

func NovoVisitasHandler(registro *visitas.Registro) *VisitasHandler {
	return &VisitasHandler{Registro: registro}
}

func escolaIDDaQuery(c *gin.Context) *uint {
	raw := c.Query("escola_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(id)
	return &value
}

// @Summary		Registro avulso de visita
// @Description	Registra uma visita diretamente, sem passar por um evento da agenda
// @Tags			visitas
// @Accept			multipart/form-data
// @Produce		json
// @Param			escola_id		formData	int		false	"ID da escola"
// @Param			escola_nome		formData	string	false	"Nome da escola (obrigatório se não houver escola_id)"
// @Param			data			formData	string	false	"Data (YYYY-MM-DD, padrão hoje)"
// @Param			observacoes		formData	string	false	"Observações"
// @Param			contribuicoes	formData	string	false	"Contribuições"
// @Param			combinados		formData	string	false	"Combinados"
// @Param			oficina			formData	string	false	"Nome da oficina"
// @Param			turno			formData	string	false	"Turno"
// @Param			articulador		formData	string	false	"Nome do articulador"
// @Param			turmas			formData	string	false	"Turmas atendidas (JSON)"
// @Param			anexos			formData	file	false	"Arquivos de evidência"
// @Success		201				{object}	models.Visita
// @Failure		400				{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		500				{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/visitas [post]
func (h *VisitasHandler) Registrar(c *gin.Context) {
	nv := visitas.NovaVisita{
		EscolaNome:      c.PostForm("escola_nome"),
		Data:            c.PostForm("data"),
		Observacoes:     c.PostForm("observacoes"),
		Contribuicoes:   c.PostForm("contribuicoes"),
		Combinados:      c.PostForm("combinados"),
		Oficina:         c.PostForm("oficina"),
		Turno:           c.PostForm("turno"),
		ArticuladorNome: c.PostForm("articulador"),
	}
	if raw := c.PostForm("escola_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			value := uint(id)
			nv.EscolaID = &value
		}
	}
	if raw := c.PostForm("turmas"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &nv.Turmas); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Campo turmas não é um JSON válido",
				Details: err.Error(),
			})
			return
		}
	}

	if form, err := c.MultipartForm(); err == nil {
		arquivos, err := lerArquivos(form.File["anexos"])
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Erro ao ler os anexos enviados",
				Details: err.Error(),
			})
			return
		}
		nv.Anexos = arquivos
	}

	visita, err := h.Registro.Registrar(nv)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, visita)
}

// @Summary		Lista de visitas
// @Description	Lista visitas com filtros opcionais de escola e período
// @Tags			visitas
// @Produce		json
// @Param			escola_id	query		int		false	"ID da escola"
// @Param			data_inicio	query		string	false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string	false	"Data final (YYYY-MM-DD)"
// @Success		200			{array}		models.Visita
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/visitas [get]
func (h *VisitasHandler) Listar(c *gin.Context) {
	lista, err := h.Registro.Listar(escolaIDDaQuery(c), c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// @Summary		Detalhe de visita
// @Tags			visitas
// @Produce		json
// @Param			id	path		string	true	"ID da visita"
// @Success		200	{object}	models.Visita
// @Failure		404	{object}	response.ErrorResponse	"Visita não encontrada (NOT_FOUND)"
// @Router			/visitas/{id} [get]
func (h *VisitasHandler) Obter(c *gin.Context) {
	visita, err := h.Registro.Obter(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, visita)
}

type ObservacoesRequest struct {
	Observacoes string `json:"observacoes" binding:"required"`
}

// @Summary		Correção das observações
// @Description	Atualiza apenas o texto das observações de uma visita
// @Tags			visitas
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"ID da visita"
// @Param			corpo	body		ObservacoesRequest	true	"Novo texto"
// @Success		200		{object}	response.SuccessResponse
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Visita não encontrada (NOT_FOUND)"
// @Router			/visitas/{id}/observacoes [put]
func (h *VisitasHandler) AtualizarObservacoes(c *gin.Context) {
	var req ObservacoesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	if err := h.Registro.AtualizarObservacoes(c.Param("id"), req.Observacoes); err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Observações atualizadas"})
}

// @Summary		Exclusão de visita
// @Description	Remove a visita, suas turmas, anexos e os arquivos gravados
// @Tags			visitas
// @Produce		json
// @Param			id	path		string	true	"ID da visita"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Visita não encontrada (NOT_FOUND)"
// @Router			/visitas/{id} [delete]
func (h *VisitasHandler) Excluir(c *gin.Context) {
	if err := h.Registro.Excluir(c.Param("id")); err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Visita excluída"})
}

// @Summary		Estatísticas das visitas
// @Description	Totais por escola e por mês, escola mais visitada
// @Tags			visitas
// @Produce		json
// @Success		200	{object}	visitas.Estatisticas
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/visitas/estatisticas [get]
func (h *VisitasHandler) Estatisticas(c *gin.Context) {
	est, err := h.Registro.Estatisticas()
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}
