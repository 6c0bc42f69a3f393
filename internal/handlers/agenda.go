package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gestor-visitas/internal/agenda"
	"gestor-visitas/internal/response"
	"gestor-visitas/internal/visitas"
	"gestor-visitas/internal/ws"

	"github.com/gin-gonic/gin"
)

// AgendaHandler expoe as operacoes da agenda e avisa o hub WebSocket a cada
// mutacao para os calendarios abertos se atualizarem.
type AgendaHandler struct {
	Agenda *agenda.Agenda
	Hub    *ws.Hub
}

func NovoAgendaHandler(a *agenda.Agenda, hub *ws.Hub) *AgendaHandler {
	return &AgendaHandler{Agenda: a, Hub: hub}
}

type EventoRequest struct {
	Tipo         string  `json:"tipo"`
	Titulo       string  `json:"titulo"`
	Data         string  `json:"data" binding:"required"`
	HoraInicio   *string `json:"hora_inicio"`
	HoraFim      *string `json:"hora_fim"`
	Turno        string  `json:"turno"`
	DiaInteiro   bool    `json:"dia_inteiro"`
	EscolaID     *uint   `json:"escola_id"`
	EscolaNome   string  `json:"escola_nome"`
	Local        string  `json:"local"`
	Descricao    string  `json:"descricao"`
	MediadorID   *uint   `json:"mediador_id"`
	MediadorNome string  `json:"mediador_nome"`
}

// @Summary		Criação de evento
// @Description	Cria um evento na agenda com status planejado
// @Tags			agenda
// @Accept			json
// @Produce		json
// @Param			evento	body		EventoRequest			true	"Dados do evento"
// @Success		201		{object}	models.Evento			"Evento criado"
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/agenda/eventos [post]
func (h *AgendaHandler) CriarEvento(c *gin.Context) {
	var req EventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}

	evento, err := h.Agenda.AdicionarEvento(agenda.NovoEvento{
		Tipo:         req.Tipo,
		Titulo:       req.Titulo,
		Data:         req.Data,
		HoraInicio:   req.HoraInicio,
		HoraFim:      req.HoraFim,
		Turno:        req.Turno,
		DiaInteiro:   req.DiaInteiro,
		EscolaID:     req.EscolaID,
		EscolaNome:   req.EscolaNome,
		Local:        req.Local,
		Descricao:    req.Descricao,
		MediadorID:   req.MediadorID,
		MediadorNome: req.MediadorNome,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("criado", evento)
	c.JSON(http.StatusCreated, evento)
}

// @Summary		Lista de eventos
// @Description	Lista eventos, opcionalmente filtrados por intervalo de datas
// @Tags			agenda
// @Produce		json
// @Param			data_inicio	query		string	false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string	false	"Data final (YYYY-MM-DD)"
// @Success		200			{array}		models.Evento
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/agenda/eventos [get]
func (h *AgendaHandler) ListarEventos(c *gin.Context) {
	eventos, err := h.Agenda.ListarEventos(c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// @Summary		Detalhe de evento
// @Tags			agenda
// @Produce		json
// @Param			id	path		string	true	"ID do evento"
// @Success		200	{object}	models.Evento
// @Failure		404	{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id} [get]
func (h *AgendaHandler) ObterEvento(c *gin.Context) {
	evento, err := h.Agenda.ObterEvento(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, evento)
}

// @Summary		Atualização de evento
// @Description	Atualiza os campos presentes no corpo; o status não muda por aqui
// @Tags			agenda
// @Accept			json
// @Produce		json
// @Param			id		path		string						true	"ID do evento"
// @Param			evento	body		agenda.AtualizacaoEvento	true	"Campos a atualizar"
// @Success		200		{object}	models.Evento
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id} [put]
func (h *AgendaHandler) AtualizarEvento(c *gin.Context) {
	var req agenda.AtualizacaoEvento
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	evento, err := h.Agenda.AtualizarEvento(c.Param("id"), req)
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("atualizado", evento)
	c.JSON(http.StatusOK, evento)
}

// @Summary		Remoção de evento
// @Tags			agenda
// @Produce		json
// @Param			id	path		string	true	"ID do evento"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id} [delete]
func (h *AgendaHandler) RemoverEvento(c *gin.Context) {
	evento, err := h.Agenda.ObterEvento(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	if err := h.Agenda.RemoverEvento(evento.ID); err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("removido", evento)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Evento removido"})
}

type MoverEventoRequest struct {
	NovaData       string  `json:"nova_data" binding:"required"`
	NovaHoraInicio *string `json:"nova_hora_inicio"`
}

// @Summary		Remarcação de evento
// @Description	Move o evento para outra data, recalculando o dia da semana
// @Tags			agenda
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"ID do evento"
// @Param			corpo	body		MoverEventoRequest	true	"Nova data"
// @Success		200		{object}	models.Evento
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id}/mover [post]
func (h *AgendaHandler) MoverEvento(c *gin.Context) {
	var req MoverEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	if err := h.Agenda.MoverEvento(c.Param("id"), req.NovaData, req.NovaHoraInicio); err != nil {
		tratarErro(c, err)
		return
	}
	evento, err := h.Agenda.ObterEvento(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("atualizado", evento)
	c.JSON(http.StatusOK, evento)
}

type DuplicarEventoRequest struct {
	NovaData string `json:"nova_data" binding:"required"`
}

// @Summary		Duplicação de evento
// @Description	Copia o evento para outra data com status planejado
// @Tags			agenda
// @Accept			json
// @Produce		json
// @Param			id		path		string					true	"ID do evento"
// @Param			corpo	body		DuplicarEventoRequest	true	"Data da cópia"
// @Success		201		{object}	models.Evento
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id}/duplicar [post]
func (h *AgendaHandler) DuplicarEvento(c *gin.Context) {
	var req DuplicarEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}
	copia, err := h.Agenda.DuplicarEvento(c.Param("id"), req.NovaData)
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("criado", copia)
	c.JSON(http.StatusCreated, copia)
}

// @Summary		Cancelamento de evento
// @Description	Cancela um evento planejado; cancelar de novo é no-op
// @Tags			agenda
// @Produce		json
// @Param			id	path		string	true	"ID do evento"
// @Success		200	{object}	models.Evento
// @Failure		400	{object}	response.ErrorResponse	"Evento executado não pode ser cancelado (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id}/cancelar [post]
func (h *AgendaHandler) CancelarEvento(c *gin.Context) {
	if err := h.Agenda.CancelarEvento(c.Param("id")); err != nil {
		tratarErro(c, err)
		return
	}
	evento, err := h.Agenda.ObterEvento(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("cancelado", evento)
	c.JSON(http.StatusOK, evento)
}

// @Summary		Marcação de evento como executado
// @Description	Marca um evento planejado como executado, sem criar visita
// @Tags			agenda
// @Produce		json
// @Param			id	path		string	true	"ID do evento"
// @Success		200	{object}	models.Evento
// @Failure		400	{object}	response.ErrorResponse	"Evento cancelado não pode ser executado (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Router			/agenda/eventos/{id}/executado [post]
func (h *AgendaHandler) MarcarExecutado(c *gin.Context) {
	if err := h.Agenda.MarcarExecutado(c.Param("id")); err != nil {
		tratarErro(c, err)
		return
	}
	evento, err := h.Agenda.ObterEvento(c.Param("id"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	h.Hub.NotificarEvento("executado", evento)
	c.JSON(http.StatusOK, evento)
}

// @Summary		Execução de visita
// @Description	Executa um evento do tipo visita: grava os anexos (obrigatórios), cria o registro permanente da visita e marca o evento como executado, tudo ou nada
// @Tags			agenda
// @Accept			multipart/form-data
// @Produce		json
// @Param			id				path		string	true	"ID do evento"
// @Param			observacoes		formData	string	false	"Observações"
// @Param			contribuicoes	formData	string	false	"Contribuições"
// @Param			combinados		formData	string	false	"Combinados"
// @Param			oficina			formData	string	false	"Nome da oficina"
// @Param			turno			formData	string	false	"Turno"
// @Param			articulador		formData	string	false	"Nome do articulador"
// @Param			turmas			formData	string	false	"Turmas atendidas (JSON)"
// @Param			anexos			formData	file	true	"Arquivos de evidência"
// @Success		201				{object}	models.Visita
// @Failure		400				{object}	response.ErrorResponse	"Evento não é visita, já executado ou sem anexo válido (VALIDATION_ERROR)"
// @Failure		404				{object}	response.ErrorResponse	"Evento não encontrado (NOT_FOUND)"
// @Failure		500				{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/agenda/eventos/{id}/executar-visita [post]
func (h *AgendaHandler) ExecutarVisita(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Formulário multipart inválido",
			Details: err.Error(),
		})
		return
	}

	arquivos, err := lerArquivos(form.File["anexos"])
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro ao ler os anexos enviados",
			Details: err.Error(),
		})
		return
	}

	var turmas []visitas.Turma
	if raw := c.PostForm("turmas"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &turmas); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Campo turmas não é um JSON válido",
				Details: err.Error(),
			})
			return
		}
	}

	visita, err := h.Agenda.ExecutarVisita(c.Param("id"), agenda.ExecucaoVisita{
		Observacoes:     c.PostForm("observacoes"),
		Contribuicoes:   c.PostForm("contribuicoes"),
		Combinados:      c.PostForm("combinados"),
		Oficina:         c.PostForm("oficina"),
		Turno:           c.PostForm("turno"),
		ArticuladorNome: c.PostForm("articulador"),
		Turmas:          turmas,
		Anexos:          arquivos,
	})
	if err != nil {
		tratarErro(c, err)
		return
	}

	if evento, err := h.Agenda.ObterEvento(c.Param("id")); err == nil {
		h.Hub.NotificarEvento("executado", evento)
	}
	c.JSON(http.StatusCreated, visita)
}

// @Summary		Agenda do dia
// @Description	Eventos de um dia, os sem horário primeiro
// @Tags			agenda
// @Produce		json
// @Param			data	path		string	true	"Data (YYYY-MM-DD)"
// @Success		200		{array}		models.Evento
// @Failure		400		{object}	response.ErrorResponse	"Data malformada (VALIDATION_ERROR)"
// @Router			/agenda/dia/{data} [get]
func (h *AgendaHandler) Dia(c *gin.Context) {
	eventos, err := h.Agenda.EventosDia(c.Param("data"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// @Summary		Agenda da semana
// @Description	Eventos da semana (segunda a domingo) que contém a data informada
// @Tags			agenda
// @Produce		json
// @Param			data	query		string	false	"Data de referência (YYYY-MM-DD, padrão hoje)"
// @Success		200		{object}	agenda.Semana
// @Failure		400		{object}	response.ErrorResponse	"Data malformada (VALIDATION_ERROR)"
// @Router			/agenda/semana [get]
func (h *AgendaHandler) Semana(c *gin.Context) {
	semana, err := h.Agenda.EventosSemana(c.Query("data"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, semana)
}

// @Summary		Agenda do mês
// @Tags			agenda
// @Produce		json
// @Param			ano	query		int	false	"Ano (padrão atual)"
// @Param			mes	query		int	false	"Mês 1-12 (padrão atual)"
// @Success		200	{object}	agenda.Mes
// @Failure		400	{object}	response.ErrorResponse	"Mês inválido (VALIDATION_ERROR)"
// @Router			/agenda/mes [get]
func (h *AgendaHandler) Mes(c *gin.Context) {
	ano, _ := strconv.Atoi(c.Query("ano"))
	mes, _ := strconv.Atoi(c.Query("mes"))
	visao, err := h.Agenda.EventosMes(ano, mes)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, visao)
}

// @Summary		Estatísticas do mês
// @Description	Totais de eventos do mês por tipo e por status
// @Tags			agenda
// @Produce		json
// @Param			ano	query		int	false	"Ano (padrão atual)"
// @Param			mes	query		int	false	"Mês 1-12 (padrão atual)"
// @Success		200	{object}	agenda.EstatisticasMes
// @Failure		400	{object}	response.ErrorResponse	"Mês inválido (VALIDATION_ERROR)"
// @Router			/agenda/mes/estatisticas [get]
func (h *AgendaHandler) EstatisticasMes(c *gin.Context) {
	ano, _ := strconv.Atoi(c.Query("ano"))
	mes, _ := strconv.Atoi(c.Query("mes"))
	stats, err := h.Agenda.EstatisticasDoMes(ano, mes)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
