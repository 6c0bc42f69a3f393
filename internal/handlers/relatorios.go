package handlers

import (
	"net/http"
	"path/filepath"

	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/relatorios"
	"gestor-visitas/internal/response"
	"gestor-visitas/internal/visitas"

	"github.com/gin-gonic/gin"
)

// RelatoriosHandler gera os relatorios a partir do registro de visitas.
type RelatoriosHandler struct {
	Gerador  *relatorios.Gerador
	Registro *visitas.Registro
	Escolas  *escolas.Servico
}

func NovoRelatoriosHandler(g *relatorios.Gerador, registro *visitas.Registro, escolasSrv *escolas.Servico) *RelatoriosHandler {
	return &RelatoriosHandler{Gerador: g, Registro: registro, Escolas: escolasSrv}
}

// @Summary		Relatório em texto
// @Description	Relatório geral das visitas agrupado por escola, em texto puro
// @Tags			relatorios
// @Produce		plain
// @Param			escola_id	query		int		false	"ID da escola"
// @Param			data_inicio	query		string	false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string	false	"Data final (YYYY-MM-DD)"
// @Success		200			{string}	string
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/relatorios/texto [get]
func (h *RelatoriosHandler) Texto(c *gin.Context) {
	lista, err := h.Registro.Listar(escolaIDDaQuery(c), c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.String(http.StatusOK, h.Gerador.RelatorioTexto(lista, ""))
}

// @Summary		Relatório resumido
// @Description	Estatísticas das visitas em texto puro
// @Tags			relatorios
// @Produce		plain
// @Success		200	{string}	string
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/relatorios/resumo [get]
func (h *RelatoriosHandler) Resumo(c *gin.Context) {
	est, err := h.Registro.Estatisticas()
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.String(http.StatusOK, h.Gerador.RelatorioResumo(est))
}

// @Summary		Planilha de visitas
// @Description	Gera a planilha consolidada (xlsx) e devolve o arquivo para download
// @Tags			relatorios
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			escola_id	query		int		false	"ID da escola"
// @Param			data_inicio	query		string	false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string	false	"Data final (YYYY-MM-DD)"
// @Success		200			{file}		file
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/relatorios/planilha [get]
func (h *RelatoriosHandler) Planilha(c *gin.Context) {
	lista, err := h.Registro.Listar(escolaIDDaQuery(c), c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	caminho, err := h.Gerador.RelatorioExcel(lista)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.FileAttachment(caminho, filepath.Base(caminho))
}

// @Summary		Folha de oficinas
// @Description	Gera a folha de avaliação de oficinas (xlsx), uma aba por visita
// @Tags			relatorios
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			visita_id	query		string	false	"ID de uma visita específica"
// @Param			escola_id	query		int		false	"ID da escola"
// @Param			data_inicio	query		string	false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string	false	"Data final (YYYY-MM-DD)"
// @Success		200			{file}		file
// @Failure		404			{object}	response.ErrorResponse	"Nenhuma visita encontrada (NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/relatorios/folha-oficinas [get]
func (h *RelatoriosHandler) FolhaOficinas(c *gin.Context) {
	if visitaID := c.Query("visita_id"); visitaID != "" {
		visita, err := h.Registro.Obter(visitaID)
		if err != nil {
			tratarErro(c, err)
			return
		}
		caminho, err := h.Gerador.FolhaOficinas([]models.Visita{*visita})
		if err != nil {
			tratarErro(c, err)
			return
		}
		c.FileAttachment(caminho, filepath.Base(caminho))
		return
	}

	visitasLista, err := h.Registro.Listar(escolaIDDaQuery(c), c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		tratarErro(c, err)
		return
	}
	if len(visitasLista) == 0 {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Nenhuma visita encontrada para o filtro",
		})
		return
	}
	caminho, err := h.Gerador.FolhaOficinas(visitasLista)
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.FileAttachment(caminho, filepath.Base(caminho))
}

// @Summary		Escolas sem visita
// @Description	Lista as escolas (opcionalmente só do Bloco 1) que ainda não receberam visita
// @Tags			relatorios
// @Produce		json
// @Param			bloco1	query		bool	false	"Somente escolas do Bloco 1"
// @Success		200		{array}		string
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/relatorios/escolas-sem-visita [get]
func (h *RelatoriosHandler) EscolasSemVisita(c *gin.Context) {
	todas, err := h.Escolas.Listar(c.Query("bloco1") == "true")
	if err != nil {
		tratarErro(c, err)
		return
	}
	visitasLista, err := h.Registro.Listar(nil, "", "")
	if err != nil {
		tratarErro(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Gerador.EscolasSemVisita(todas, visitasLista))
}
