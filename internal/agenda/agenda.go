// Package agenda implementa o motor de agenda do programa de visitas:
// ciclo de vida dos eventos (planejado, executado, cancelado), visoes por
// dia/semana/mes e a execucao de visitas com registro permanente.
package agenda

import (
	"errors"
	"time"

	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/visitas"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agenda e o dono da colecao de eventos. Mudancas de status passam apenas
// pelas operacoes explicitas (MarcarExecutado, CancelarEvento, ExecutarVisita);
// a atualizacao generica nao toca no status.
type Agenda struct {
	db      *gorm.DB
	visitas *visitas.Registro
	escolas *escolas.Servico
}

func Nova(db *gorm.DB, registro *visitas.Registro, escolasSrv *escolas.Servico) *Agenda {
	return &Agenda{db: db, visitas: registro, escolas: escolasSrv}
}

func validarData(data string) error {
	if data == "" {
		return erros.Validacao("data", "data e obrigatoria")
	}
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return erros.Validacao("data", "data deve estar no formato YYYY-MM-DD")
	}
	return nil
}

func validarHora(campo string, hora *string) error {
	if hora == nil || *hora == "" {
		return nil
	}
	if _, err := time.Parse("15:04", *hora); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04:05", *hora); err == nil {
		return nil
	}
	return erros.Validacao(campo, "hora deve estar no formato HH:MM")
}

func validarTurno(turno string) error {
	switch turno {
	case "", models.TurnoManha, models.TurnoTarde, models.TurnoIntegral:
		return nil
	}
	return erros.Validacao("turno", "turno deve ser manha, tarde ou integral")
}

// horaOuNulo traduz hora vazia em NULL: o evento volta a ser sem horario.
func horaOuNulo(hora string) interface{} {
	if hora == "" {
		return nil
	}
	return hora
}

func diaSemana(data string) int {
	t, _ := time.Parse("2006-01-02", data)
	return models.DiaSemanaDe(t)
}

// NovoEvento reune os campos aceitos na criacao de um evento.
type NovoEvento struct {
	Tipo         string
	Titulo       string
	Data         string
	HoraInicio   *string
	HoraFim      *string
	Turno        string
	DiaInteiro   bool
	EscolaID     *uint
	EscolaNome   string
	Local        string
	Descricao    string
	MediadorID   *uint
	MediadorNome string
}

// AdicionarEvento cria um evento com status planejado.
// Para visitas sem titulo, o nome da escola vira o titulo.
func (a *Agenda) AdicionarEvento(ne NovoEvento) (*models.Evento, error) {
	if ne.Tipo == "" {
		ne.Tipo = models.TipoOutro
	}
	if !models.TipoEventoValido(ne.Tipo) {
		return nil, erros.Validacao("tipo", "tipo de evento desconhecido")
	}
	if err := validarData(ne.Data); err != nil {
		return nil, err
	}
	if err := validarHora("hora_inicio", ne.HoraInicio); err != nil {
		return nil, err
	}
	if err := validarHora("hora_fim", ne.HoraFim); err != nil {
		return nil, err
	}
	if err := validarTurno(ne.Turno); err != nil {
		return nil, err
	}
	if ne.Titulo == "" {
		ne.Titulo = ne.EscolaNome
	}
	if ne.Titulo == "" {
		return nil, erros.Validacao("titulo", "titulo e obrigatorio")
	}

	evento := models.Evento{
		ID:           uuid.NewString(),
		Tipo:         ne.Tipo,
		Titulo:       ne.Titulo,
		Data:         ne.Data,
		DiaSemana:    diaSemana(ne.Data),
		HoraInicio:   ne.HoraInicio,
		HoraFim:      ne.HoraFim,
		Turno:        ne.Turno,
		DiaInteiro:   ne.DiaInteiro,
		EscolaID:     ne.EscolaID,
		EscolaNome:   ne.EscolaNome,
		Local:        ne.Local,
		Descricao:    ne.Descricao,
		MediadorID:   ne.MediadorID,
		MediadorNome: ne.MediadorNome,
		Status:       models.StatusPlanejado,
	}
	if err := a.db.Create(&evento).Error; err != nil {
		return nil, err
	}
	return &evento, nil
}

func (a *Agenda) ObterEvento(id string) (*models.Evento, error) {
	var evento models.Evento
	err := a.db.Where("id = ?", id).First(&evento).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, erros.ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &evento, nil
}

// AtualizacaoEvento lista exatamente os campos mutaveis pela atualizacao
// generica. Status fica de fora de proposito: transicoes so pelas operacoes
// dedicadas.
type AtualizacaoEvento struct {
	Tipo         *string `json:"tipo"`
	Titulo       *string `json:"titulo"`
	Data         *string `json:"data"`
	HoraInicio   *string `json:"hora_inicio"`
	HoraFim      *string `json:"hora_fim"`
	Turno        *string `json:"turno"`
	DiaInteiro   *bool   `json:"dia_inteiro"`
	EscolaID     *uint   `json:"escola_id"`
	EscolaNome   *string `json:"escola_nome"`
	Local        *string `json:"local"`
	Descricao    *string `json:"descricao"`
	MediadorID   *uint   `json:"mediador_id"`
	MediadorNome *string `json:"mediador_nome"`
}

// AtualizarEvento aplica somente os campos presentes. Mudanca de data
// recalcula o dia da semana antes de persistir.
func (a *Agenda) AtualizarEvento(id string, at AtualizacaoEvento) (*models.Evento, error) {
	updates := map[string]interface{}{}

	if at.Tipo != nil {
		if !models.TipoEventoValido(*at.Tipo) {
			return nil, erros.Validacao("tipo", "tipo de evento desconhecido")
		}
		updates["tipo"] = *at.Tipo
	}
	if at.Titulo != nil {
		if *at.Titulo == "" {
			return nil, erros.Validacao("titulo", "titulo nao pode ficar vazio")
		}
		updates["titulo"] = *at.Titulo
	}
	if at.Data != nil {
		if err := validarData(*at.Data); err != nil {
			return nil, err
		}
		updates["data"] = *at.Data
		updates["dia_semana"] = diaSemana(*at.Data)
	}
	if at.HoraInicio != nil {
		if err := validarHora("hora_inicio", at.HoraInicio); err != nil {
			return nil, err
		}
		updates["hora_inicio"] = horaOuNulo(*at.HoraInicio)
	}
	if at.HoraFim != nil {
		if err := validarHora("hora_fim", at.HoraFim); err != nil {
			return nil, err
		}
		updates["hora_fim"] = horaOuNulo(*at.HoraFim)
	}
	if at.Turno != nil {
		if err := validarTurno(*at.Turno); err != nil {
			return nil, err
		}
		updates["turno"] = *at.Turno
	}
	if at.DiaInteiro != nil {
		updates["dia_inteiro"] = *at.DiaInteiro
	}
	if at.EscolaID != nil {
		updates["escola_id"] = *at.EscolaID
	}
	if at.EscolaNome != nil {
		updates["escola_nome"] = *at.EscolaNome
	}
	if at.Local != nil {
		updates["local"] = *at.Local
	}
	if at.Descricao != nil {
		updates["descricao"] = *at.Descricao
	}
	if at.MediadorID != nil {
		updates["mediador_id"] = *at.MediadorID
	}
	if at.MediadorNome != nil {
		updates["mediador_nome"] = *at.MediadorNome
	}

	if len(updates) == 0 {
		return nil, erros.Validacao("campos", "nenhum campo para atualizar")
	}
	updates["atualizado_em"] = time.Now()

	res := a.db.Model(&models.Evento{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, erros.ErrNaoEncontrado
	}
	return a.ObterEvento(id)
}

func (a *Agenda) RemoverEvento(id string) error {
	res := a.db.Where("id = ?", id).Delete(&models.Evento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}

// ListarEventos devolve eventos no intervalo [inicio, fim] (limites opcionais
// e independentes), mais recentes primeiro.
func (a *Agenda) ListarEventos(dataInicio, dataFim string) ([]models.Evento, error) {
	q := a.db.Model(&models.Evento{})
	if dataInicio != "" {
		q = q.Where("data >= ?", dataInicio)
	}
	if dataFim != "" {
		q = q.Where("data <= ?", dataFim)
	}
	var eventos []models.Evento
	if err := q.Order("data DESC").Find(&eventos).Error; err != nil {
		return nil, err
	}
	return eventos, nil
}

// MoverEvento troca a data (e opcionalmente a hora de inicio) de um evento.
// Nao muda o status e nao verifica conflito de horario: a agenda e aditiva.
func (a *Agenda) MoverEvento(id, novaData string, novaHoraInicio *string) error {
	at := AtualizacaoEvento{Data: &novaData}
	if novaHoraInicio != nil {
		at.HoraInicio = novaHoraInicio
	}
	_, err := a.AtualizarEvento(id, at)
	return err
}

// MarcarExecutado transiciona planejado -> executado. Repetir em evento ja
// executado e no-op; evento cancelado nao pode ser executado.
func (a *Agenda) MarcarExecutado(id string) error {
	return a.transicionar(id, models.StatusExecutado)
}

// CancelarEvento transiciona planejado -> cancelado. Cancelar de novo e
// no-op; evento executado nao pode ser cancelado.
func (a *Agenda) CancelarEvento(id string) error {
	return a.transicionar(id, models.StatusCancelado)
}

// transicionar muda o status num unico UPDATE condicional: so sai de
// planejado. Dois chamadores concorrentes nunca sobrescrevem um status
// terminal; quem perde a corrida cai no RowsAffected == 0 e decide entre
// no-op e erro pelo status que ficou gravado.
func (a *Agenda) transicionar(id, novoStatus string) error {
	res := a.db.Model(&models.Evento{}).
		Where("id = ? AND status = ?", id, models.StatusPlanejado).
		Updates(map[string]interface{}{
			"status":        novoStatus,
			"atualizado_em": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	evento, err := a.ObterEvento(id)
	if err != nil {
		return err
	}
	if evento.Status == novoStatus {
		return nil
	}
	return erros.Validacao("status", "evento "+evento.Status+" nao pode mudar para "+novoStatus)
}

// DuplicarEvento copia os campos descritivos para um novo evento planejado
// na data informada. O evento original nao muda.
func (a *Agenda) DuplicarEvento(id, novaData string) (*models.Evento, error) {
	original, err := a.ObterEvento(id)
	if err != nil {
		return nil, err
	}
	return a.AdicionarEvento(NovoEvento{
		Tipo:         original.Tipo,
		Titulo:       original.Titulo,
		Data:         novaData,
		HoraInicio:   original.HoraInicio,
		HoraFim:      original.HoraFim,
		Turno:        original.Turno,
		DiaInteiro:   original.DiaInteiro,
		EscolaID:     original.EscolaID,
		EscolaNome:   original.EscolaNome,
		Local:        original.Local,
		Descricao:    original.Descricao,
		MediadorID:   original.MediadorID,
		MediadorNome: original.MediadorNome,
	})
}

// ExecucaoVisita reune o que chega do formulario de execucao de visita.
type ExecucaoVisita struct {
	Observacoes     string
	Contribuicoes   string
	Combinados      string
	Oficina         string
	Turno           string
	ArticuladorNome string
	Turmas          []visitas.Turma
	Anexos          []anexos.Arquivo
}

// ExecutarVisita materializa um evento de visita em registro permanente:
// valida tudo antes de qualquer efeito, grava os anexos (pelo menos um
// precisa sobreviver ao filtro) e, numa unica transacao, cria a visita e
// marca o evento como executado. Sem visita orfa em nenhum caminho de falha.
func (a *Agenda) ExecutarVisita(eventoID string, exec ExecucaoVisita) (*models.Visita, error) {
	evento, err := a.ObterEvento(eventoID)
	if err != nil {
		return nil, err
	}
	if evento.Tipo != models.TipoVisita {
		return nil, erros.Validacao("tipo", "este evento nao e uma visita")
	}
	if evento.Status != models.StatusPlanejado {
		return nil, erros.Validacao("status", "evento "+evento.Status+" nao pode ser executado")
	}
	if len(exec.Anexos) == 0 {
		return nil, erros.Validacao("anexos", "anexo e obrigatorio")
	}

	// Dados da escola no momento da execucao (gestor, mediador, nome oficial).
	var gestorNome, mediadorNome, nomeOficial string
	mediadorNome = evento.MediadorNome
	if evento.EscolaID != nil {
		if escola, err := a.escolas.Obter(*evento.EscolaID); err == nil {
			gestorNome = escola.Diretor
			nomeOficial = escola.NomeOficial
			if mediadorNome == "" {
				mediadorNome = escola.Mediador
			}
		}
	}

	refs, err := a.visitas.SalvarAnexos(exec.Anexos)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, erros.Validacao("anexos", "nenhum anexo valido foi enviado")
	}

	observacoes := exec.Observacoes
	if observacoes == "" {
		observacoes = evento.Descricao
	}

	visita := models.Visita{
		EscolaID:          evento.EscolaID,
		EscolaNome:        evento.EscolaNome,
		EscolaNomeOficial: nomeOficial,
		Data:              evento.Data,
		Hora:              time.Now().Format("15:04:05"),
		Turno:             exec.Turno,
		Oficina:           exec.Oficina,
		Observacoes:       observacoes,
		Contribuicoes:     exec.Contribuicoes,
		Combinados:        exec.Combinados,
		MediadorID:        evento.MediadorID,
		MediadorNome:      mediadorNome,
		ArticuladorNome:   exec.ArticuladorNome,
		GestorNome:        gestorNome,
	}
	for _, t := range exec.Turmas {
		visita.Turmas = append(visita.Turmas, models.TurmaVisita{
			NomeTurma:   t.NomeTurma,
			Quantidade:  t.Quantidade,
			Nivel:       t.Nivel,
			Avaliacao:   t.Avaliacao,
			FaixaEtaria: t.FaixaEtaria,
		})
	}
	visita.Anexos = refs

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := a.visitas.Criar(tx, &visita); err != nil {
			return err
		}
		// UPDATE condicional: se outro chamador tirou o evento de planejado
		// depois da validacao, a transacao inteira falha e nada persiste.
		res := tx.Model(&models.Evento{}).
			Where("id = ? AND status = ?", eventoID, models.StatusPlanejado).
			Updates(map[string]interface{}{
				"status":        models.StatusExecutado,
				"atualizado_em": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return erros.Validacao("status", "evento nao esta mais planejado")
		}
		return nil
	})
	if err != nil {
		a.visitas.DescartarAnexos(refs)
		return nil, err
	}

	return &visita, nil
}
