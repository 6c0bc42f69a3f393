package agenda

import (
	"time"

	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"
)

// EventosDia lista os eventos de um dia, eventos sem hora primeiro e o
// restante em ordem de inicio; empate resolve por titulo.
func (a *Agenda) EventosDia(data string) ([]models.Evento, error) {
	if err := validarData(data); err != nil {
		return nil, err
	}
	var eventos []models.Evento
	err := a.db.Where("data = ?", data).
		Order("COALESCE(hora_inicio, '00:00') ASC, titulo ASC").
		Find(&eventos).Error
	if err != nil {
		return nil, err
	}
	return eventos, nil
}

// Semana agrupa os eventos de segunda a domingo. Todos os sete dias estao
// presentes no mapa, mesmo vazios.
type Semana struct {
	SemanaInicio string                     `json:"semana_inicio"`
	SemanaFim    string                     `json:"semana_fim"`
	Eventos      map[string][]models.Evento `json:"eventos"`
}

// EventosSemana monta a visao da semana que contem dataRef (hoje, se vazia).
func (a *Agenda) EventosSemana(dataRef string) (*Semana, error) {
	var ref time.Time
	if dataRef == "" {
		ref = time.Now()
	} else {
		var err error
		ref, err = time.Parse("2006-01-02", dataRef)
		if err != nil {
			return nil, erros.Validacao("data", "data deve estar no formato YYYY-MM-DD")
		}
	}

	segunda := ref.AddDate(0, 0, -models.DiaSemanaDe(ref))
	domingo := segunda.AddDate(0, 0, 6)

	semana := Semana{
		SemanaInicio: segunda.Format("2006-01-02"),
		SemanaFim:    domingo.Format("2006-01-02"),
		Eventos:      make(map[string][]models.Evento, 7),
	}
	for i := 0; i < 7; i++ {
		dia := segunda.AddDate(0, 0, i).Format("2006-01-02")
		semana.Eventos[dia] = []models.Evento{}
	}

	var eventos []models.Evento
	err := a.db.Where("data >= ? AND data <= ?", semana.SemanaInicio, semana.SemanaFim).
		Order("data ASC, COALESCE(hora_inicio, '00:00') ASC, titulo ASC").
		Find(&eventos).Error
	if err != nil {
		return nil, err
	}
	for _, e := range eventos {
		semana.Eventos[e.Data] = append(semana.Eventos[e.Data], e)
	}
	return &semana, nil
}

// Mes e a visao mensal: eventos agrupados por data (so dias com eventos) e
// os dados de moldura para desenhar o calendario.
type Mes struct {
	Ano               int                        `json:"ano"`
	Mes               int                        `json:"mes"`
	PrimeiroDia       string                     `json:"primeiro_dia"`
	UltimoDia         string                     `json:"ultimo_dia"`
	TotalDias         int                        `json:"total_dias"`
	PrimeiroDiaSemana int                        `json:"primeiro_dia_semana"`
	Eventos           map[string][]models.Evento `json:"eventos"`
	TotalEventos      int                        `json:"total_eventos"`
}

// EventosMes monta a visao do mes informado (mes corrente quando ano ou mes
// forem zero). Fevereiro e anos bissextos saem certos de graca pelo AddDate.
func (a *Agenda) EventosMes(ano, mes int) (*Mes, error) {
	agora := time.Now()
	if ano == 0 {
		ano = agora.Year()
	}
	if mes == 0 {
		mes = int(agora.Month())
	}
	if mes < 1 || mes > 12 {
		return nil, erros.Validacao("mes", "mes deve estar entre 1 e 12")
	}

	primeiro := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	ultimo := primeiro.AddDate(0, 1, -1)

	visao := Mes{
		Ano:               ano,
		Mes:               mes,
		PrimeiroDia:       primeiro.Format("2006-01-02"),
		UltimoDia:         ultimo.Format("2006-01-02"),
		TotalDias:         ultimo.Day(),
		PrimeiroDiaSemana: models.DiaSemanaDe(primeiro),
		Eventos:           make(map[string][]models.Evento),
	}

	var eventos []models.Evento
	err := a.db.Where("data >= ? AND data <= ?", visao.PrimeiroDia, visao.UltimoDia).
		Order("data ASC, COALESCE(hora_inicio, '00:00') ASC, titulo ASC").
		Find(&eventos).Error
	if err != nil {
		return nil, err
	}
	for _, e := range eventos {
		visao.Eventos[e.Data] = append(visao.Eventos[e.Data], e)
	}
	visao.TotalEventos = len(eventos)
	return &visao, nil
}

// EstatisticasMes resume o mes por tipo e por status. Os tres status sempre
// aparecem, mesmo zerados.
type EstatisticasMes struct {
	Ano       int            `json:"ano"`
	Mes       int            `json:"mes"`
	Total     int            `json:"total"`
	PorTipo   map[string]int `json:"por_tipo"`
	PorStatus map[string]int `json:"por_status"`
}

func (a *Agenda) EstatisticasDoMes(ano, mes int) (*EstatisticasMes, error) {
	visao, err := a.EventosMes(ano, mes)
	if err != nil {
		return nil, err
	}
	stats := EstatisticasMes{
		Ano:     visao.Ano,
		Mes:     visao.Mes,
		Total:   visao.TotalEventos,
		PorTipo: make(map[string]int),
		PorStatus: map[string]int{
			models.StatusPlanejado: 0,
			models.StatusExecutado: 0,
			models.StatusCancelado: 0,
		},
	}
	for _, lista := range visao.Eventos {
		for _, e := range lista {
			stats.PorTipo[e.Tipo]++
			stats.PorStatus[e.Status]++
		}
	}
	return &stats, nil
}
