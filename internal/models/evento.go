package models

import (
	"time"
)

// Tipos de evento da agenda.
const (
	TipoVisita       = "visita"
	TipoReuniao      = "reuniao"
	TipoFeriado      = "feriado"
	TipoApresentacao = "apresentacao"
	TipoCapacitacao  = "capacitacao"
	TipoOutro        = "outro"
)

// Status possiveis de um evento. Planejado e o estado inicial;
// executado e cancelado sao terminais.
const (
	StatusPlanejado = "planejado"
	StatusExecutado = "executado"
	StatusCancelado = "cancelado"
)

// Turnos aceitos como alternativa aos horarios explicitos.
const (
	TurnoManha    = "manha"
	TurnoTarde    = "tarde"
	TurnoIntegral = "integral"
)

// TipoEventoValido verifica se o tipo informado e um dos tipos conhecidos.
func TipoEventoValido(tipo string) bool {
	switch tipo {
	case TipoVisita, TipoReuniao, TipoFeriado, TipoApresentacao, TipoCapacitacao, TipoOutro:
		return true
	}
	return false
}

type Evento struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Tipo         string    `gorm:"not null;index" json:"tipo"`
	Titulo       string    `gorm:"not null" json:"titulo"`
	Data         string    `gorm:"not null;index" json:"data"`       // YYYY-MM-DD
	DiaSemana    int       `json:"dia_semana"`                       // 0=segunda .. 6=domingo, derivado de Data
	HoraInicio   *string   `json:"hora_inicio"`                      // HH:MM, opcional
	HoraFim      *string   `json:"hora_fim"`                         // HH:MM, opcional
	Turno        string    `json:"turno"`                            // manha, tarde, integral
	DiaInteiro   bool      `gorm:"default:false" json:"dia_inteiro"` // Feriados etc
	EscolaID     *uint     `gorm:"index" json:"escola_id"`
	EscolaNome   string    `json:"escola_nome"` // Cache do nome, sobrevive a remocao da escola
	Local        string    `json:"local"`       // Local livre (reunioes fora de escola)
	Descricao    string    `json:"descricao"`
	MediadorID   *uint     `gorm:"index" json:"mediador_id"`
	MediadorNome string    `json:"mediador_nome"`
	Status       string    `gorm:"not null;default:planejado;index" json:"status"`
	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
}

// DiaSemanaDe calcula o dia da semana (0=segunda .. 6=domingo) de uma data.
func DiaSemanaDe(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
