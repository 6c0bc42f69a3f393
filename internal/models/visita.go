package models

import (
	"time"
)

type Visita struct {
	ID                string        `gorm:"primaryKey" json:"id"`
	EscolaID          *uint         `gorm:"index" json:"escola_id"`
	EscolaNome        string        `json:"escola_nome"`
	EscolaNomeOficial string        `json:"escola_nome_oficial"`
	Data              string        `gorm:"not null;index" json:"data"` // YYYY-MM-DD
	Hora              string        `json:"hora"`                       // HH:MM:SS
	Turno             string        `json:"turno"`
	Oficina           string        `json:"oficina"`
	Observacoes       string        `json:"observacoes"`
	Contribuicoes     string        `json:"contribuicoes"`
	Combinados        string        `json:"combinados"`
	MediadorID        *uint         `json:"mediador_id"`
	MediadorNome      string        `json:"mediador_nome"`
	ArticuladorNome   string        `json:"articulador_nome"` // Usuario logado no momento do registro
	GestorNome        string        `json:"gestor_nome"`      // Diretor da escola na epoca da visita
	Turmas            []TurmaVisita `gorm:"foreignKey:VisitaID;constraint:OnDelete:CASCADE" json:"turmas"`
	Anexos            []AnexoVisita `gorm:"foreignKey:VisitaID;constraint:OnDelete:CASCADE" json:"anexos"`
	CriadoEm          time.Time     `gorm:"autoCreateTime;index" json:"criado_em"`
	AtualizadoEm      time.Time     `gorm:"autoUpdateTime" json:"atualizado_em"`
}

// TurmaVisita registra a avaliacao de uma turma atendida durante a visita.
type TurmaVisita struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VisitaID    string `gorm:"index;not null" json:"-"`
	NomeTurma   string `json:"nome_turma"`
	Quantidade  *int   `json:"quantidade"` // Numero de estudantes
	Nivel       string `json:"nivel"`      // Tema/nivel trabalhado
	Avaliacao   string `json:"avaliacao"`
	FaixaEtaria string `json:"faixa_etaria"`
}

// AnexoVisita guarda a referencia de um arquivo anexado como evidencia.
type AnexoVisita struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VisitaID     string    `gorm:"index;not null" json:"-"`
	Caminho      string    `gorm:"not null" json:"caminho"` // Caminho devolvido pelo armazenamento
	NomeOriginal string    `json:"nome_original"`
	Tipo         string    `json:"tipo"` // "foto" para imagens, extensao para os demais
	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
}
