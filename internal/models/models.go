package models

import (
	"gorm.io/gorm"
)

type Usuario struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	NomeExibicao string // Nome exibido nos relatorios (papel de articulador)
	Ativo        bool   `gorm:"default:true"`
}

type Escola struct {
	gorm.Model
	NomeOficial string   `gorm:"not null"` // Nome oficial completo (EMEF, EMIEF...)
	NomeUsual   string   `gorm:"index"`    // Nome usado no dia a dia
	Diretor     string   // Gestor da escola
	Mediador    string   // Mediador fixo da escola
	Latitude    *float64 // Coordenadas (nil = ainda nao geocodificada)
	Longitude   *float64
	Bloco1      bool `gorm:"default:false;index"` // Escola do Bloco 1 do programa
	Ativo       bool `gorm:"default:true"`
}

// TemCoordenadas indica se a escola ja foi geocodificada.
func (e *Escola) TemCoordenadas() bool {
	return e.Latitude != nil && e.Longitude != nil
}

type Mediador struct {
	gorm.Model
	Nome       string `gorm:"not null"`
	EscolaID   *uint  `gorm:"index"` // Referencia pode ficar pendurada se a escola for removida
	EscolaNome string // Nome em cache, sobrevive a remocao/renomeacao da escola
	Ativo      bool   `gorm:"default:true"`
}
