package mediadores

import (
	"errors"
	"strings"

	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"

	"gorm.io/gorm"
)

// Servico gerencia o cadastro de mediadores do programa.
type Servico struct {
	db *gorm.DB
}

func NovoServico(db *gorm.DB) *Servico {
	return &Servico{db: db}
}

func (s *Servico) Adicionar(nome string, escolaID *uint, escolaNome string) (*models.Mediador, error) {
	if strings.TrimSpace(nome) == "" {
		return nil, erros.Validacao("nome", "nome do mediador e obrigatorio")
	}
	mediador := models.Mediador{
		Nome:       nome,
		EscolaID:   escolaID,
		EscolaNome: escolaNome,
		Ativo:      true,
	}
	if err := s.db.Create(&mediador).Error; err != nil {
		return nil, err
	}
	return &mediador, nil
}

func (s *Servico) Obter(id uint) (*models.Mediador, error) {
	var mediador models.Mediador
	err := s.db.First(&mediador, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, erros.ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &mediador, nil
}

func (s *Servico) Listar(apenasAtivos bool) ([]models.Mediador, error) {
	q := s.db.Order("nome ASC")
	if apenasAtivos {
		q = q.Where("ativo = ?", true)
	}
	var mediadores []models.Mediador
	if err := q.Find(&mediadores).Error; err != nil {
		return nil, err
	}
	return mediadores, nil
}

// Buscar procura mediadores por trecho do nome.
func (s *Servico) Buscar(termo string) ([]models.Mediador, error) {
	var mediadores []models.Mediador
	err := s.db.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(termo)+"%").
		Order("nome ASC").Find(&mediadores).Error
	if err != nil {
		return nil, err
	}
	return mediadores, nil
}

// AtualizacaoMediador lista os campos mutaveis; nil = nao alterar.
type AtualizacaoMediador struct {
	Nome       *string
	EscolaID   *uint
	EscolaNome *string
}

func (s *Servico) Atualizar(id uint, at AtualizacaoMediador) error {
	updates := map[string]interface{}{}
	if at.Nome != nil {
		updates["nome"] = *at.Nome
	}
	if at.EscolaID != nil {
		updates["escola_id"] = *at.EscolaID
	}
	if at.EscolaNome != nil {
		updates["escola_nome"] = *at.EscolaNome
	}
	if len(updates) == 0 {
		return erros.Validacao("campos", "nenhum campo para atualizar")
	}
	return s.mudar(id, updates)
}

func (s *Servico) Desativar(id uint) error {
	return s.mudar(id, map[string]interface{}{"ativo": false})
}

func (s *Servico) Reativar(id uint) error {
	return s.mudar(id, map[string]interface{}{"ativo": true})
}

func (s *Servico) mudar(id uint, updates map[string]interface{}) error {
	res := s.db.Model(&models.Mediador{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}
