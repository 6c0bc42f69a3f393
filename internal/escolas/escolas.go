package escolas

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"

	"gorm.io/gorm"
)

// Servico gerencia o cadastro das escolas do programa.
type Servico struct {
	db  *gorm.DB
	geo *Geocodificador
}

func NovoServico(db *gorm.DB, geo *Geocodificador) *Servico {
	return &Servico{db: db, geo: geo}
}

// Listar devolve as escolas ativas, opcionalmente apenas as do Bloco 1.
func (s *Servico) Listar(apenasBloco1 bool) ([]models.Escola, error) {
	q := s.db.Where("ativo = ?", true)
	if apenasBloco1 {
		q = q.Where("bloco1 = ?", true)
	}
	var escolas []models.Escola
	if err := q.Order("nome_oficial ASC").Find(&escolas).Error; err != nil {
		return nil, err
	}
	return escolas, nil
}

func (s *Servico) Obter(id uint) (*models.Escola, error) {
	var escola models.Escola
	err := s.db.First(&escola, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, erros.ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &escola, nil
}

// Buscar localiza uma escola por ID numerico ou por trecho do nome usual.
func (s *Servico) Buscar(termo string) (*models.Escola, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return nil, erros.Validacao("termo", "informe o termo de busca")
	}

	if id, err := strconv.ParseUint(termo, 10, 32); err == nil {
		if escola, err := s.Obter(uint(id)); err == nil {
			return escola, nil
		}
	}

	var escola models.Escola
	err := s.db.Where("LOWER(nome_usual) LIKE ?", "%"+strings.ToLower(termo)+"%").
		First(&escola).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, erros.ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &escola, nil
}

// AtualizacaoEscola lista os campos mutaveis; nil = nao alterar.
type AtualizacaoEscola struct {
	NomeOficial *string
	NomeUsual   *string
	Diretor     *string
	Mediador    *string
	Latitude    *float64
	Longitude   *float64
}

func (s *Servico) Atualizar(id uint, at AtualizacaoEscola) error {
	updates := map[string]interface{}{}
	if at.NomeOficial != nil {
		updates["nome_oficial"] = *at.NomeOficial
	}
	if at.NomeUsual != nil {
		updates["nome_usual"] = *at.NomeUsual
	}
	if at.Diretor != nil {
		updates["diretor"] = *at.Diretor
	}
	if at.Mediador != nil {
		updates["mediador"] = *at.Mediador
	}
	if at.Latitude != nil {
		updates["latitude"] = *at.Latitude
	}
	if at.Longitude != nil {
		updates["longitude"] = *at.Longitude
	}
	if len(updates) == 0 {
		return erros.Validacao("campos", "nenhum campo para atualizar")
	}

	res := s.db.Model(&models.Escola{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}

func (s *Servico) Adicionar(nomeOficial, nomeUsual, diretor, mediador string) (*models.Escola, error) {
	if nomeOficial == "" || nomeUsual == "" {
		return nil, erros.Validacao("nome", "nome oficial e nome usual sao obrigatorios")
	}
	escola := models.Escola{
		NomeOficial: nomeOficial,
		NomeUsual:   nomeUsual,
		Diretor:     diretor,
		Mediador:    mediador,
		Ativo:       true,
	}
	if err := s.db.Create(&escola).Error; err != nil {
		return nil, err
	}
	return &escola, nil
}

// ObterCoordenadas devolve as coordenadas da escola, geocodificando (e salvando)
// quando ainda nao existem. Falha de geocodificacao vira ErrServicoExterno.
func (s *Servico) ObterCoordenadas(ctx context.Context, id uint) (float64, float64, error) {
	escola, err := s.Obter(id)
	if err != nil {
		return 0, 0, err
	}
	if escola.TemCoordenadas() {
		return *escola.Latitude, *escola.Longitude, nil
	}
	if s.geo == nil {
		return 0, 0, erros.ErrServicoExterno
	}

	// Tenta do nome mais especifico para o mais generico, como a versao original.
	consultas := []string{
		escola.NomeOficial + ", Taubaté, SP, Brasil",
		"Escola " + escola.NomeUsual + ", Taubaté, SP, Brasil",
		escola.NomeUsual + ", Taubaté, SP, Brasil",
	}
	for _, consulta := range consultas {
		coords, err := s.geo.Geocodificar(ctx, consulta)
		if err != nil || coords == nil {
			continue
		}
		at := AtualizacaoEscola{Latitude: &coords.Latitude, Longitude: &coords.Longitude}
		if err := s.Atualizar(id, at); err != nil {
			return 0, 0, err
		}
		return coords.Latitude, coords.Longitude, nil
	}
	return 0, 0, erros.ErrServicoExterno
}

// GeocodificarPendentes geocodifica escolas do Bloco 1 ainda sem coordenadas.
// Devolve quantas foram resolvidas; falhas individuais nao interrompem o lote.
func (s *Servico) GeocodificarPendentes(ctx context.Context) (int, error) {
	var pendentes []models.Escola
	if err := s.db.Where("ativo = ? AND bloco1 = ? AND latitude IS NULL", true, true).
		Find(&pendentes).Error; err != nil {
		return 0, err
	}

	resolvidas := 0
	for _, escola := range pendentes {
		if ctx.Err() != nil {
			return resolvidas, ctx.Err()
		}
		if _, _, err := s.ObterCoordenadas(ctx, escola.ID); err == nil {
			resolvidas++
		}
	}
	return resolvidas, nil
}
