package visitas

import (
	"errors"
	"log"
	"time"

	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registro e o dono da colecao de visitas: todo acesso a tabela de visitas
// (e aos arquivos anexados) passa por aqui.
type Registro struct {
	db      *gorm.DB
	armazem *anexos.Armazem
}

func NovoRegistro(db *gorm.DB, armazem *anexos.Armazem) *Registro {
	return &Registro{db: db, armazem: armazem}
}

// Turma descreve uma turma atendida, como chega do formulario.
type Turma struct {
	NomeTurma   string `json:"nome_turma"`
	Quantidade  *int   `json:"quantidade"`
	Nivel       string `json:"nivel"`
	Avaliacao   string `json:"avaliacao"`
	FaixaEtaria string `json:"faixa_etaria"`
}

func converterTurmas(ts []Turma) []models.TurmaVisita {
	out := make([]models.TurmaVisita, 0, len(ts))
	for _, t := range ts {
		out = append(out, models.TurmaVisita{
			NomeTurma:   t.NomeTurma,
			Quantidade:  t.Quantidade,
			Nivel:       t.Nivel,
			Avaliacao:   t.Avaliacao,
			FaixaEtaria: t.FaixaEtaria,
		})
	}
	return out
}

// NovaVisita reune os campos do registro avulso de visita.
// Diferente da execucao pela agenda, aqui o anexo NAO e obrigatorio.
type NovaVisita struct {
	EscolaID          *uint
	EscolaNome        string
	EscolaNomeOficial string
	Data              string // YYYY-MM-DD, vazio = hoje
	Observacoes       string
	Anexos            []anexos.Arquivo
	MediadorID        *uint
	MediadorNome      string
	Contribuicoes     string
	Combinados        string
	Oficina           string
	Turno             string
	ArticuladorNome   string
	GestorNome        string
	Turmas            []Turma
}

// Registrar cria uma visita avulsa. Anexos rejeitados pelo filtro de
// extensao sao apenas ignorados.
func (r *Registro) Registrar(nv NovaVisita) (*models.Visita, error) {
	if nv.EscolaNome == "" && nv.EscolaID == nil {
		return nil, erros.Validacao("escola", "informe a escola da visita")
	}
	data := nv.Data
	if data == "" {
		data = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", data); err != nil {
		return nil, erros.Validacao("data", "data deve estar no formato YYYY-MM-DD")
	}

	refs, err := r.SalvarAnexos(nv.Anexos)
	if err != nil {
		return nil, err
	}

	visita := models.Visita{
		ID:                uuid.NewString(),
		EscolaID:          nv.EscolaID,
		EscolaNome:        nv.EscolaNome,
		EscolaNomeOficial: nv.EscolaNomeOficial,
		Data:              data,
		Hora:              time.Now().Format("15:04:05"),
		Turno:             nv.Turno,
		Oficina:           nv.Oficina,
		Observacoes:       nv.Observacoes,
		Contribuicoes:     nv.Contribuicoes,
		Combinados:        nv.Combinados,
		MediadorID:        nv.MediadorID,
		MediadorNome:      nv.MediadorNome,
		ArticuladorNome:   nv.ArticuladorNome,
		GestorNome:        nv.GestorNome,
		Turmas:            converterTurmas(nv.Turmas),
		Anexos:            refs,
	}

	if err := r.db.Create(&visita).Error; err != nil {
		r.DescartarAnexos(refs)
		return nil, err
	}
	return &visita, nil
}

// Criar persiste uma visita ja montada dentro de uma transacao externa.
// Usado pela agenda ao executar um evento de visita.
func (r *Registro) Criar(tx *gorm.DB, v *models.Visita) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return tx.Create(v).Error
}

// SalvarAnexos grava os arquivos validos e devolve as referencias.
// Arquivos barrados pelo filtro (extensao/tamanho) sao ignorados.
func (r *Registro) SalvarAnexos(arqs []anexos.Arquivo) ([]models.AnexoVisita, error) {
	var refs []models.AnexoVisita
	for _, arq := range arqs {
		salvo, err := r.armazem.Salvar(arq)
		if err != nil {
			if errors.Is(err, anexos.ErrExtensaoNaoPermitida) ||
				errors.Is(err, anexos.ErrArquivoMuitoGrande) ||
				errors.Is(err, anexos.ErrArquivoVazio) {
				log.Printf("Anexo ignorado (%s): %v", arq.NomeOriginal, err)
				continue
			}
			r.DescartarAnexos(refs)
			return nil, err
		}
		refs = append(refs, models.AnexoVisita{
			Caminho:      salvo.Caminho,
			NomeOriginal: salvo.NomeOriginal,
			Tipo:         salvo.Tipo,
		})
	}
	return refs, nil
}

// DescartarAnexos apaga arquivos ja gravados quando a operacao nao se concretiza.
func (r *Registro) DescartarAnexos(refs []models.AnexoVisita) {
	for _, ref := range refs {
		if err := r.armazem.Remover(ref.Caminho); err != nil {
			log.Printf("Erro ao descartar anexo %s: %v", ref.Caminho, err)
		}
	}
}

// Obter carrega uma visita com turmas e anexos.
func (r *Registro) Obter(id string) (*models.Visita, error) {
	var v models.Visita
	err := r.db.Preload("Turmas").Preload("Anexos").Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, erros.ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Listar filtra por escola e intervalo de datas (inclusivo nos dois lados),
// mais recentes primeiro.
func (r *Registro) Listar(escolaID *uint, dataInicio, dataFim string) ([]models.Visita, error) {
	q := r.db.Preload("Turmas").Preload("Anexos")
	if escolaID != nil {
		q = q.Where("escola_id = ?", *escolaID)
	}
	if dataInicio != "" {
		q = q.Where("data >= ?", dataInicio)
	}
	if dataFim != "" {
		q = q.Where("data <= ?", dataFim)
	}

	var visitas []models.Visita
	if err := q.Order("data DESC, criado_em DESC").Find(&visitas).Error; err != nil {
		return nil, err
	}
	return visitas, nil
}

// AtualizarObservacoes troca as observacoes de uma visita existente.
func (r *Registro) AtualizarObservacoes(id, observacoes string) error {
	res := r.db.Model(&models.Visita{}).Where("id = ?", id).
		Update("observacoes", observacoes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}

// Excluir remove a visita, as turmas/anexos associados e os arquivos em disco.
func (r *Registro) Excluir(id string) error {
	visita, err := r.Obter(id)
	if err != nil {
		return err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("visita_id = ?", id).Delete(&models.TurmaVisita{}).Error; err != nil {
			return err
		}
		if err := tx.Where("visita_id = ?", id).Delete(&models.AnexoVisita{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Visita{ID: id}).Error
	})
	if err != nil {
		return err
	}

	// Arquivos so sao apagados depois do commit; falha aqui nao desfaz a exclusao.
	r.DescartarAnexos(visita.Anexos)
	return nil
}

// Estatisticas agrega contagens gerais das visitas registradas.
type Estatisticas struct {
	TotalVisitas       int            `json:"total_visitas"`
	EscolasVisitadas   int            `json:"total_escolas_visitadas"`
	EscolaMaisVisitada string         `json:"escola_mais_visitada"`
	MaxVisitasEscola   int            `json:"max_visitas_escola"`
	VisitasPorEscola   map[string]int `json:"visitas_por_escola"`
	VisitasPorMes      map[string]int `json:"visitas_por_mes"`
}

func (r *Registro) Estatisticas() (*Estatisticas, error) {
	var linhas []struct {
		EscolaNome string
		Data       string
	}
	if err := r.db.Model(&models.Visita{}).
		Select("escola_nome", "data").Scan(&linhas).Error; err != nil {
		return nil, err
	}

	stats := &Estatisticas{
		VisitasPorEscola: map[string]int{},
		VisitasPorMes:    map[string]int{},
	}
	stats.TotalVisitas = len(linhas)
	for _, l := range linhas {
		stats.VisitasPorEscola[l.EscolaNome]++
		if len(l.Data) >= 7 {
			stats.VisitasPorMes[l.Data[:7]]++ // YYYY-MM
		}
	}
	stats.EscolasVisitadas = len(stats.VisitasPorEscola)
	for escola, total := range stats.VisitasPorEscola {
		if total > stats.MaxVisitasEscola ||
			(total == stats.MaxVisitasEscola && escola < stats.EscolaMaisVisitada) {
			stats.MaxVisitasEscola = total
			stats.EscolaMaisVisitada = escola
		}
	}
	return stats, nil
}
