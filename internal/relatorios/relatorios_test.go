package relatorios

import (
	"strings"
	"testing"

	"gestor-visitas/internal/models"
	"gestor-visitas/internal/visitas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func geradorDeTeste(t *testing.T) *Gerador {
	t.Helper()
	g, err := NovoGerador(t.TempDir())
	require.NoError(t, err)
	return g
}

func visitasDeExemplo() []models.Visita {
	quantidade := 25
	return []models.Visita{
		{
			ID:         "v1",
			EscolaNome: "Vila Velha",
			Data:       "2025-03-10",
			Hora:       "09:00:00",
			Anexos: []models.AnexoVisita{
				{NomeOriginal: "foto.jpg", Caminho: "uploads/foto.jpg", Tipo: "foto"},
			},
		},
		{
			ID:          "v2",
			EscolaNome:  "CECAP",
			Data:        "2025-03-12",
			Hora:        "14:00:00",
			Observacoes: "Oficina de leitura",
			Turmas: []models.TurmaVisita{
				{NomeTurma: "3º Ano A", Quantidade: &quantidade, Nivel: "Fundamental"},
			},
		},
		{
			ID:         "v3",
			EscolaNome: "Vila Velha",
			Data:       "2025-03-05",
			Hora:       "08:30:00",
		},
	}
}

func TestFormatarData(t *testing.T) {
	assert.Equal(t, "10/03/2025", formatarData("2025-03-10"))
	assert.Equal(t, "banana", formatarData("banana"))
	assert.Equal(t, "", formatarData(""))
}

func TestCentralizar(t *testing.T) {
	assert.Equal(t, "  ab", centralizar("ab", 6))
	assert.Equal(t, "abcdef", centralizar("abcdef", 4))
	// Conta runas, nao bytes.
	assert.Equal(t, " ção", centralizar("ção", 5))
}

func TestRelatorioTextoAgrupaPorEscola(t *testing.T) {
	g := geradorDeTeste(t)
	texto := g.RelatorioTexto(visitasDeExemplo(), "")

	assert.Contains(t, texto, "Relatório de Visitas")
	assert.Contains(t, texto, "Total de visitas: 3")
	assert.Contains(t, texto, "foto.jpg")

	// Escolas em ordem alfabetica: CECAP antes de Vila Velha.
	posCecap := strings.Index(texto, "CECAP")
	posVilaVelha := strings.Index(texto, "Vila Velha")
	require.GreaterOrEqual(t, posCecap, 0)
	require.GreaterOrEqual(t, posVilaVelha, 0)
	assert.Less(t, posCecap, posVilaVelha)
}

func TestRelatorioTextoVazio(t *testing.T) {
	g := geradorDeTeste(t)
	texto := g.RelatorioTexto(nil, "Visitas do Mês")

	assert.Contains(t, texto, "Visitas do Mês")
	assert.Contains(t, texto, "Nenhuma visita registrada.")
}

func TestRelatorioEscolaOrdenaCronologicamente(t *testing.T) {
	g := geradorDeTeste(t)
	lista := visitasDeExemplo()
	texto := g.RelatorioEscola("Vila Velha", []models.Visita{lista[0], lista[2]})

	assert.Contains(t, texto, "RELATÓRIO DE VISITAS - Vila Velha")
	// A visita de 05/03 vem antes da de 10/03.
	pos5 := strings.Index(texto, "05/03/2025")
	pos10 := strings.Index(texto, "10/03/2025")
	require.GreaterOrEqual(t, pos5, 0)
	require.GreaterOrEqual(t, pos10, 0)
	assert.Less(t, pos5, pos10)
}

func TestRelatorioResumoOrdenaPorTotal(t *testing.T) {
	g := geradorDeTeste(t)
	est := &visitas.Estatisticas{
		TotalVisitas:       3,
		EscolasVisitadas:   2,
		EscolaMaisVisitada: "Vila Velha",
		MaxVisitasEscola:   2,
		VisitasPorEscola:   map[string]int{"CECAP": 1, "Vila Velha": 2},
		VisitasPorMes:      map[string]int{"2025-03": 3},
	}
	texto := g.RelatorioResumo(est)

	assert.Contains(t, texto, "Total de visitas realizadas: 3")
	assert.Contains(t, texto, "Escola mais visitada: Vila Velha (2 visitas)")
	assert.Contains(t, texto, "2025-03")

	// Mais visitada primeiro.
	posVilaVelha := strings.Index(texto, "Vila Velha (2")
	posCecap := strings.Index(texto, "CECAP")
	assert.Less(t, posVilaVelha, posCecap)
}

func TestEscolasSemVisita(t *testing.T) {
	g := geradorDeTeste(t)
	todas := []models.Escola{
		{NomeUsual: "Vila Velha"},
		{NomeUsual: "CECAP"},
		{NomeUsual: "Santa Tereza"},
	}
	sem := g.EscolasSemVisita(todas, visitasDeExemplo())

	assert.Equal(t, []string{"Santa Tereza"}, sem)
}

func TestSalvarTextoAdicionaExtensao(t *testing.T) {
	g := geradorDeTeste(t)
	caminho, err := g.SalvarTexto("conteudo", "relatorio")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(caminho, "relatorio.txt"))
}

func TestRelatorioExcel(t *testing.T) {
	g := geradorDeTeste(t)
	caminho, err := g.RelatorioExcel(visitasDeExemplo())
	require.NoError(t, err)

	f, err := excelize.OpenFile(caminho)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Todas as Visitas", "Resumo por Escola", "Resumo por Data"}, f.GetSheetList())

	escola, err := f.GetCellValue("Todas as Visitas", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Vila Velha", escola)

	// Resumo por escola em ordem alfabetica.
	primeira, err := f.GetCellValue("Resumo por Escola", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CECAP", primeira)
	totalVilaVelha, err := f.GetCellValue("Resumo por Escola", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", totalVilaVelha)
}

func TestFolhaOficinas(t *testing.T) {
	g := geradorDeTeste(t)
	lista := visitasDeExemplo()
	lista[1].Oficina = "Leitura"
	lista[1].Turno = "tarde"
	lista[1].GestorNome = "Maria Gestora"

	caminho, err := g.FolhaOficinas([]models.Visita{lista[1]})
	require.NoError(t, err)

	f, err := excelize.OpenFile(caminho)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Visita 1"}, f.GetSheetList())

	titulo, err := f.GetCellValue("Visita 1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "FOLHA DE AVALIAÇÃO DE OFICINAS", titulo)

	escola, err := f.GetCellValue("Visita 1", "B3")
	require.NoError(t, err)
	assert.Equal(t, "CECAP", escola)

	turma, err := f.GetCellValue("Visita 1", "A13")
	require.NoError(t, err)
	assert.Equal(t, "3º Ano A", turma)
}

func TestFolhaOficinasSemVisitas(t *testing.T) {
	g := geradorDeTeste(t)
	_, err := g.FolhaOficinas(nil)
	assert.Error(t, err)
}
