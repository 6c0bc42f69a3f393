package visitas

import (
	"os"
	"testing"

	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/storage"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistro(t *testing.T) *Registro {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST não configurado, pulando testes com banco")
	}

	storage.ConnectTestingDatabase()
	require.NoError(t, storage.DB.AutoMigrate(
		&models.Visita{}, &models.TurmaVisita{}, &models.AnexoVisita{},
	))

	sessao := gorm.Session{AllowGlobalUpdate: true}
	storage.DB.Session(&sessao).Delete(&models.AnexoVisita{})
	storage.DB.Session(&sessao).Delete(&models.TurmaVisita{})
	storage.DB.Session(&sessao).Delete(&models.Visita{})

	return NovoRegistro(storage.DB, anexos.NovoArmazem(t.TempDir()))
}

func TestRegistrarExigeEscola(t *testing.T) {
	registro := setupRegistro(t)

	_, err := registro.Registrar(NovaVisita{Observacoes: "sem escola"})
	assert.Error(t, err)
	assert.True(t, erros.EhValidacao(err))
}

func TestRegistrarValidaData(t *testing.T) {
	registro := setupRegistro(t)

	_, err := registro.Registrar(NovaVisita{EscolaNome: "CIEI Bonfim", Data: "05/03/2025"})
	assert.Error(t, err)
}

func TestRegistrarIgnoraAnexosRejeitados(t *testing.T) {
	registro := setupRegistro(t)

	visita, err := registro.Registrar(NovaVisita{
		EscolaNome: "CIEI Bonfim",
		Data:       "2025-03-05",
		Anexos: []anexos.Arquivo{
			{NomeOriginal: "foto.jpg", Conteudo: []byte("ok")},
			{NomeOriginal: "video.mp4", Conteudo: []byte("rejeitado")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, visita.Anexos, 1)
	assert.Equal(t, "foto.jpg", visita.Anexos[0].NomeOriginal)
}

func TestObterComTurmasEAnexos(t *testing.T) {
	registro := setupRegistro(t)

	quantidade := 20
	criada, err := registro.Registrar(NovaVisita{
		EscolaNome: "CIEI Bonfim",
		Data:       "2025-03-05",
		Turmas:     []Turma{{NomeTurma: "1º ano", Quantidade: &quantidade}},
		Anexos:     []anexos.Arquivo{{NomeOriginal: "ata.pdf", Conteudo: []byte("pdf")}},
	})
	require.NoError(t, err)

	visita, err := registro.Obter(criada.ID)
	require.NoError(t, err)
	assert.Len(t, visita.Turmas, 1)
	assert.Len(t, visita.Anexos, 1)
	assert.Equal(t, "pdf", visita.Anexos[0].Tipo)
}

func TestObterNaoEncontrada(t *testing.T) {
	registro := setupRegistro(t)

	_, err := registro.Obter("nao-existe")
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}

func TestListarComFiltros(t *testing.T) {
	registro := setupRegistro(t)

	escolaID := uint(7)
	_, err := registro.Registrar(NovaVisita{EscolaID: &escolaID, EscolaNome: "Bonfim", Data: "2025-03-01"})
	require.NoError(t, err)
	_, err = registro.Registrar(NovaVisita{EscolaNome: "Gustavo", Data: "2025-03-10"})
	require.NoError(t, err)
	_, err = registro.Registrar(NovaVisita{EscolaNome: "Gustavo", Data: "2025-04-01"})
	require.NoError(t, err)

	todas, err := registro.Listar(nil, "", "")
	require.NoError(t, err)
	assert.Len(t, todas, 3)
	// Mais recente primeiro.
	assert.Equal(t, "2025-04-01", todas[0].Data)

	porEscola, err := registro.Listar(&escolaID, "", "")
	require.NoError(t, err)
	assert.Len(t, porEscola, 1)

	porPeriodo, err := registro.Listar(nil, "2025-03-05", "2025-03-31")
	require.NoError(t, err)
	assert.Len(t, porPeriodo, 1)
	assert.Equal(t, "2025-03-10", porPeriodo[0].Data)
}

func TestAtualizarObservacoes(t *testing.T) {
	registro := setupRegistro(t)

	criada, err := registro.Registrar(NovaVisita{EscolaNome: "Bonfim", Data: "2025-03-01"})
	require.NoError(t, err)

	require.NoError(t, registro.AtualizarObservacoes(criada.ID, "Texto corrigido"))

	visita, err := registro.Obter(criada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Texto corrigido", visita.Observacoes)

	assert.ErrorIs(t, registro.AtualizarObservacoes("nao-existe", "x"), erros.ErrNaoEncontrado)
}

func TestExcluirRemoveArquivos(t *testing.T) {
	registro := setupRegistro(t)

	criada, err := registro.Registrar(NovaVisita{
		EscolaNome: "Bonfim",
		Data:       "2025-03-01",
		Anexos:     []anexos.Arquivo{{NomeOriginal: "foto.jpg", Conteudo: []byte("x")}},
	})
	require.NoError(t, err)
	caminho := criada.Anexos[0].Caminho
	_, err = os.Stat(caminho)
	require.NoError(t, err)

	require.NoError(t, registro.Excluir(criada.ID))

	_, err = registro.Obter(criada.ID)
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
	_, err = os.Stat(caminho)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, registro.Excluir(criada.ID), erros.ErrNaoEncontrado)
}

func TestEstatisticas(t *testing.T) {
	registro := setupRegistro(t)

	_, err := registro.Registrar(NovaVisita{EscolaNome: "Bonfim", Data: "2025-03-01"})
	require.NoError(t, err)
	_, err = registro.Registrar(NovaVisita{EscolaNome: "Bonfim", Data: "2025-03-15"})
	require.NoError(t, err)
	_, err = registro.Registrar(NovaVisita{EscolaNome: "Gustavo", Data: "2025-04-02"})
	require.NoError(t, err)

	est, err := registro.Estatisticas()
	require.NoError(t, err)
	assert.Equal(t, 3, est.TotalVisitas)
	assert.Equal(t, 2, est.EscolasVisitadas)
	assert.Equal(t, "Bonfim", est.EscolaMaisVisitada)
	assert.Equal(t, 2, est.MaxVisitasEscola)
	assert.Equal(t, 2, est.VisitasPorEscola["Bonfim"])
	assert.Equal(t, 2, est.VisitasPorMes["2025-03"])
	assert.Equal(t, 1, est.VisitasPorMes["2025-04"])
}
