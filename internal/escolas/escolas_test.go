package escolas

import (
	"context"
	"os"
	"strconv"
	"testing"

	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/storage"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServico(t *testing.T) *Servico {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST não configurado, pulando testes com banco")
	}

	storage.ConnectTestingDatabase()
	require.NoError(t, storage.DB.AutoMigrate(&models.Escola{}))

	sessao := gorm.Session{AllowGlobalUpdate: true}
	storage.DB.Session(&sessao).Delete(&models.Escola{})

	return NovoServico(storage.DB, nil)
}

func TestSemearCargaInicial(t *testing.T) {
	srv := setupServico(t)

	require.NoError(t, srv.Semear())

	todas, err := srv.Listar(false)
	require.NoError(t, err)
	assert.Len(t, todas, len(escolasTaubate))

	bloco, err := srv.Listar(true)
	require.NoError(t, err)
	assert.Len(t, bloco, len(bloco1))

	// Segunda chamada nao duplica o cadastro.
	require.NoError(t, srv.Semear())
	todas, err = srv.Listar(false)
	require.NoError(t, err)
	assert.Len(t, todas, len(escolasTaubate))
}

func TestBuscarPorNomeEPorID(t *testing.T) {
	srv := setupServico(t)
	require.NoError(t, srv.Semear())

	escola, err := srv.Buscar("vila velha")
	require.NoError(t, err)
	assert.Equal(t, "Vila Velha", escola.NomeUsual)
	assert.True(t, escola.Bloco1)

	porID, err := srv.Buscar(strconv.FormatUint(uint64(escola.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, escola.ID, porID.ID)

	_, err = srv.Buscar("escola inexistente")
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)

	_, err = srv.Buscar("  ")
	assert.True(t, erros.EhValidacao(err))
}

func TestAtualizarEscola(t *testing.T) {
	srv := setupServico(t)

	escola, err := srv.Adicionar("EMEF Nova", "Nova", "", "")
	require.NoError(t, err)

	diretor := "Carlos Diretor"
	require.NoError(t, srv.Atualizar(escola.ID, AtualizacaoEscola{Diretor: &diretor}))

	atualizada, err := srv.Obter(escola.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Diretor", atualizada.Diretor)

	err = srv.Atualizar(escola.ID, AtualizacaoEscola{})
	assert.True(t, erros.EhValidacao(err))

	err = srv.Atualizar(99999, AtualizacaoEscola{Diretor: &diretor})
	assert.ErrorIs(t, err, erros.ErrNaoEncontrado)
}

func TestObterCoordenadasJaSalvas(t *testing.T) {
	srv := setupServico(t)
	require.NoError(t, srv.Semear())

	escola, err := srv.Buscar("CECAP")
	require.NoError(t, err)

	lat, lon, err := srv.ObterCoordenadas(context.Background(), escola.ID)
	require.NoError(t, err)
	assert.InDelta(t, -23.0342343, lat, 0.0001)
	assert.InDelta(t, -45.6216388, lon, 0.0001)
}

func TestObterCoordenadasSemGeocodificador(t *testing.T) {
	srv := setupServico(t)

	escola, err := srv.Adicionar("EMEF Sem Coordenadas", "Sem Coordenadas", "", "")
	require.NoError(t, err)

	_, _, err = srv.ObterCoordenadas(context.Background(), escola.ID)
	assert.ErrorIs(t, err, erros.ErrServicoExterno)
}
