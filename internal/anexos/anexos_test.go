package anexos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensaoPermitida(t *testing.T) {
	assert.True(t, ExtensaoPermitida("foto.jpg"))
	assert.True(t, ExtensaoPermitida("FOTO.JPG"))
	assert.True(t, ExtensaoPermitida("relatorio.pdf"))
	assert.True(t, ExtensaoPermitida("ata.docx"))
	assert.False(t, ExtensaoPermitida("script.exe"))
	assert.False(t, ExtensaoPermitida("video.mp4"))
	assert.False(t, ExtensaoPermitida("sem_extensao"))
}

func TestClassificarTipo(t *testing.T) {
	assert.Equal(t, "foto", ClassificarTipo("evidencia.png"))
	assert.Equal(t, "foto", ClassificarTipo("evidencia.JPEG"))
	assert.Equal(t, "pdf", ClassificarTipo("relatorio.pdf"))
	assert.Equal(t, "docx", ClassificarTipo("ata.docx"))
}

func TestSalvarGravaEClassifica(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())

	salvo, err := armazem.Salvar(Arquivo{
		NomeOriginal: "foto da visita.jpg",
		Conteudo:     []byte("conteudo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "foto da visita.jpg", salvo.NomeOriginal)
	assert.Equal(t, "foto", salvo.Tipo)

	// O nome gravado em disco nao pode conter espacos ou caracteres inseguros.
	assert.NotContains(t, filepath.Base(salvo.Caminho), " ")

	conteudo, err := os.ReadFile(salvo.Caminho)
	require.NoError(t, err)
	assert.Equal(t, []byte("conteudo"), conteudo)
}

func TestSalvarRejeitaExtensao(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())

	_, err := armazem.Salvar(Arquivo{NomeOriginal: "virus.exe", Conteudo: []byte("x")})
	assert.ErrorIs(t, err, ErrExtensaoNaoPermitida)
}

func TestSalvarRejeitaArquivoVazio(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())

	_, err := armazem.Salvar(Arquivo{NomeOriginal: "foto.jpg"})
	assert.ErrorIs(t, err, ErrArquivoVazio)

	_, err = armazem.Salvar(Arquivo{Conteudo: []byte("x")})
	assert.ErrorIs(t, err, ErrArquivoVazio)
}

func TestSalvarRejeitaArquivoGrande(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())
	armazem.TamanhoMax = 4

	_, err := armazem.Salvar(Arquivo{NomeOriginal: "foto.jpg", Conteudo: []byte("12345")})
	assert.ErrorIs(t, err, ErrArquivoMuitoGrande)
}

func TestRemoverInexistenteNaoFalha(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())
	assert.NoError(t, armazem.Remover(filepath.Join(armazem.Pasta, "nao_existe.jpg")))
}

func TestSalvarNomesUnicos(t *testing.T) {
	armazem := NovoArmazem(t.TempDir())
	arq := Arquivo{NomeOriginal: "evidencia.jpg", Conteudo: []byte("a")}

	primeiro, err := armazem.Salvar(arq)
	require.NoError(t, err)
	segundo, err := armazem.Salvar(arq)
	require.NoError(t, err)

	// Mesmo nome e mesmo instante nao podem colidir no disco.
	assert.NotEqual(t, primeiro.Caminho, segundo.Caminho)
	_, err = os.Stat(primeiro.Caminho)
	assert.NoError(t, err)
	_, err = os.Stat(segundo.Caminho)
	assert.NoError(t, err)
}
