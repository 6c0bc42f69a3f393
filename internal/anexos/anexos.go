package anexos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extensoes aceitas para anexos de visita.
var extensoesPermitidas = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"pdf":  true,
	"doc":  true,
	"docx": true,
}

var (
	ErrExtensaoNaoPermitida = errors.New("extensao de arquivo nao permitida")
	ErrArquivoMuitoGrande   = errors.New("arquivo excede o tamanho maximo")
	ErrArquivoVazio         = errors.New("arquivo sem nome ou sem conteudo")
)

// TamanhoMaxPadrao limita anexos a 16MB, como o upload da aplicacao web.
const TamanhoMaxPadrao = 16 << 20

// Arquivo e o conteudo bruto recebido no upload.
type Arquivo struct {
	NomeOriginal string
	Conteudo     []byte
}

// AnexoSalvo e a referencia estavel devolvida pelo armazenamento.
type AnexoSalvo struct {
	Caminho      string
	NomeOriginal string
	Tipo         string
}

// Armazem grava anexos em disco aplicando filtro de extensao e limite de tamanho.
type Armazem struct {
	Pasta      string
	TamanhoMax int64
}

func NovoArmazem(pasta string) *Armazem {
	return &Armazem{Pasta: pasta, TamanhoMax: TamanhoMaxPadrao}
}

// Extensao devolve a extensao do arquivo em minusculas, sem o ponto.
func Extensao(nome string) string {
	ext := strings.TrimPrefix(filepath.Ext(nome), ".")
	return strings.ToLower(ext)
}

// ExtensaoPermitida verifica se o arquivo passa no filtro de extensoes.
func ExtensaoPermitida(nome string) bool {
	return extensoesPermitidas[Extensao(nome)]
}

// ClassificarTipo marca imagens como "foto" e os demais pela extensao (ex: "pdf").
func ClassificarTipo(nome string) string {
	ext := Extensao(nome)
	if ext == "png" || ext == "jpg" || ext == "jpeg" {
		return "foto"
	}
	return ext
}

var caracteresInseguros = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// nomeSeguro remove do nome qualquer caractere problematico para caminho de arquivo.
func nomeSeguro(nome string) string {
	nome = filepath.Base(nome)
	return caracteresInseguros.ReplaceAllString(nome, "_")
}

// Salvar grava o arquivo e devolve a referencia, ou rejeita por extensao/tamanho.
func (a *Armazem) Salvar(arq Arquivo) (*AnexoSalvo, error) {
	if arq.NomeOriginal == "" || len(arq.Conteudo) == 0 {
		return nil, ErrArquivoVazio
	}
	if !ExtensaoPermitida(arq.NomeOriginal) {
		return nil, fmt.Errorf("%w: %s", ErrExtensaoNaoPermitida, arq.NomeOriginal)
	}
	max := a.TamanhoMax
	if max == 0 {
		max = TamanhoMaxPadrao
	}
	if int64(len(arq.Conteudo)) > max {
		return nil, fmt.Errorf("%w: %s", ErrArquivoMuitoGrande, arq.NomeOriginal)
	}

	if err := os.MkdirAll(a.Pasta, 0o755); err != nil {
		return nil, err
	}

	// Timestamp para leitura humana, uuid para unicidade.
	nome := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8], nomeSeguro(arq.NomeOriginal))
	caminho := filepath.Join(a.Pasta, nome)
	if err := os.WriteFile(caminho, arq.Conteudo, 0o644); err != nil {
		return nil, err
	}

	return &AnexoSalvo{
		Caminho:      caminho,
		NomeOriginal: arq.NomeOriginal,
		Tipo:         ClassificarTipo(arq.NomeOriginal),
	}, nil
}

// Remover apaga um anexo ja gravado. Arquivo inexistente nao e erro.
func (a *Armazem) Remover(caminho string) error {
	err := os.Remove(caminho)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
