// Package handlers expoe a API HTTP do sistema de visitas sobre o gin.
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/response"

	"github.com/gin-gonic/gin"
)

// tratarErro converte os erros dos servicos no envelope de erro da API.
func tratarErro(c *gin.Context, err error) {
	var validacao *erros.ErroValidacao
	switch {
	case errors.Is(err, erros.ErrNaoEncontrado):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Registro não encontrado",
		})
	case errors.As(err, &validacao):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: validacao.Motivo,
			Details: validacao.Campo,
		})
	case errors.Is(err, erros.ErrServicoExterno):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{
			Code:    "EXTERNAL_SERVICE_ERROR",
			Message: "Serviço externo indisponível",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro interno do servidor",
			Details: err.Error(),
		})
	}
}

// lerArquivos carrega os arquivos de um formulario multipart para a memoria.
func lerArquivos(cabecalhos []*multipart.FileHeader) ([]anexos.Arquivo, error) {
	var arquivos []anexos.Arquivo
	for _, fh := range cabecalhos {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		conteudo, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		arquivos = append(arquivos, anexos.Arquivo{
			NomeOriginal: fh.Filename,
			Conteudo:     conteudo,
		})
	}
	return arquivos, nil
}
