package erros

import (
	"errors"
	"fmt"
)

// Sentinelas compartilhadas pelos servicos. Os handlers usam errors.Is/As
// para mapear cada tipo em codigo HTTP.
var (
	// ErrNaoEncontrado indica que o registro referenciado nao existe.
	ErrNaoEncontrado = errors.New("registro nao encontrado")

	// ErrServicoExterno indica falha/timeout de servico externo (rotas, geocodificacao).
	ErrServicoExterno = errors.New("servico externo indisponivel")
)

// ErroValidacao indica campo obrigatorio ausente ou valor malformado.
// A operacao que o devolve nao teve nenhum efeito colateral.
type ErroValidacao struct {
	Campo  string
	Motivo string
}

func (e *ErroValidacao) Error() string {
	if e.Campo == "" {
		return e.Motivo
	}
	return fmt.Sprintf("%s: %s", e.Campo, e.Motivo)
}

func Validacao(campo, motivo string) *ErroValidacao {
	return &ErroValidacao{Campo: campo, Motivo: motivo}
}

// EhValidacao informa se o erro e (ou embrulha) um ErroValidacao.
func EhValidacao(err error) bool {
	var ev *ErroValidacao
	return errors.As(err, &ev)
}
