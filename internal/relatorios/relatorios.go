// Package relatorios gera os relatorios das visitas: texto simples para a
// tela e planilhas xlsx para download, incluindo a folha de oficinas.
package relatorios

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gestor-visitas/internal/models"
	"gestor-visitas/internal/visitas"
)

// Gerador escreve os arquivos de relatorio na pasta configurada.
type Gerador struct {
	Pasta string
}

func NovoGerador(pasta string) (*Gerador, error) {
	if pasta == "" {
		pasta = "relatorios"
	}
	if err := os.MkdirAll(pasta, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar pasta de relatorios: %w", err)
	}
	return &Gerador{Pasta: pasta}, nil
}

// formatarData converte YYYY-MM-DD para DD/MM/YYYY; datas fora do formato
// passam sem mudanca.
func formatarData(data string) string {
	t, err := time.Parse("2006-01-02", data)
	if err != nil {
		return data
	}
	return t.Format("02/01/2006")
}

func agruparPorEscola(lista []models.Visita) (map[string][]models.Visita, []string) {
	porEscola := make(map[string][]models.Visita)
	for _, v := range lista {
		porEscola[v.EscolaNome] = append(porEscola[v.EscolaNome], v)
	}
	nomes := make([]string, 0, len(porEscola))
	for nome := range porEscola {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)
	return porEscola, nomes
}

const separador = "================================================================================"
const linhaFina = "--------------------------------------------------------------------------------"

// RelatorioTexto monta o relatorio geral em texto, visitas agrupadas por
// escola em ordem alfabetica.
func (g *Gerador) RelatorioTexto(lista []models.Visita, titulo string) string {
	if titulo == "" {
		titulo = "Relatório de Visitas"
	}
	var b strings.Builder
	b.WriteString(separador + "\n")
	b.WriteString(centralizar(titulo, 80) + "\n")
	b.WriteString(separador + "\n")
	fmt.Fprintf(&b, "Gerado em: %s\n", time.Now().Format("02/01/2006 às 15:04"))
	fmt.Fprintf(&b, "Total de visitas: %d\n", len(lista))
	b.WriteString(separador + "\n\n")

	if len(lista) == 0 {
		b.WriteString("Nenhuma visita registrada.\n")
		return b.String()
	}

	porEscola, nomes := agruparPorEscola(lista)
	for _, nome := range nomes {
		visitasEscola := porEscola[nome]
		fmt.Fprintf(&b, "\n%s\n", nome)
		b.WriteString(linhaFina + "\n")
		fmt.Fprintf(&b, "Total de visitas: %d\n\n", len(visitasEscola))

		for i, v := range visitasEscola {
			fmt.Fprintf(&b, "  Visita #%d\n", i+1)
			fmt.Fprintf(&b, "  Data: %s às %s\n", formatarData(v.Data), v.Hora)
			if v.Observacoes != "" {
				fmt.Fprintf(&b, "  Observações: %s\n", v.Observacoes)
			}
			if len(v.Anexos) > 0 {
				fmt.Fprintf(&b, "  Anexos: %d arquivo(s)\n", len(v.Anexos))
				for _, a := range v.Anexos {
					fmt.Fprintf(&b, "    - %s\n", a.NomeOriginal)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RelatorioEscola monta o relatorio detalhado de uma escola, visitas em
// ordem cronologica.
func (g *Gerador) RelatorioEscola(escolaNome string, lista []models.Visita) string {
	var b strings.Builder
	b.WriteString(separador + "\n")
	b.WriteString(centralizar("RELATÓRIO DE VISITAS - "+escolaNome, 80) + "\n")
	b.WriteString(separador + "\n")
	fmt.Fprintf(&b, "Total de visitas: %d\n", len(lista))
	b.WriteString(separador + "\n\n")

	if len(lista) == 0 {
		b.WriteString("Nenhuma visita registrada para esta escola.\n")
		return b.String()
	}

	ordenadas := make([]models.Visita, len(lista))
	copy(ordenadas, lista)
	sort.Slice(ordenadas, func(i, j int) bool {
		if ordenadas[i].Data != ordenadas[j].Data {
			return ordenadas[i].Data < ordenadas[j].Data
		}
		return ordenadas[i].Hora < ordenadas[j].Hora
	})

	for i, v := range ordenadas {
		fmt.Fprintf(&b, "VISITA #%d\n", i+1)
		b.WriteString(linhaFina + "\n")
		fmt.Fprintf(&b, "ID: %s\n", v.ID)
		fmt.Fprintf(&b, "Data: %s às %s\n", formatarData(v.Data), v.Hora)
		if v.Observacoes != "" {
			fmt.Fprintf(&b, "\nObservações:\n%s\n", v.Observacoes)
		}
		if len(v.Anexos) > 0 {
			fmt.Fprintf(&b, "\nAnexos (%d arquivo(s)):\n", len(v.Anexos))
			for _, a := range v.Anexos {
				fmt.Fprintf(&b, "  - %s\n", a.NomeOriginal)
				fmt.Fprintf(&b, "    Localização: %s\n", a.Caminho)
			}
		}
		b.WriteString(separador + "\n\n")
	}
	return b.String()
}

// RelatorioResumo monta o relatorio de estatisticas em texto.
func (g *Gerador) RelatorioResumo(est *visitas.Estatisticas) string {
	var b strings.Builder
	b.WriteString(separador + "\n")
	b.WriteString(centralizar("RELATÓRIO RESUMIDO - ESTATÍSTICAS", 80) + "\n")
	b.WriteString(separador + "\n\n")

	fmt.Fprintf(&b, "Total de visitas realizadas: %d\n", est.TotalVisitas)
	fmt.Fprintf(&b, "Total de escolas visitadas: %d\n", est.EscolasVisitadas)
	if est.EscolaMaisVisitada != "" {
		fmt.Fprintf(&b, "Escola mais visitada: %s (%d visitas)\n",
			est.EscolaMaisVisitada, est.MaxVisitasEscola)
	}

	if len(est.VisitasPorEscola) > 0 {
		b.WriteString("\n" + linhaFina + "\n")
		b.WriteString("VISITAS POR ESCOLA\n")
		b.WriteString(linhaFina + "\n")
		type par struct {
			nome  string
			total int
		}
		pares := make([]par, 0, len(est.VisitasPorEscola))
		for nome, total := range est.VisitasPorEscola {
			pares = append(pares, par{nome, total})
		}
		sort.Slice(pares, func(i, j int) bool {
			if pares[i].total != pares[j].total {
				return pares[i].total > pares[j].total
			}
			return pares[i].nome < pares[j].nome
		})
		for _, p := range pares {
			fmt.Fprintf(&b, "  %-60s %5d\n", p.nome, p.total)
		}
	}

	if len(est.VisitasPorMes) > 0 {
		b.WriteString("\n" + linhaFina + "\n")
		b.WriteString("VISITAS POR MÊS\n")
		b.WriteString(linhaFina + "\n")
		meses := make([]string, 0, len(est.VisitasPorMes))
		for mes := range est.VisitasPorMes {
			meses = append(meses, mes)
		}
		sort.Strings(meses)
		for _, mes := range meses {
			fmt.Fprintf(&b, "  %-60s %5d\n", mes, est.VisitasPorMes[mes])
		}
	}
	return b.String()
}

// EscolasSemVisita lista, em ordem alfabetica, as escolas que ainda nao
// receberam nenhuma visita.
func (g *Gerador) EscolasSemVisita(todas []models.Escola, lista []models.Visita) []string {
	visitadas := make(map[string]bool, len(lista))
	for _, v := range lista {
		visitadas[v.EscolaNome] = true
	}
	var semVisita []string
	for _, e := range todas {
		if !visitadas[e.NomeUsual] {
			semVisita = append(semVisita, e.NomeUsual)
		}
	}
	sort.Strings(semVisita)
	return semVisita
}

// SalvarTexto grava o relatorio em arquivo .txt e devolve o caminho.
func (g *Gerador) SalvarTexto(conteudo, nomeArquivo string) (string, error) {
	if !strings.HasSuffix(nomeArquivo, ".txt") {
		nomeArquivo += ".txt"
	}
	caminho := filepath.Join(g.Pasta, nomeArquivo)
	if err := os.WriteFile(caminho, []byte(conteudo), 0o644); err != nil {
		return "", fmt.Errorf("erro ao salvar relatorio: %w", err)
	}
	return caminho, nil
}

func centralizar(texto string, largura int) string {
	tamanho := len([]rune(texto))
	if tamanho >= largura {
		return texto
	}
	esquerda := (largura - tamanho) / 2
	return strings.Repeat(" ", esquerda) + texto
}
