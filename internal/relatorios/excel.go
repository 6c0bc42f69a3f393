package relatorios

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gestor-visitas/internal/models"

	"github.com/xuri/excelize/v2"
)

func definirLinha(f *excelize.File, aba string, linha int, valores []interface{}) error {
	celula, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	return f.SetSheetRow(aba, celula, &valores)
}

// RelatorioExcel gera a planilha consolidada: uma aba com todas as visitas,
// um resumo por escola e um resumo por data.
func (g *Gerador) RelatorioExcel(lista []models.Visita) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const abaTodas = "Todas as Visitas"
	f.SetSheetName("Sheet1", abaTodas)

	negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}

	cabecalho := []interface{}{"ID", "Escola", "Data", "Hora", "Observações", "Nº Anexos"}
	if err := definirLinha(f, abaTodas, 1, cabecalho); err != nil {
		return "", err
	}
	f.SetCellStyle(abaTodas, "A1", "F1", negrito)
	f.SetColWidth(abaTodas, "A", "A", 38)
	f.SetColWidth(abaTodas, "B", "B", 30)
	f.SetColWidth(abaTodas, "E", "E", 50)

	porEscola := make(map[string]struct{ visitas, anexos int })
	porData := make(map[string]map[string]bool)
	for i, v := range lista {
		err := definirLinha(f, abaTodas, i+2, []interface{}{
			v.ID, v.EscolaNome, formatarData(v.Data), v.Hora, v.Observacoes, len(v.Anexos),
		})
		if err != nil {
			return "", err
		}
		resumo := porEscola[v.EscolaNome]
		resumo.visitas++
		resumo.anexos += len(v.Anexos)
		porEscola[v.EscolaNome] = resumo

		data := formatarData(v.Data)
		if porData[data] == nil {
			porData[data] = make(map[string]bool)
		}
		porData[data][v.EscolaNome] = true
	}

	const abaEscolas = "Resumo por Escola"
	if _, err := f.NewSheet(abaEscolas); err != nil {
		return "", err
	}
	if err := definirLinha(f, abaEscolas, 1, []interface{}{"Escola", "Total de Visitas", "Total de Anexos"}); err != nil {
		return "", err
	}
	f.SetCellStyle(abaEscolas, "A1", "C1", negrito)
	f.SetColWidth(abaEscolas, "A", "A", 30)
	nomes := make([]string, 0, len(porEscola))
	for nome := range porEscola {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)
	for i, nome := range nomes {
		resumo := porEscola[nome]
		err := definirLinha(f, abaEscolas, i+2, []interface{}{nome, resumo.visitas, resumo.anexos})
		if err != nil {
			return "", err
		}
	}

	const abaDatas = "Resumo por Data"
	if _, err := f.NewSheet(abaDatas); err != nil {
		return "", err
	}
	if err := definirLinha(f, abaDatas, 1, []interface{}{"Data", "Nº Visitas", "Escolas Visitadas"}); err != nil {
		return "", err
	}
	f.SetCellStyle(abaDatas, "A1", "C1", negrito)
	f.SetColWidth(abaDatas, "C", "C", 60)
	datas := make([]string, 0, len(porData))
	for data := range porData {
		datas = append(datas, data)
	}
	sort.Strings(datas)
	for i, data := range datas {
		escolasNoDia := make([]string, 0, len(porData[data]))
		for nome := range porData[data] {
			escolasNoDia = append(escolasNoDia, nome)
		}
		sort.Strings(escolasNoDia)
		total := 0
		for _, v := range lista {
			if formatarData(v.Data) == data {
				total++
			}
		}
		err := definirLinha(f, abaDatas, i+2, []interface{}{data, total, strings.Join(escolasNoDia, ", ")})
		if err != nil {
			return "", err
		}
	}

	caminho := filepath.Join(g.Pasta,
		fmt.Sprintf("relatorio_visitas_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(caminho); err != nil {
		return "", fmt.Errorf("erro ao salvar planilha: %w", err)
	}
	return caminho, nil
}

// FolhaOficinas gera a folha de avaliacao de oficinas: uma aba por visita,
// com a identificacao na frente e as turmas e registros narrativos abaixo.
func (g *Gerador) FolhaOficinas(lista []models.Visita) (string, error) {
	if len(lista) == 0 {
		return "", fmt.Errorf("nenhuma visita para gerar a folha de oficinas")
	}

	f := excelize.NewFile()
	defer f.Close()

	negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	titulo, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", err
	}

	for idx, v := range lista {
		aba := fmt.Sprintf("Visita %d", idx+1)
		if idx == 0 {
			f.SetSheetName("Sheet1", aba)
		} else if _, err := f.NewSheet(aba); err != nil {
			return "", err
		}
		f.SetColWidth(aba, "A", "A", 24)
		f.SetColWidth(aba, "B", "E", 20)

		f.MergeCell(aba, "A1", "E1")
		f.SetCellValue(aba, "A1", "FOLHA DE AVALIAÇÃO DE OFICINAS")
		f.SetCellStyle(aba, "A1", "E1", titulo)

		identificacao := [][2]interface{}{
			{"Unidade Escolar", v.EscolaNome},
			{"Nome Oficial", v.EscolaNomeOficial},
			{"Data", formatarData(v.Data)},
			{"Turno", v.Turno},
			{"Oficina", v.Oficina},
			{"Mediador", v.MediadorNome},
			{"Articulador", v.ArticuladorNome},
			{"Gestor", v.GestorNome},
		}
		linha := 3
		for _, par := range identificacao {
			rotulo, _ := excelize.CoordinatesToCellName(1, linha)
			f.SetCellValue(aba, rotulo, par[0])
			f.SetCellStyle(aba, rotulo, rotulo, negrito)
			valor, _ := excelize.CoordinatesToCellName(2, linha)
			f.SetCellValue(aba, valor, par[1])
			linha++
		}

		linha++
		if err := definirLinha(f, aba, linha, []interface{}{
			"Turma", "Quantidade", "Nível", "Avaliação", "Faixa Etária",
		}); err != nil {
			return "", err
		}
		inicio, _ := excelize.CoordinatesToCellName(1, linha)
		fim, _ := excelize.CoordinatesToCellName(5, linha)
		f.SetCellStyle(aba, inicio, fim, negrito)
		linha++
		for _, turma := range v.Turmas {
			var quantidade interface{}
			if turma.Quantidade != nil {
				quantidade = *turma.Quantidade
			}
			err := definirLinha(f, aba, linha, []interface{}{
				turma.NomeTurma, quantidade, turma.Nivel, turma.Avaliacao, turma.FaixaEtaria,
			})
			if err != nil {
				return "", err
			}
			linha++
		}

		narrativos := [][2]string{
			{"Observações", v.Observacoes},
			{"Contribuições", v.Contribuicoes},
			{"Combinados", v.Combinados},
		}
		for _, par := range narrativos {
			linha++
			rotulo, _ := excelize.CoordinatesToCellName(1, linha)
			f.SetCellValue(aba, rotulo, par[0])
			f.SetCellStyle(aba, rotulo, rotulo, negrito)
			valor, _ := excelize.CoordinatesToCellName(2, linha)
			f.SetCellValue(aba, valor, par[1])
		}
	}

	caminho := filepath.Join(g.Pasta,
		fmt.Sprintf("folha_oficinas_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(caminho); err != nil {
		return "", fmt.Errorf("erro ao salvar folha de oficinas: %w", err)
	}
	return caminho, nil
}
