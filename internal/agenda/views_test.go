package agenda

import (
	"testing"
	"time"

	"gestor-visitas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaEventosSemHoraPrimeiro(t *testing.T) {
	motor, _ := setupAgenda(t)

	hora := "09:00"
	comHora, err := motor.AdicionarEvento(NovoEvento{
		Titulo:     "Com horário",
		Data:       "2025-03-10",
		HoraInicio: &hora,
	})
	require.NoError(t, err)

	semHora, err := motor.AdicionarEvento(NovoEvento{
		Titulo: "Sem horário",
		Data:   "2025-03-10",
	})
	require.NoError(t, err)

	eventos, err := motor.EventosDia("2025-03-10")
	require.NoError(t, err)
	require.Len(t, eventos, 2)
	assert.Equal(t, semHora.ID, eventos[0].ID)
	assert.Equal(t, comHora.ID, eventos[1].ID)
}

func TestDiaDataInvalida(t *testing.T) {
	motor, _ := setupAgenda(t)

	_, err := motor.EventosDia("10/03/2025")
	assert.Error(t, err)
}

func TestSemanaSeteDiasConsecutivos(t *testing.T) {
	motor, _ := setupAgenda(t)

	_, err := motor.AdicionarEvento(NovoEvento{Titulo: "Meio da semana", Data: "2025-03-12"})
	require.NoError(t, err)

	// 2025-03-12 e uma quarta; a semana comeca na segunda 2025-03-10.
	semana, err := motor.EventosSemana("2025-03-12")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", semana.SemanaInicio)
	assert.Equal(t, "2025-03-16", semana.SemanaFim)
	require.Len(t, semana.Eventos, 7)

	inicio, err := time.Parse("2006-01-02", semana.SemanaInicio)
	require.NoError(t, err)
	assert.Equal(t, 0, models.DiaSemanaDe(inicio))

	for i := 0; i < 7; i++ {
		dia := inicio.AddDate(0, 0, i).Format("2006-01-02")
		_, presente := semana.Eventos[dia]
		assert.True(t, presente, "dia %s ausente da semana", dia)
	}
	assert.Len(t, semana.Eventos["2025-03-12"], 1)
	assert.Empty(t, semana.Eventos["2025-03-10"])
}

func TestMesFevereiroNaoBissexto(t *testing.T) {
	motor, _ := setupAgenda(t)

	visao, err := motor.EventosMes(2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 28, visao.TotalDias)
	assert.Equal(t, "2025-02-01", visao.PrimeiroDia)
	assert.Equal(t, "2025-02-28", visao.UltimoDia)
	// 2025-02-01 e um sabado.
	assert.Equal(t, 5, visao.PrimeiroDiaSemana)
}

func TestMesInvalido(t *testing.T) {
	motor, _ := setupAgenda(t)

	_, err := motor.EventosMes(2025, 13)
	assert.Error(t, err)
}

func TestMesTotalBateComEstatisticas(t *testing.T) {
	motor, _ := setupAgenda(t)

	_, err := motor.AdicionarEvento(NovoEvento{Titulo: "A", Tipo: models.TipoVisita, Data: "2025-05-05"})
	require.NoError(t, err)
	_, err = motor.AdicionarEvento(NovoEvento{Titulo: "B", Tipo: models.TipoReuniao, Data: "2025-05-05"})
	require.NoError(t, err)
	c, err := motor.AdicionarEvento(NovoEvento{Titulo: "C", Tipo: models.TipoVisita, Data: "2025-05-20"})
	require.NoError(t, err)
	require.NoError(t, motor.CancelarEvento(c.ID))
	// Fora do mes, nao conta.
	_, err = motor.AdicionarEvento(NovoEvento{Titulo: "D", Data: "2025-06-01"})
	require.NoError(t, err)

	visao, err := motor.EventosMes(2025, 5)
	require.NoError(t, err)

	soma := 0
	for _, lista := range visao.Eventos {
		soma += len(lista)
	}
	assert.Equal(t, 3, visao.TotalEventos)
	assert.Equal(t, visao.TotalEventos, soma)
	// So dias com eventos aparecem no mapa.
	assert.Len(t, visao.Eventos, 2)

	stats, err := motor.EstatisticasDoMes(2025, 5)
	require.NoError(t, err)
	assert.Equal(t, visao.TotalEventos, stats.Total)
	assert.Equal(t, 2, stats.PorTipo[models.TipoVisita])
	assert.Equal(t, 1, stats.PorTipo[models.TipoReuniao])
	assert.Equal(t, 2, stats.PorStatus[models.StatusPlanejado])
	assert.Equal(t, 1, stats.PorStatus[models.StatusCancelado])
	// Os tres status sempre aparecem, mesmo zerados.
	_, presente := stats.PorStatus[models.StatusExecutado]
	assert.True(t, presente)
}
