package agenda

import (
	"log"
	"os"
	"testing"

	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/storage"
	"gestor-visitas/internal/visitas"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var gormSessionAllowGlobal = gorm.Session{AllowGlobalUpdate: true}

func setupAgenda(t *testing.T) (*Agenda, *escolas.Servico) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST não configurado, pulando testes com banco")
	}

	storage.ConnectTestingDatabase()
	if err := storage.DB.AutoMigrate(
		&models.Escola{}, &models.Mediador{}, &models.Evento{},
		&models.Visita{}, &models.TurmaVisita{}, &models.AnexoVisita{},
	); err != nil {
		log.Fatal("Erro na migração... ", err.Error())
	}

	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.AnexoVisita{})
	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.TurmaVisita{})
	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.Visita{})
	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.Evento{})
	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.Mediador{})
	storage.DB.Session(&gormSessionAllowGlobal).Delete(&models.Escola{})

	armazem := anexos.NovoArmazem(t.TempDir())
	registro := visitas.NovoRegistro(storage.DB, armazem)
	escolasSrv := escolas.NovoServico(storage.DB, nil)
	return Nova(storage.DB, registro, escolasSrv), escolasSrv
}

func TestAdicionarEventoComDiaSemana(t *testing.T) {
	motor, _ := setupAgenda(t)

	// 2025-03-10 e uma segunda-feira.
	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:   models.TipoVisita,
		Titulo: "Visita X",
		Data:   "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlanejado, evento.Status)
	assert.Equal(t, 0, evento.DiaSemana)
	assert.NotEmpty(t, evento.ID)
}

func TestAdicionarEventoValidacoes(t *testing.T) {
	motor, _ := setupAgenda(t)

	_, err := motor.AdicionarEvento(NovoEvento{Titulo: "Sem data"})
	assert.Error(t, err)

	_, err = motor.AdicionarEvento(NovoEvento{Titulo: "Data ruim", Data: "10/03/2025"})
	assert.Error(t, err)

	_, err = motor.AdicionarEvento(NovoEvento{Data: "2025-03-10"})
	assert.Error(t, err, "sem titulo e sem escola deve falhar")

	_, err = motor.AdicionarEvento(NovoEvento{Tipo: "festa", Titulo: "X", Data: "2025-03-10"})
	assert.Error(t, err, "tipo desconhecido deve falhar")

	// Visita sem titulo herda o nome da escola.
	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoVisita,
		Data:       "2025-03-10",
		EscolaNome: "CIEI Bonfim",
	})
	require.NoError(t, err)
	assert.Equal(t, "CIEI Bonfim", evento.Titulo)
}

func TestMoverEventoRecalculaDiaSemana(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Titulo: "Reunião de área",
		Tipo:   models.TipoReuniao,
		Data:   "2025-03-10",
	})
	require.NoError(t, err)

	// 2025-03-15 e um sabado.
	require.NoError(t, motor.MoverEvento(evento.ID, "2025-03-15", nil))

	movido, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", movido.Data)
	assert.Equal(t, 5, movido.DiaSemana)
	assert.Equal(t, models.StatusPlanejado, movido.Status)
}

func TestDuplicarEvento(t *testing.T) {
	motor, _ := setupAgenda(t)

	hora := "09:00"
	original, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoVisita,
		Titulo:     "Visita X",
		Data:       "2025-03-10",
		HoraInicio: &hora,
		Turno:      models.TurnoManha,
		EscolaNome: "CIEI Bonfim",
		Descricao:  "Oficina de leitura",
	})
	require.NoError(t, err)
	require.NoError(t, motor.MarcarExecutado(original.ID))

	copia, err := motor.DuplicarEvento(original.ID, "2025-03-17")
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, copia.ID)
	assert.Equal(t, "2025-03-17", copia.Data)
	assert.Equal(t, models.StatusPlanejado, copia.Status)
	assert.Equal(t, original.Tipo, copia.Tipo)
	assert.Equal(t, original.Titulo, copia.Titulo)
	assert.Equal(t, original.Turno, copia.Turno)
	assert.Equal(t, original.EscolaNome, copia.EscolaNome)
	assert.Equal(t, original.Descricao, copia.Descricao)
	require.NotNil(t, copia.HoraInicio)
	assert.Equal(t, hora, *copia.HoraInicio)

	// O original nao muda.
	aindaOriginal, err := motor.ObterEvento(original.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExecutado, aindaOriginal.Status)
	assert.Equal(t, "2025-03-10", aindaOriginal.Data)
}

func TestCancelarEvento(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{Titulo: "Formação", Tipo: models.TipoCapacitacao, Data: "2025-04-01"})
	require.NoError(t, err)

	require.NoError(t, motor.CancelarEvento(evento.ID))
	// Cancelar de novo e no-op.
	require.NoError(t, motor.CancelarEvento(evento.ID))

	cancelado, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelado, cancelado.Status)

	// Cancelado nao pode virar executado.
	assert.Error(t, motor.MarcarExecutado(evento.ID))
}

func TestMarcarExecutado(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{Titulo: "Apresentação", Tipo: models.TipoApresentacao, Data: "2025-04-02"})
	require.NoError(t, err)

	require.NoError(t, motor.MarcarExecutado(evento.ID))
	require.NoError(t, motor.MarcarExecutado(evento.ID))

	executado, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExecutado, executado.Status)

	// Executado nao pode ser cancelado.
	assert.Error(t, motor.CancelarEvento(evento.ID))
}

func TestAtualizarEventoNaoEncontrado(t *testing.T) {
	motor, _ := setupAgenda(t)

	titulo := "Novo título"
	_, err := motor.AtualizarEvento("nao-existe", AtualizacaoEvento{Titulo: &titulo})
	assert.Error(t, err)
}

func contarVisitas(t *testing.T) int64 {
	t.Helper()
	var total int64
	require.NoError(t, storage.DB.Model(&models.Visita{}).Count(&total).Error)
	return total
}

func TestExecutarVisitaSemAnexoFalha(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoVisita,
		Titulo:     "Visita X",
		Data:       "2025-03-10",
		EscolaNome: "CIEI Bonfim",
	})
	require.NoError(t, err)

	_, err = motor.ExecutarVisita(evento.ID, ExecucaoVisita{Observacoes: "Sem anexo"})
	assert.Error(t, err)

	assert.EqualValues(t, 0, contarVisitas(t))
	depois, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlanejado, depois.Status)
}

func TestExecutarVisitaTipoErrado(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:   models.TipoReuniao,
		Titulo: "Reunião",
		Data:   "2025-03-10",
	})
	require.NoError(t, err)

	_, err = motor.ExecutarVisita(evento.ID, ExecucaoVisita{
		Anexos: []anexos.Arquivo{{NomeOriginal: "foto.jpg", Conteudo: []byte("x")}},
	})
	assert.Error(t, err)
	assert.EqualValues(t, 0, contarVisitas(t))
}

func TestExecutarVisitaSemAnexoValidoFalha(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoVisita,
		Titulo:     "Visita X",
		Data:       "2025-03-10",
		EscolaNome: "CIEI Bonfim",
	})
	require.NoError(t, err)

	// Todos os anexos sao rejeitados pelo filtro de extensao.
	_, err = motor.ExecutarVisita(evento.ID, ExecucaoVisita{
		Anexos: []anexos.Arquivo{{NomeOriginal: "video.mp4", Conteudo: []byte("x")}},
	})
	assert.Error(t, err)

	assert.EqualValues(t, 0, contarVisitas(t))
	depois, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlanejado, depois.Status)
}

func TestExecutarVisitaCenarioCompleto(t *testing.T) {
	motor, escolasSrv := setupAgenda(t)

	escola, err := escolasSrv.Adicionar("EMEF Prof. José Ezequiel", "José Ezequiel", "Maria Gestora", "João Mediador")
	require.NoError(t, err)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoVisita,
		Titulo:     "Visita X",
		Data:       "2025-03-10",
		EscolaID:   &escola.ID,
		EscolaNome: escola.NomeUsual,
	})
	require.NoError(t, err)

	quantidade := 25
	visita, err := motor.ExecutarVisita(evento.ID, ExecucaoVisita{
		Observacoes: "Tudo certo",
		Oficina:     "Contação de histórias",
		Turno:       models.TurnoManha,
		Turmas: []visitas.Turma{
			{NomeTurma: "3º ano A", Quantidade: &quantidade, Nivel: "Fundamental", Avaliacao: "Ótima"},
		},
		Anexos: []anexos.Arquivo{{NomeOriginal: "evidencia.jpg", Conteudo: []byte("foto")}},
	})
	require.NoError(t, err)

	require.NotNil(t, visita.EscolaID)
	assert.Equal(t, escola.ID, *visita.EscolaID)
	assert.Equal(t, "2025-03-10", visita.Data)
	assert.Equal(t, "Tudo certo", visita.Observacoes)
	assert.Equal(t, "Maria Gestora", visita.GestorNome)
	assert.Equal(t, "EMEF Prof. José Ezequiel", visita.EscolaNomeOficial)
	assert.Len(t, visita.Anexos, 1)
	assert.Equal(t, "foto", visita.Anexos[0].Tipo)
	assert.Len(t, visita.Turmas, 1)

	depois, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExecutado, depois.Status)

	// Executar de novo falha: o evento ja nao esta planejado.
	_, err = motor.ExecutarVisita(evento.ID, ExecucaoVisita{
		Anexos: []anexos.Arquivo{{NomeOriginal: "outra.jpg", Conteudo: []byte("x")}},
	})
	assert.Error(t, err)
	assert.EqualValues(t, 1, contarVisitas(t))
}

func TestTransicaoNaoSobrescreveStatusTerminal(t *testing.T) {
	motor, _ := setupAgenda(t)

	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:   models.TipoReuniao,
		Titulo: "Reunião de área",
		Data:   "2025-03-10",
	})
	require.NoError(t, err)

	// Outro chamador cancela entre a leitura do status e a escrita deste.
	require.NoError(t, storage.DB.Model(&models.Evento{}).
		Where("id = ?", evento.ID).
		Update("status", models.StatusCancelado).Error)

	err = motor.MarcarExecutado(evento.ID)
	assert.True(t, erros.EhValidacao(err))

	atual, err := motor.ObterEvento(evento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelado, atual.Status)

	// Repetir a operacao que venceu continua sendo no-op.
	assert.NoError(t, motor.CancelarEvento(evento.ID))
}

func TestAtualizarEventoLimpaHorario(t *testing.T) {
	motor, _ := setupAgenda(t)

	inicio, fim := "09:00", "11:00"
	evento, err := motor.AdicionarEvento(NovoEvento{
		Tipo:       models.TipoReuniao,
		Titulo:     "Reunião com horário",
		Data:       "2025-03-10",
		HoraInicio: &inicio,
		HoraFim:    &fim,
	})
	require.NoError(t, err)
	require.NotNil(t, evento.HoraInicio)

	// Hora vazia devolve o evento ao estado sem horario (NULL, nao "").
	vazio := ""
	atualizado, err := motor.AtualizarEvento(evento.ID, AtualizacaoEvento{
		HoraInicio: &vazio,
		HoraFim:    &vazio,
	})
	require.NoError(t, err)
	assert.Nil(t, atualizado.HoraInicio)
	assert.Nil(t, atualizado.HoraFim)
}
