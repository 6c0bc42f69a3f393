package tasks

import (
	"context"
	"log"
	"time"

	"gestor-visitas/internal/distancias"
	"gestor-visitas/internal/escolas"

	"github.com/robfig/cron/v3"
)

// GeocodificarEscolasPendentes resolve as coordenadas das escolas do Bloco 1
// que ainda nao foram geocodificadas.
func GeocodificarEscolasPendentes(srv *escolas.Servico) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	resolvidas, err := srv.GeocodificarPendentes(ctx)
	if err != nil {
		log.Println("Erro ao geocodificar escolas pendentes:", err)
		return
	}
	if resolvidas > 0 {
		log.Printf("Geocodificação noturna: %d escola(s) resolvida(s).\n", resolvidas)
	}
}

// AtualizarMatrizDistancias recalcula a matriz de distancias do Bloco 1 e
// renova o cache no Redis.
func AtualizarMatrizDistancias(srv *distancias.Servico) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	matriz, err := srv.CalcularMatriz(ctx)
	if err != nil {
		log.Println("Erro ao recalcular matriz de distâncias:", err)
		return
	}
	log.Printf("Matriz de distâncias atualizada: %d escola(s) na matriz.\n", len(matriz))
}

// InitScheduler registra as tarefas de fundo: geocodificacao todo dia as
// 02:00 e matriz de distancias todo domingo as 03:00.
func InitScheduler(escolasSrv *escolas.Servico, distanciasSrv *distancias.Servico) *cron.Cron {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 2 * * *", func() { GeocodificarEscolasPendentes(escolasSrv) })
	if err != nil {
		log.Println("Erro ao registrar cron GeocodificarEscolasPendentes:", err)
	}

	_, err = c.AddFunc("0 0 3 * * 0", func() { AtualizarMatrizDistancias(distanciasSrv) })
	if err != nil {
		log.Println("Erro ao registrar cron AtualizarMatrizDistancias:", err)
	}

	c.Start()
	log.Println("Agendador de tarefas iniciado.")
	return c
}
