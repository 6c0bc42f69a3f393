// Package distancias calcula rotas entre escolas via OSRM, com cache em
// Redis para rotas individuais e para a matriz completa do Bloco 1.
package distancias

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"time"

	"gestor-visitas/internal/erros"
	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	chaveMatriz = "matriz_distancias"
	ttlRota     = 30 * 24 * time.Hour
	ttlMatriz   = 14 * 24 * time.Hour
)

// Rota e o resultado de uma consulta de rota rodoviaria.
type Rota struct {
	DistanciaKm    float64 `json:"distancia_km"`
	DuracaoMinutos float64 `json:"duracao_minutos"`
}

// Servico consulta o OSRM e mantem os caches. O servidor publico do projeto
// OSRM e o padrao; OSRM_URL troca por uma instancia propria.
type Servico struct {
	db      *gorm.DB
	cache   *redis.Client
	escolas *escolas.Servico
	BaseURL string
	http    *http.Client
}

func NovoServico(db *gorm.DB, cache *redis.Client, escolasSrv *escolas.Servico) *Servico {
	return &Servico{
		db:      db,
		cache:   cache,
		escolas: escolasSrv,
		BaseURL: "http://router.project-osrm.org",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type respostaOSRM struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func arredondar(v float64, casas int) float64 {
	fator := math.Pow(10, float64(casas))
	return math.Round(v*fator) / fator
}

// CalcularRota consulta a rota de carro entre dois pontos. O OSRM recebe as
// coordenadas como longitude,latitude. Falha de rede vira ErrServicoExterno
// depois de uma nova tentativa.
func (s *Servico) CalcularRota(ctx context.Context, origem, destino escolas.Coordenadas) (*Rota, error) {
	chave := fmt.Sprintf("rota_%.6f,%.6f_%.6f,%.6f",
		origem.Latitude, origem.Longitude, destino.Latitude, destino.Longitude)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, chave).Result(); err == nil && cached != "" {
			var rota Rota
			if err := json.Unmarshal([]byte(cached), &rota); err == nil {
				return &rota, nil
			}
		}
	}

	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false&steps=false",
		s.BaseURL, origem.Longitude, origem.Latitude, destino.Longitude, destino.Latitude)

	var ultimoErr error
	for tentativa := 0; tentativa < 2; tentativa++ {
		if tentativa > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.http.Do(req)
		if err != nil {
			ultimoErr = err
			continue
		}

		var dados respostaOSRM
		err = json.NewDecoder(resp.Body).Decode(&dados)
		resp.Body.Close()
		if err != nil {
			ultimoErr = err
			continue
		}
		if dados.Code != "Ok" || len(dados.Routes) == 0 {
			ultimoErr = fmt.Errorf("resposta OSRM: %s", dados.Code)
			continue
		}

		rota := Rota{
			DistanciaKm:    arredondar(dados.Routes[0].Distance/1000, 2),
			DuracaoMinutos: arredondar(dados.Routes[0].Duration/60, 1),
		}
		if s.cache != nil {
			if body, err := json.Marshal(rota); err == nil {
				s.cache.Set(ctx, chave, string(body), ttlRota)
			}
		}
		return &rota, nil
	}
	return nil, fmt.Errorf("%w: %v", erros.ErrServicoExterno, ultimoErr)
}

// RotaEntreEscolas resolve as coordenadas das duas escolas (geocodificando
// se necessario) e calcula a rota entre elas.
func (s *Servico) RotaEntreEscolas(ctx context.Context, origemID, destinoID uint) (*Rota, error) {
	latO, lonO, err := s.escolas.ObterCoordenadas(ctx, origemID)
	if err != nil {
		return nil, err
	}
	latD, lonD, err := s.escolas.ObterCoordenadas(ctx, destinoID)
	if err != nil {
		return nil, err
	}
	return s.CalcularRota(ctx,
		escolas.Coordenadas{Latitude: latO, Longitude: lonO},
		escolas.Coordenadas{Latitude: latD, Longitude: lonD})
}

// EscolaProxima e uma escola candidata com a rota ate a referencia.
type EscolaProxima struct {
	Escola         models.Escola `json:"escola"`
	DistanciaKm    float64       `json:"distancia_km"`
	DuracaoMinutos float64       `json:"duracao_minutos"`
}

// EscolasProximas ranqueia as demais escolas com coordenadas pela distancia
// de carro ate a escola de referencia. Rotas que falharem sao puladas.
func (s *Servico) EscolasProximas(ctx context.Context, escolaID uint, limite int) ([]EscolaProxima, error) {
	if limite <= 0 {
		limite = 5
	}
	referencia, err := s.escolas.Obter(escolaID)
	if err != nil {
		return nil, err
	}
	if !referencia.TemCoordenadas() {
		return nil, erros.Validacao("escola", "escola de referencia sem coordenadas")
	}
	origem := escolas.Coordenadas{Latitude: *referencia.Latitude, Longitude: *referencia.Longitude}

	var candidatas []models.Escola
	err = s.db.Where("id <> ? AND latitude IS NOT NULL AND longitude IS NOT NULL", escolaID).
		Find(&candidatas).Error
	if err != nil {
		return nil, err
	}

	var proximas []EscolaProxima
	for _, escola := range candidatas {
		rota, err := s.CalcularRota(ctx, origem,
			escolas.Coordenadas{Latitude: *escola.Latitude, Longitude: *escola.Longitude})
		if err != nil {
			log.Printf("Rota %s -> %s falhou: %v", referencia.NomeUsual, escola.NomeUsual, err)
			continue
		}
		proximas = append(proximas, EscolaProxima{
			Escola:         escola,
			DistanciaKm:    rota.DistanciaKm,
			DuracaoMinutos: rota.DuracaoMinutos,
		})
	}
	sort.Slice(proximas, func(i, j int) bool {
		return proximas[i].DistanciaKm < proximas[j].DistanciaKm
	})
	if len(proximas) > limite {
		proximas = proximas[:limite]
	}
	return proximas, nil
}

// Matriz indexa rotas por nome usual de escola, nas duas direcoes.
type Matriz map[string]map[string]Rota

// CalcularMatriz computa as rotas par a par entre as escolas do Bloco 1 com
// coordenadas e guarda o resultado no Redis. Pares com falha ficam de fora.
func (s *Servico) CalcularMatriz(ctx context.Context) (Matriz, error) {
	var lista []models.Escola
	err := s.db.Where("bloco1 = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Order("nome_usual ASC").
		Find(&lista).Error
	if err != nil {
		return nil, err
	}

	matriz := make(Matriz)
	for i := range lista {
		for j := i + 1; j < len(lista); j++ {
			origem := escolas.Coordenadas{Latitude: *lista[i].Latitude, Longitude: *lista[i].Longitude}
			destino := escolas.Coordenadas{Latitude: *lista[j].Latitude, Longitude: *lista[j].Longitude}
			rota, err := s.CalcularRota(ctx, origem, destino)
			if err != nil {
				log.Printf("Matriz: %s -> %s falhou: %v", lista[i].NomeUsual, lista[j].NomeUsual, err)
				continue
			}
			if matriz[lista[i].NomeUsual] == nil {
				matriz[lista[i].NomeUsual] = make(map[string]Rota)
			}
			if matriz[lista[j].NomeUsual] == nil {
				matriz[lista[j].NomeUsual] = make(map[string]Rota)
			}
			matriz[lista[i].NomeUsual][lista[j].NomeUsual] = *rota
			matriz[lista[j].NomeUsual][lista[i].NomeUsual] = *rota
		}
	}

	if s.cache != nil {
		if body, err := json.Marshal(matriz); err == nil {
			s.cache.Set(ctx, chaveMatriz, string(body), ttlMatriz)
		}
	}
	return matriz, nil
}

// ObterMatriz devolve a matriz guardada no Redis, ou nil se nao houver.
func (s *Servico) ObterMatriz(ctx context.Context) (Matriz, error) {
	if s.cache == nil {
		return nil, nil
	}
	cached, err := s.cache.Get(ctx, chaveMatriz).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var matriz Matriz
	if err := json.Unmarshal([]byte(cached), &matriz); err != nil {
		return nil, err
	}
	return matriz, nil
}

// DistanciaNaMatriz busca a rota entre duas escolas na matriz pre-calculada.
func (m Matriz) DistanciaNaMatriz(escola1, escola2 string) (Rota, bool) {
	if linha, ok := m[escola1]; ok {
		if rota, ok := linha[escola2]; ok {
			return rota, true
		}
	}
	if linha, ok := m[escola2]; ok {
		if rota, ok := linha[escola1]; ok {
			return rota, true
		}
	}
	return Rota{}, false
}
