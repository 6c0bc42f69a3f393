package escolas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gestor-visitas/internal/erros"
)

// Coordenadas geograficas de um ponto.
type Coordenadas struct {
	Latitude  float64
	Longitude float64
}

// Geocodificador consulta o Nominatim (OpenStreetMap) para resolver enderecos.
type Geocodificador struct {
	BaseURL   string
	UserAgent string
	http      *http.Client
}

func NovoGeocodificador() *Geocodificador {
	return &Geocodificador{
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "gestor-visitas-escolas-taubate",
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type resultadoNominatim struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocodificar resolve a consulta para coordenadas. Timeout de 10s com uma
// nova tentativa; falha vira ErrServicoExterno, nunca bloqueia indefinidamente.
// Devolve (nil, nil) quando o servico responde mas nao encontra nada.
func (g *Geocodificador) Geocodificar(ctx context.Context, consulta string) (*Coordenadas, error) {
	endereco := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		g.BaseURL, url.QueryEscape(consulta))

	var ultimoErr error
	for tentativa := 0; tentativa < 2; tentativa++ {
		if tentativa > 0 {
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", erros.ErrServicoExterno, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endereco, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", g.UserAgent)

		resp, err := g.http.Do(req)
		if err != nil {
			ultimoErr = err
			continue
		}

		var resultados []resultadoNominatim
		err = json.NewDecoder(resp.Body).Decode(&resultados)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			ultimoErr = fmt.Errorf("resposta invalida do Nominatim (status %d)", resp.StatusCode)
			continue
		}

		if len(resultados) == 0 {
			return nil, nil
		}
		lat, errLat := strconv.ParseFloat(resultados[0].Lat, 64)
		lon, errLon := strconv.ParseFloat(resultados[0].Lon, 64)
		if errLat != nil || errLon != nil {
			return nil, nil
		}
		return &Coordenadas{Latitude: lat, Longitude: lon}, nil
	}

	return nil, fmt.Errorf("%w: %v", erros.ErrServicoExterno, ultimoErr)
}
