package escolas

import (
	"strings"

	"gestor-visitas/internal/models"
)

type escolaSemente struct {
	nomeOficial string
	nomeUsual   string
	latitude    float64
	longitude   float64
}

// Escolas municipais de Taubaté atendidas pelo programa. Coordenadas
// pre-carregadas para as escolas ja geocodificadas.
var escolasTaubate = []escolaSemente{
	{nomeOficial: "EMIEF Profa. Anita Ribas de Andrade", nomeUsual: "Anita Ribas"},
	{nomeOficial: "EMIEF Padre Silvino Vicente Kunz", nomeUsual: "Areião"},
	{nomeOficial: "EMIEF Dr. Avedis Victor Nahas", nomeUsual: "Avedis"},
	{nomeOficial: "EMIEF Dom Pereira de Barros", nomeUsual: "Bela Vista", latitude: -22.9423745, longitude: -45.467778},
	{nomeOficial: "EMIEF Prof. Emílio Simonetti", nomeUsual: "Bosque"},
	{nomeOficial: "EMEIEF Mário Lemos de Oliveira", nomeUsual: "Caieiras"},
	{nomeOficial: "EMEF Prefeito Guido José Gomes Miné", nomeUsual: "CECAP", latitude: -23.0342343, longitude: -45.6216388},
	{nomeOficial: "EMEF Prof. José Sant'Anna de Souza", nomeUsual: "Chácara Flórida"},
	{nomeOficial: "EMEIEF Prof. Ciniro Mathias Bueno", nomeUsual: "Chácara Ingrid"},
	{nomeOficial: "EMEF Profa. Marisa Lapido Barbosa", nomeUsual: "Chácaras Reunidas", latitude: -23.0464621, longitude: -45.5698186},
	{nomeOficial: "EMEF Cônego José Luiz Pereira Ribeiro", nomeUsual: "Cônego"},
	{nomeOficial: "EMEIEF Profa. Ana Silvia Paolichi Ferro", nomeUsual: "Continental", latitude: -23.0581829, longitude: -45.5785027},
	{nomeOficial: "EMEF Coronel José Benedito Marcondes de Mattos", nomeUsual: "Coronel", latitude: -23.0293665, longitude: -45.5420747},
	{nomeOficial: "EMEF Dr. Quirino", nomeUsual: "Dr. Quirino"},
	{nomeOficial: "EMEF Prof. Ernani Giannico", nomeUsual: "Ernani-Giannico"},
	{nomeOficial: "EMIEF Prof. Ernesto de Oliveira Filho", nomeUsual: "Ernesto"},
	{nomeOficial: "EMEFM Vereador Joaquim França", nomeUsual: "Esplanada I"},
	{nomeOficial: "EMIEF Prof. Dr. João Baptista Ortiz Monteiro", nomeUsual: "Esplanada II"},
	{nomeOficial: "EMEF Monsenhor Evaristo Campista César", nomeUsual: "Evaristo"},
	{nomeOficial: "EMEFM Prof. José Ezequiel de Souza", nomeUsual: "Ezequiel", latitude: -23.0354888, longitude: -45.5616998},
	{nomeOficial: "EMEF Prof. Antônio Carlos Ribas Branco", nomeUsual: "Fonte I"},
	{nomeOficial: "EMIEF Vereador Mário Monteiro dos Santos", nomeUsual: "Gurilândia"},
	{nomeOficial: "EMEF Hildebrando Rocha", nomeUsual: "Hildebrando"},
	{nomeOficial: "EMEIEF Cônego Benedito Augusto Corrêa", nomeUsual: "Itaim", latitude: -23.0209839, longitude: -45.5205934},
	{nomeOficial: "EMEIEF Profa. Simone dos Santos", nomeUsual: "Jaboticabeiras", latitude: -23.0549845, longitude: -45.5974914},
	{nomeOficial: "EMEF Aldeeira Sophia de Faria Martins Ferreira", nomeUsual: "Jardim dos Estados"},
	{nomeOficial: "EMEF Profa. Judith Campista César", nomeUsual: "Judith"},
	{nomeOficial: "EMEF Prof. Juvenal da Costa de Silva", nomeUsual: "Juvenal", latitude: -23.0404568, longitude: -45.5860801},
	{nomeOficial: "EMEF Prof. Luiz Augusto da Silva", nomeUsual: "Luiz Augusto"},
	{nomeOficial: "EMEEEIF Madre Cecília", nomeUsual: "Madre Cecília"},
	{nomeOficial: "EMEIEFM Emílio Amadei Beringhs", nomeUsual: "Marlene Miranda", latitude: -23.0730834, longitude: -45.5426588},
	{nomeOficial: "EMEIEFM Prof. José Marcondes de Moura", nomeUsual: "Monjolinho"},
	{nomeOficial: "EMEF Prof. Luiz Ribeiro Muniz", nomeUsual: "Monte Belo", latitude: -23.0449539, longitude: -45.5525356},
	{nomeOficial: "EMEF Prof. Claudio Cesar Guilherme de Toledo", nomeUsual: "Mourisco"},
	{nomeOficial: "EMIEF Marta Miranda Del Rei", nomeUsual: "Novo Horizonte", latitude: -23.0338188, longitude: -45.6184422},
	{nomeOficial: "EMEF Pe. Prof. Dr. Ramon de Oliveira Ortiz", nomeUsual: "Ramon", latitude: -23.0634346, longitude: -45.5745428},
	{nomeOficial: "EMEIEF Antônio de Angelis", nomeUsual: "Registro"},
	{nomeOficial: "EMEF Diácono José Ângelo Victal", nomeUsual: "Santa Luzia", latitude: -23.0377162, longitude: -45.5657432},
	{nomeOficial: "EMEIEF Braz Silvério Lemes", nomeUsual: "Santa Luzia Rural", latitude: -23.1665132, longitude: -45.4619236},
	{nomeOficial: "EMEIEF Profa. Docelina Silva de Campos Coelho", nomeUsual: "Santa Tereza", latitude: -23.055604, longitude: -45.6291449},
	{nomeOficial: "EMEF Prof. Lafayette Rodrigues Pereira", nomeUsual: "São Gonçalo", latitude: -23.0516025, longitude: -45.5877304},
	{nomeOficial: "EMEFM Anna dos Reis Signorini", nomeUsual: "SEDES"},
	{nomeOficial: "EMEIEF Sargento Everton Vendramel de Castro Chagas", nomeUsual: "Sítio II"},
	{nomeOficial: "EMEF Prof. Walther de Oliveira", nomeUsual: "Santa Maria"},
	{nomeOficial: "UEI Profa. Lúcia Helena Moraes dos Santos", nomeUsual: "UEI CETI"},
	{nomeOficial: "UEI Prof. Laércio Antônio Soares dos Santos", nomeUsual: "UEI Planalto"},
	{nomeOficial: "EMEF Vereador Pedro Grandchain", nomeUsual: "FONTE II", latitude: -23.0433222, longitude: -45.5444171},
	{nomeOficial: "UEI Profa. Thereza Villarta Gonçalves", nomeUsual: "UEI Três Marias"},
	{nomeOficial: "EMEIEF Vereadora Judith Mazella Moura", nomeUsual: "Vila Caetano", latitude: -23.0127312, longitude: -45.6833895},
	{nomeOficial: "EMEF Dom José Antônio do Couto", nomeUsual: "Vila J'min"},
	{nomeOficial: "EMEIEF Tomé Portes Del Rei", nomeUsual: "Vila Velha", latitude: -23.0156712, longitude: -45.5698466},
	{nomeOficial: "EMEF Walter Thaumaturgo", nomeUsual: "Walter"},
}

// Escolas do Bloco 1, por nome usual.
var bloco1 = []string{
	"Bela Vista", "CECAP", "Chácaras Reunidas", "Continental", "Coronel",
	"Ezequiel", "Fonte II", "Itaim", "Jaboticabeiras", "Juvenal",
	"Marlene Miranda", "Monte Belo", "Novo Horizonte", "Ramon", "Santa Luzia",
	"Santa Luzia Rural", "Santa Tereza", "São Gonçalo", "Vila Velha", "Vila Caetano",
}

func pertenceAoBloco1(nomeUsual string) bool {
	nome := strings.ToLower(strings.TrimSpace(nomeUsual))
	for _, b := range bloco1 {
		if strings.ToLower(strings.TrimSpace(b)) == nome {
			return true
		}
	}
	return false
}

// Semear carrega o cadastro inicial quando a tabela esta vazia.
func (s *Servico) Semear() error {
	var total int64
	if err := s.db.Model(&models.Escola{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	escolas := make([]models.Escola, 0, len(escolasTaubate))
	for _, sem := range escolasTaubate {
		escola := models.Escola{
			NomeOficial: sem.nomeOficial,
			NomeUsual:   sem.nomeUsual,
			Bloco1:      pertenceAoBloco1(sem.nomeUsual),
			Ativo:       true,
		}
		if sem.latitude != 0 || sem.longitude != 0 {
			lat, lng := sem.latitude, sem.longitude
			escola.Latitude = &lat
			escola.Longitude = &lng
		}
		escolas = append(escolas, escola)
	}
	return s.db.Create(&escolas).Error
}
