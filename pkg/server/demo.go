package server

import (
	"fmt"
	"strings"

	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/rand"
)

type ngo struct {
	name, slug, city, uf string
}

var demoNGOs = []ngo{
	{"APAD", "apad", "Rio do Sul", "SC"},
	{"Patas Amigas", "patasamigas", "Curitiba", "PR"},
	{"Lar dos Bichos", "lardosbichos", "Belo Horizonte", "MG"},
	{"SOS Vira-Lata", "sosviralata", "Recife", "PE"},
	{"Abrigo Esperança", "abrigoesperanca", "Porto Alegre", "RS"},
}

var demoCases = []string{
	"Cadelinha atropelada",
	"Gato com fratura na pata",
	"Filhotes abandonados",
	"Cavalo resgatado de maus-tratos",
	"Castração coletiva",
	"Ração para o inverno",
	"Cirurgia de catarata",
}

// DemoIncidents builds n incidents with sequential integer IDs. The same seed
// always gives the same list. A negative n gives an empty list.
func DemoIncidents(n int, seed int64) []incidents.Incident {
	n = max(n, 0)
	g := rand.New(seed)
	l := make([]incidents.Incident, 0, n)

	for i := 1; i <= n; i++ {
		o := demoNGOs[g.Between(0, len(demoNGOs)-1)]
		title := g.Pick(demoCases)

		l = append(l, incidents.Incident{
			ID:          incidents.ID(fmt.Sprint(i)),
			Name:        o.name,
			Title:       title,
			Value:       float64(g.Between(20, 2000)),
			Description: fmt.Sprintf("%s precisa de ajuda: %s. Qualquer valor ajuda!", o.name, strings.ToLower(title)),
			Email:       fmt.Sprintf("contato@%s.org", o.slug),
			WhatsApp:    "55" + g.Digits(11),
			City:        o.city,
			UF:          o.uf,
		})
	}

	return l
}
