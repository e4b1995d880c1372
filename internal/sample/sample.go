// Package sample provides the built-in example dataset the dashboard offers
// when no file has been uploaded.
package sample

import "gastos/internal/core"

type row struct {
	date, category, description string
	cents                       int64
}

var rows = []row{
	{"2024-01-01", "Comida", "Desayuno", 45000},
	{"2024-01-02", "Transporte", "Taxi", 90000},
	{"2024-01-05", "Comida", "Almuerzo", 120000},
	{"2024-01-10", "Entretenimiento", "Cine", 80000},
	{"2024-01-11", "Suscripciones", "Spotify", 49900},
	{"2024-02-02", "Comida", "Cena", 160000},
	{"2024-02-10", "Transporte", "Colectivo", 20000},
	{"2024-03-01", "Hogar", "Super", 550000},
	{"2024-03-15", "Salud", "Farmacia", 120000},
	{"2024-03-20", "Comida", "Cena Amigos", 300000},
}

// Records returns a fresh copy of the sample dataset.
func Records() []core.Record {
	out := make([]core.Record, 0, len(rows))
	for _, r := range rows {
		d, err := core.ParseDate(r.date)
		if err != nil {
			panic("sample: bad date " + r.date)
		}
		out = append(out, core.Record{
			Date:        d,
			Category:    r.category,
			Description: r.description,
			Amount:      core.Money{Cents: r.cents},
		})
	}
	return out
}
