// Package quiz — geo.go: расстояния между странами и подбор неверных вариантов.
package quiz

import (
	"math"
	"sort"
)

// earthRadiusKm — средний радиус Земли.
const earthRadiusKm = 6371.0088

// Distance — расстояние по большому кругу между столицами (км), формула гаверсинуса.
func Distance(a, b Country) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Distractors возвращает столицы n ближайших к target стран.
// Порядок детерминирован: по расстоянию, при равенстве — по названию.
// Сама target (и страны с той же столицей) в результат не попадает.
func Distractors(target Country, catalogue []Country, n int) []string {
	if n <= 0 {
		return nil
	}

	type candidate struct {
		country Country
		km      float64
	}
	candidates := make([]candidate, 0, len(catalogue))
	for _, c := range catalogue {
		if c.Name == target.Name || c.Capital == target.Capital {
			continue
		}
		candidates = append(candidates, candidate{country: c, km: Distance(target, c)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].km != candidates[j].km {
			return candidates[i].km < candidates[j].km
		}
		return candidates[i].country.Name < candidates[j].country.Name
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.country.Capital)
	}
	return out
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
