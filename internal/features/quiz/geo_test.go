package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func find(t *testing.T, name string) Country {
	t.Helper()
	for _, c := range Catalogue {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("country %q not in catalogue", name)
	return Country{}
}

func TestDistance(t *testing.T) {
	paris, london := find(t, "France"), find(t, "United Kingdom")

	assert.InDelta(t, 343, Distance(paris, london), 5)
	assert.InDelta(t, Distance(paris, london), Distance(london, paris), 1e-9)
	assert.Zero(t, Distance(paris, paris))

	// Почти антиподы: не больше половины окружности
	nz, spain := find(t, "New Zealand"), find(t, "Spain")
	assert.LessOrEqual(t, Distance(nz, spain), 20016.0)
	assert.Greater(t, Distance(nz, spain), 19000.0)
}

func TestDistractors(t *testing.T) {
	assert.Equal(t, []string{"Amman", "Beirut", "Cairo"}, Distractors(find(t, "Israel"), Catalogue, 3))
	assert.Equal(t, []string{"Brussels", "London"}, Distractors(find(t, "France"), Catalogue, 2))
	assert.Nil(t, Distractors(find(t, "France"), Catalogue, 0))
}

func TestDistractorsTieBreakAndLimit(t *testing.T) {
	target := Country{Name: "Origin", Capital: "Zero", Lat: 0, Lon: 0}
	catalogue := []Country{
		target,
		{Name: "West", Capital: "W", Lat: 0, Lon: -1},
		{Name: "East", Capital: "E", Lat: 0, Lon: 1},
		{Name: "Far", Capital: "F", Lat: 0, Lon: 10},
	}

	// Равное расстояние: East раньше West по названию
	assert.Equal(t, []string{"E", "W"}, Distractors(target, catalogue, 2))
	// n больше, чем есть стран: возвращаем всех, кроме target
	assert.Equal(t, []string{"E", "W", "F"}, Distractors(target, catalogue, 10))
}

func TestCatalogueCapitalsUnique(t *testing.T) {
	seen := map[string]string{}
	for _, c := range Catalogue {
		prev, dup := seen[c.Capital]
		assert.False(t, dup, "%s shared by %s and %s", c.Capital, prev, c.Name)
		seen[c.Capital] = c.Name
		assert.True(t, c.Lat >= -90 && c.Lat <= 90, c.Name)
		assert.True(t, c.Lon >= -180 && c.Lon <= 180, c.Name)
	}
}
