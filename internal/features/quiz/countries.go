// Package quiz — countries.go содержит встроенный справочник стран.
// Координаты — столицы, их же используем для поиска соседей.
package quiz

// Country — страна, её столица и координаты столицы (градусы).
type Country struct {
	Name    string
	Capital string
	Lat     float64
	Lon     float64
}

// Catalogue — справочник для вопросов "столица страны X".
// Столицы уникальны: по ним сверяются ответы.
var Catalogue = []Country{
	// Европа
	{"Albania", "Tirana", 41.33, 19.82},
	{"Austria", "Vienna", 48.21, 16.37},
	{"Belgium", "Brussels", 50.85, 4.35},
	{"Bulgaria", "Sofia", 42.70, 23.32},
	{"Croatia", "Zagreb", 45.81, 15.98},
	{"Czechia", "Prague", 50.08, 14.44},
	{"Denmark", "Copenhagen", 55.68, 12.57},
	{"Estonia", "Tallinn", 59.44, 24.75},
	{"Finland", "Helsinki", 60.17, 24.94},
	{"France", "Paris", 48.86, 2.35},
	{"Germany", "Berlin", 52.52, 13.40},
	{"Greece", "Athens", 37.98, 23.73},
	{"Hungary", "Budapest", 47.50, 19.04},
	{"Iceland", "Reykjavik", 64.15, -21.94},
	{"Ireland", "Dublin", 53.35, -6.26},
	{"Italy", "Rome", 41.90, 12.50},
	{"Latvia", "Riga", 56.95, 24.11},
	{"Lithuania", "Vilnius", 54.69, 25.28},
	{"Netherlands", "Amsterdam", 52.37, 4.90},
	{"Norway", "Oslo", 59.91, 10.75},
	{"Poland", "Warsaw", 52.23, 21.01},
	{"Portugal", "Lisbon", 38.72, -9.14},
	{"Romania", "Bucharest", 44.43, 26.10},
	{"Serbia", "Belgrade", 44.79, 20.45},
	{"Slovakia", "Bratislava", 48.15, 17.11},
	{"Slovenia", "Ljubljana", 46.06, 14.51},
	{"Spain", "Madrid", 40.42, -3.70},
	{"Sweden", "Stockholm", 59.33, 18.07},
	{"Switzerland", "Bern", 46.95, 7.45},
	{"Ukraine", "Kyiv", 50.45, 30.52},
	{"United Kingdom", "London", 51.51, -0.13},

	// Ближний Восток и Азия
	{"China", "Beijing", 39.90, 116.41},
	{"Egypt", "Cairo", 30.04, 31.24},
	{"India", "New Delhi", 28.61, 77.21},
	{"Indonesia", "Jakarta", -6.21, 106.85},
	{"Iran", "Tehran", 35.69, 51.39},
	{"Iraq", "Baghdad", 33.31, 44.36},
	{"Israel", "Jerusalem", 31.77, 35.21},
	{"Japan", "Tokyo", 35.68, 139.69},
	{"Jordan", "Amman", 31.95, 35.93},
	{"Kazakhstan", "Astana", 51.17, 71.45},
	{"Lebanon", "Beirut", 33.89, 35.50},
	{"Mongolia", "Ulaanbaatar", 47.89, 106.91},
	{"Nepal", "Kathmandu", 27.72, 85.32},
	{"Pakistan", "Islamabad", 33.68, 73.05},
	{"Philippines", "Manila", 14.60, 120.98},
	{"Saudi Arabia", "Riyadh", 24.71, 46.68},
	{"South Korea", "Seoul", 37.57, 126.98},
	{"Thailand", "Bangkok", 13.76, 100.50},
	{"Turkey", "Ankara", 39.93, 32.86},
	{"Vietnam", "Hanoi", 21.03, 105.85},

	// Африка
	{"Ethiopia", "Addis Ababa", 9.03, 38.74},
	{"Ghana", "Accra", 5.60, -0.19},
	{"Kenya", "Nairobi", -1.29, 36.82},
	{"Morocco", "Rabat", 34.02, -6.83},
	{"Nigeria", "Abuja", 9.08, 7.40},
	{"Senegal", "Dakar", 14.72, -17.47},
	{"Tanzania", "Dodoma", -6.16, 35.75},
	{"Tunisia", "Tunis", 36.81, 10.18},

	// Америка и Океания
	{"Argentina", "Buenos Aires", -34.60, -58.38},
	{"Australia", "Canberra", -35.28, 149.13},
	{"Brazil", "Brasilia", -15.79, -47.88},
	{"Canada", "Ottawa", 45.42, -75.70},
	{"Chile", "Santiago", -33.45, -70.67},
	{"Colombia", "Bogota", 4.71, -74.07},
	{"Cuba", "Havana", 23.11, -82.37},
	{"Mexico", "Mexico City", 19.43, -99.13},
	{"New Zealand", "Wellington", -41.29, 174.78},
	{"Peru", "Lima", -12.05, -77.04},
	{"United States", "Washington", 38.91, -77.04},
	{"Uruguay", "Montevideo", -34.90, -56.16},
	{"Venezuela", "Caracas", 10.48, -66.90},
}
