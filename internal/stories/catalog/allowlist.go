package catalog

import "slices"

// CuratedCountry страна из ручного списка: своё имя и флаг для кнопки.
type CuratedCountry struct {
	ID   string
	Name string
	Flag string
}

var curatedCountries = []CuratedCountry{
	{ID: "0", Name: "Russia", Flag: "🇷🇺"},
	{ID: "2", Name: "Kazakhstan", Flag: "🇰🇿"},
	{ID: "6", Name: "Indonesia", Flag: "🇮🇩"},
	{ID: "16", Name: "United Kingdom", Flag: "🇬🇧"},
	{ID: "22", Name: "India", Flag: "🇮🇳"},
	{ID: "43", Name: "Germany", Flag: "🇩🇪"},
	{ID: "62", Name: "Turkey", Flag: "🇹🇷"},
	{ID: "187", Name: "USA", Flag: "🇺🇸"},
}

// AllowList набор стран, которые разрешено показывать. Нулевое значение пропускает всё.
type AllowList struct {
	entries map[string]CuratedCountry
}

// DefaultAllowList ручной список стран. Пустой ids оставляет его целиком,
// иначе остаются только перечисленные id (неизвестные id добавляются без имени и флага).
func DefaultAllowList(ids []string) AllowList {
	entries := make(map[string]CuratedCountry, len(curatedCountries))
	for _, c := range curatedCountries {
		if len(ids) > 0 && !slices.Contains(ids, c.ID) {
			continue
		}
		entries[c.ID] = c
	}
	for _, id := range ids {
		if _, ok := entries[id]; !ok {
			entries[id] = CuratedCountry{ID: id}
		}
	}
	return AllowList{entries: entries}
}

// NewAllowList собирает список из произвольных записей.
func NewAllowList(countries ...CuratedCountry) AllowList {
	entries := make(map[string]CuratedCountry, len(countries))
	for _, c := range countries {
		entries[c.ID] = c
	}
	return AllowList{entries: entries}
}

// Enabled false для нулевого значения.
func (a AllowList) Enabled() bool {
	return a.entries != nil
}

// Allows сообщает, можно ли показывать страну.
func (a AllowList) Allows(countryID string) bool {
	if !a.Enabled() {
		return true
	}
	_, ok := a.entries[countryID]
	return ok
}

// Decorate подменяет имя и флаг страны значениями из списка, если они заданы.
func (a AllowList) Decorate(c Country) Country {
	curated, ok := a.entries[c.ID]
	if !ok {
		return c
	}
	if curated.Name != "" {
		c.Name = curated.Name
	}
	if curated.Flag != "" {
		c.Flag = curated.Flag
	}
	return c
}
