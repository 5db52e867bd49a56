package presenter

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/callbacks"
)

const (
	columns              = 2
	defaultDisabledLabel = "🛒 Buy number"
)

type SortMode string

const (
	SortCatalog SortMode = "catalog"
	SortPrice   SortMode = "price"
	SortName    SortMode = "name"
)

// Catalog собирает клавиатуру стран из каталога и прайса.
type Catalog struct {
	allowList     catalog.AllowList
	sort          SortMode
	disabledLabel string
}

type Option func(*Catalog)

// WithAllowList включает фильтр по ручному списку стран.
func WithAllowList(a catalog.AllowList) Option {
	return func(c *Catalog) {
		c.allowList = a
	}
}

// WithSort меняет порядок кнопок. По умолчанию порядок каталога.
func WithSort(mode SortMode) Option {
	return func(c *Catalog) {
		c.sort = mode
	}
}

func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		sort:          SortCatalog,
		disabledLabel: defaultDisabledLabel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type entry struct {
	country catalog.Country
	price   catalog.Price
}

// BuildCatalogKeyboard оставляет видимые страны, которые есть в прайсе для
// service и проходят allow-list, и раскладывает их по два в ряд.
// Последний ряд всегда одна кнопка покупки, даже если стран не осталось.
func (c *Catalog) BuildCatalogKeyboard(countries []catalog.Country, prices catalog.PriceList, service catalog.ServiceCode) ButtonGrid {
	entries := make([]entry, 0, len(countries))
	for _, country := range countries {
		if !country.Visible {
			continue
		}
		price, ok := prices.Lookup(country.ID, service)
		if !ok {
			continue
		}
		if !c.allowList.Allows(country.ID) {
			continue
		}
		entries = append(entries, entry{
			country: c.allowList.Decorate(country),
			price:   price,
		})
	}

	c.sortEntries(entries)

	buttons := lo.Map(entries, func(e entry, _ int) Button {
		return Button{
			Label:  FormatLabel(e.country, e.price),
			Action: callbacks.Country(e.country.ID),
		}
	})

	grid := make(ButtonGrid, 0, len(buttons)/columns+2)
	for _, row := range lo.Chunk(buttons, columns) {
		grid = append(grid, row)
	}

	return append(grid, []Button{{Label: c.disabledLabel, Action: callbacks.Disabled()}})
}

func (c *Catalog) sortEntries(entries []entry) {
	switch c.sort {
	case SortPrice:
		slices.SortStableFunc(entries, func(a, b entry) int {
			return cmp.Compare(a.price.Cost, b.price.Cost)
		})
	case SortName:
		slices.SortStableFunc(entries, func(a, b entry) int {
			return strings.Compare(strings.ToLower(a.country.Name), strings.ToLower(b.country.Name))
		})
	}
}

// FormatLabel "🇷🇺 Russia — $0.5 (10)". Флаг и остаток только если известны.
func FormatLabel(country catalog.Country, price catalog.Price) string {
	var b strings.Builder
	if country.Flag != "" {
		b.WriteString(country.Flag)
		b.WriteString(" ")
	}
	b.WriteString(country.Name)
	b.WriteString(" — $")
	b.WriteString(strconv.FormatFloat(price.Cost, 'f', -1, 64))
	if price.Count != nil {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(*price.Count))
		b.WriteString(")")
	}
	return b.String()
}

// ServiceKeyboard кнопки выбора сервиса в один ряд.
func ServiceKeyboard() ButtonGrid {
	row := lo.Map(catalog.Services(), func(s catalog.ServiceInfo, _ int) Button {
		return Button{Label: s.Title, Action: callbacks.Service(s.Code)}
	})
	return ButtonGrid{row}
}
