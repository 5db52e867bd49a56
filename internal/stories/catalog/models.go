package catalog

// ServiceCode код сервиса в API цен.
type ServiceCode string

const (
	ServiceWhatsApp ServiceCode = "wa"
	ServiceTelegram ServiceCode = "tg"
)

// ServiceInfo описывает сервис, для которого можно посмотреть номера.
type ServiceInfo struct {
	Code  ServiceCode
	Title string
}

// Services возвращает закрытый набор поддерживаемых сервисов в порядке показа.
func Services() []ServiceInfo {
	return []ServiceInfo{
		{Code: ServiceWhatsApp, Title: "WhatsApp"},
		{Code: ServiceTelegram, Title: "Telegram"},
	}
}

// ParseServiceCode принимает только коды из Services.
func ParseServiceCode(s string) (ServiceCode, bool) {
	for _, svc := range Services() {
		if string(svc.Code) == s {
			return svc.Code, true
		}
	}
	return "", false
}

// Country запись каталога стран в порядке ответа API.
type Country struct {
	ID      string
	Name    string
	Flag    string
	Visible bool
}

// Price цена и остаток номеров для пары (страна, сервис).
type Price struct {
	Cost  float64
	Count *int
}

// PriceList country id -> service code -> price.
type PriceList map[string]map[ServiceCode]Price

// Lookup возвращает цену сервиса в стране, если она есть в прайсе.
func (p PriceList) Lookup(countryID string, service ServiceCode) (Price, bool) {
	byService, ok := p[countryID]
	if !ok {
		return Price{}, false
	}
	price, ok := byService[service]
	return price, ok
}

// Snapshot результат одного запроса каталога и цен.
type Snapshot struct {
	Service   ServiceCode
	Countries []Country
	Prices    PriceList
}

// ByID ищет страну каталога по идентификатору.
func (s *Snapshot) ByID(id string) (Country, bool) {
	for _, c := range s.Countries {
		if c.ID == id {
			return c, true
		}
	}
	return Country{}, false
}
