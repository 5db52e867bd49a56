// Package callbacks описывает данные inline-кнопок бота.
//
// Токен кнопки разбирается в Action один раз на входе в роутер, дальше
// обработчики работают только с Kind и полями Action.
package callbacks

import (
	"strings"

	"numbers-bot/internal/stories/catalog"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindService
	KindCountry
	KindDisabled
	KindStatsRefresh
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "service"
	case KindCountry:
		return "country"
	case KindDisabled:
		return "disabled"
	case KindStatsRefresh:
		return "stats_refresh"
	default:
		return "unknown"
	}
}

const (
	servicePrefix = "svc_"
	countryPrefix = "country_"
	disabledToken = "buy_disabled"
	statsToken    = "stats_refresh"
)

// Action разобранный callback. Поля заполнены только для своего Kind.
type Action struct {
	Kind      Kind
	Service   catalog.ServiceCode
	CountryID string
}

func Service(code catalog.ServiceCode) Action {
	return Action{Kind: KindService, Service: code}
}

func Country(id string) Action {
	return Action{Kind: KindCountry, CountryID: id}
}

func Disabled() Action {
	return Action{Kind: KindDisabled}
}

// StatsRefresh кнопка обновления статистики у админа.
func StatsRefresh() Action {
	return Action{Kind: KindStatsRefresh}
}

// Parse никогда не падает: всё нераспознанное становится KindUnknown.
func Parse(token string) Action {
	switch {
	case token == disabledToken:
		return Disabled()
	case token == statsToken:
		return StatsRefresh()
	case strings.HasPrefix(token, servicePrefix):
		code, ok := catalog.ParseServiceCode(strings.TrimPrefix(token, servicePrefix))
		if !ok {
			return Action{}
		}
		return Service(code)
	case strings.HasPrefix(token, countryPrefix):
		id := strings.TrimPrefix(token, countryPrefix)
		if id == "" {
			return Action{}
		}
		return Country(id)
	default:
		return Action{}
	}
}

// Token кодирует действие обратно в callback data. Для KindUnknown пустая строка.
func (a Action) Token() string {
	switch a.Kind {
	case KindService:
		return servicePrefix + string(a.Service)
	case KindCountry:
		return countryPrefix + a.CountryID
	case KindDisabled:
		return disabledToken
	case KindStatsRefresh:
		return statsToken
	default:
		return ""
	}
}
