package buynumber

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/flows"
	"numbers-bot/internal/telegram/presenter"
	"numbers-bot/internal/telegram/states"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}

	stateManager interface {
		SetState(userID int64, state states.State, data any)
		GetBuyNumberData(userID int64) (*flows.BuyNumberFlowData, error)
	}

	catalogService interface {
		LoadCatalog(ctx context.Context, service catalog.ServiceCode) (*catalog.Snapshot, error)
	}

	catalogPresenter interface {
		BuildCatalogKeyboard(countries []catalog.Country, prices catalog.PriceList, service catalog.ServiceCode) presenter.ButtonGrid
	}

	lookupRecorder interface {
		Record(ctx context.Context, telegramID int64, service catalog.ServiceCode, countriesShown int, failed bool) error
	}

	localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}
)
