package flows

import "numbers-bot/internal/stories/catalog"

// BuyNumberFlowData - data for browsing number prices
type BuyNumberFlowData struct {
	Service   catalog.ServiceCode // пусто пока сервис не выбран
	MessageID *int                // сообщение с клавиатурой, которое редактируем
	Language  string
}
