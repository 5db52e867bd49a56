package presenter

const demoAckKey = "buy.demo_disabled"

type localizer interface {
	Get(lang, key string, params map[string]interface{}) string
}

// DemoAck текст ответа на любую кнопку каталога. Покупка отключена,
// поэтому ответ всегда один и тот же и ничего не меняет.
func DemoAck(l10n localizer, lang string) string {
	return l10n.Get(lang, demoAckKey, nil)
}
