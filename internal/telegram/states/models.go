package states

type State string

const (
	StateNone State = "none"
)

// ubn -> user buy number
const (
	UserBuyNumberWaitService  State = "ubn_wt_service"
	UserBuyNumberCatalogShown State = "ubn_catalog_shown"
)
