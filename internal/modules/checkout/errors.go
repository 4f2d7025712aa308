package checkout

import "errors"

var (
	errNotSelected  = errors.New("checkout: order type not selected")
	errPayOnlineOff = errors.New("checkout: online payments disabled for store")
	errBadEmail     = errors.New("checkout: missing or invalid email")
	errBadDonation  = errors.New("checkout: negative donation amount")
	errNoToken      = errors.New("checkout: missing verification token")
)
