// Package i18n holds the user-visible message catalogs. The translation
// resource files of the original product are an external dependency; only the
// messages this service itself produces live here.
package i18n

import "strings"

// CookieName is where the language preference persists, read at startup of
// each browser session.
const CookieName = "i18nextLng"

const Default = "en"

var supported = map[string]bool{"en": true, "zh": true, "it": true}

// Supported reports whether lang is a display language this service knows.
func Supported(lang string) bool { return supported[lang] }

// Normalize maps a language tag to a supported language, stripping region
// subtags ("zh-CN" -> "zh"). Unknown tags fall back to the default.
func Normalize(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexByte(lang, '-'); i >= 0 {
		lang = lang[:i]
	}
	if Supported(lang) {
		return lang
	}
	return Default
}

// T translates key into lang, falling back to English and finally to the key
// itself so an untranslated message never renders blank.
func T(lang, key string) string {
	if m, ok := catalogs[lang]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[Default][key]; ok {
		return msg
	}
	return key
}

var catalogs = map[string]map[string]string{
	"en": {
		"common.unexpectedError":              "Something went wrong. Please try again.",
		"store.tableNotFound":                 "Table not found. Please check the code and try again.",
		"store.errorFetchingTable":            "Could not look up the table. Please try again.",
		"store.notAvailable":                  "This order type is not available at this store.",
		"store.notAvailableNoOnlinePayments":  "Not available: this store has online payments disabled.",
		"store.errorSelectOrderType":          "Please select an order type first.",
		"store.errorFetchingStore":            "Could not load the store. Please try again.",
		"cart.orderFailed":                    "Your order could not be placed. Please try again.",
		"cart.orderInProgress":                "Your order is already being processed.",
		"cart.orderSuccessPayLater":           "Order placed! Please pay at the counter when you are done.",
		"cart.orderSuccessPayNow":             "Order placed! Redirecting to payment...",
		"checkout.emailRequired":              "Please enter a valid email address.",
		"checkout.invalidDonation":            "The donation amount cannot be negative.",
		"checkout.paymentUnavailable":         "Payment could not be started. Please try again.",
		"reservation.missingFields":           "Please fill in all required fields.",
		"reservation.invalidVerificationCode": "Invalid or expired verification code.",
		"reservation.outsideHours":            "The selected time is outside the store's opening hours.",
		"reservation.codeCooldown":            "Please wait before requesting another code.",
		"reservation.errorMessage":            "The reservation could not be created. Please try again.",
		"reservation.successMessage":          "Reservation confirmed! See you soon.",
	},
	"zh": {
		"common.unexpectedError":              "出了点问题，请重试。",
		"store.tableNotFound":                 "未找到餐桌，请检查桌码后重试。",
		"store.errorFetchingTable":            "无法查询餐桌，请重试。",
		"store.notAvailable":                  "本店不支持此下单方式。",
		"store.notAvailableNoOnlinePayments":  "不可用：本店未开通在线支付。",
		"store.errorSelectOrderType":          "请先选择下单方式。",
		"store.errorFetchingStore":            "无法加载店铺，请重试。",
		"cart.orderFailed":                    "下单失败，请重试。",
		"cart.orderInProgress":                "您的订单正在处理中。",
		"cart.orderSuccessPayLater":           "下单成功！用餐结束后请到柜台付款。",
		"cart.orderSuccessPayNow":             "下单成功！正在跳转到支付页面…",
		"checkout.emailRequired":              "请输入有效的电子邮箱。",
		"checkout.invalidDonation":            "捐赠金额不能为负数。",
		"checkout.paymentUnavailable":         "无法发起支付，请重试。",
		"reservation.missingFields":           "请填写所有必填项。",
		"reservation.invalidVerificationCode": "验证码无效或已过期。",
		"reservation.outsideHours":            "所选时间不在营业时间内。",
		"reservation.codeCooldown":            "请稍后再请求新的验证码。",
		"reservation.errorMessage":            "预订失败，请重试。",
		"reservation.successMessage":          "预订成功！期待您的光临。",
	},
	"it": {
		"common.unexpectedError":              "Qualcosa è andato storto. Riprova.",
		"store.tableNotFound":                 "Tavolo non trovato. Controlla il codice e riprova.",
		"store.errorFetchingTable":            "Impossibile verificare il tavolo. Riprova.",
		"store.notAvailable":                  "Questa modalità di ordine non è disponibile in questo locale.",
		"store.notAvailableNoOnlinePayments":  "Non disponibile: i pagamenti online sono disabilitati.",
		"store.errorSelectOrderType":          "Seleziona prima una modalità di ordine.",
		"store.errorFetchingStore":            "Impossibile caricare il locale. Riprova.",
		"cart.orderFailed":                    "Impossibile inviare l'ordine. Riprova.",
		"cart.orderInProgress":                "Il tuo ordine è già in elaborazione.",
		"cart.orderSuccessPayLater":           "Ordine inviato! Paga alla cassa quando hai finito.",
		"cart.orderSuccessPayNow":             "Ordine inviato! Reindirizzamento al pagamento...",
		"checkout.emailRequired":              "Inserisci un indirizzo email valido.",
		"checkout.invalidDonation":            "L'importo della donazione non può essere negativo.",
		"checkout.paymentUnavailable":         "Impossibile avviare il pagamento. Riprova.",
		"reservation.missingFields":           "Compila tutti i campi obbligatori.",
		"reservation.invalidVerificationCode": "Codice di verifica non valido o scaduto.",
		"reservation.outsideHours":            "L'orario selezionato è fuori dall'orario di apertura.",
		"reservation.codeCooldown":            "Attendi prima di richiedere un altro codice.",
		"reservation.errorMessage":            "Impossibile creare la prenotazione. Riprova.",
		"reservation.successMessage":          "Prenotazione confermata! A presto.",
	},
}
