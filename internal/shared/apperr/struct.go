package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // user-visible message, or an i18n message key
	Fields    map[string]string // per-field validation errors (optional)
	Err       error             // internal cause, for logs only
}
