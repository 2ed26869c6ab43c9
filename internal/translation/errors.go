package translation

import "errors"

// Common errors returned by translators.
var (
	// ErrTranslationFailed is returned when a translation fails for any general reason.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrInvalidResponse is returned when the service response has no usable text.
	ErrInvalidResponse = errors.New("invalid response from translation service")

	// ErrContentBlocked is returned when the service refuses the text.
	ErrContentBlocked = errors.New("content blocked by translation service")

	// ErrInvalidConfig is returned when a translator is constructed with bad settings.
	ErrInvalidConfig = errors.New("invalid translator configuration")

	// ErrEmptyText is returned when asked to translate blank text.
	ErrEmptyText = errors.New("text to translate cannot be empty")
)
