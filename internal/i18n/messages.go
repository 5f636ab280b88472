// Package i18n holds the localized user-facing message catalog. Polish is the
// product's primary language; English is served to everyone else.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	LocalePolish  = "pl"
	LocaleEnglish = "en"
)

var supported = []language.Tag{
	language.Polish, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

// Negotiate picks a supported locale from an Accept-Language header value.
func Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LocalePolish
	}
	_, idx, _ := matcher.Match(tags...)
	if supported[idx] == language.English {
		return LocaleEnglish
	}
	return LocalePolish
}

// Normalize folds an explicit locale hint onto a supported locale.
func Normalize(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return LocalePolish
	}
	_, idx, _ := matcher.Match(tag)
	if supported[idx] == language.English {
		return LocaleEnglish
	}
	return LocalePolish
}

// T renders a catalog message for the locale. Unknown keys fall back to the
// key itself so a missing translation is visible, not fatal.
func T(locale, key string, args ...any) string {
	table, ok := messages[locale]
	if !ok {
		table = messages[LocalePolish]
	}
	tmpl, ok := table[key]
	if !ok {
		if tmpl, ok = messages[LocalePolish][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

var messages = map[string]map[string]string{
	LocalePolish: {
		"idea_required":          "Wpisz najpierw swój pomysł na obraz.",
		"subject_image_required": "Ta operacja wymaga przesłania zdjęcia referencyjnego.",
		"style_image_required":   "Ta operacja wymaga przesłania obrazu ze stylem.",
		"aspect_custom_invalid":  "Własne wymiary muszą być dodatnimi liczbami całkowitymi.",
		"edit_draft_required":    "Edytowany prompt nie może być pusty.",
		"wrong_step":             "Ta akcja nie jest dostępna na tym etapie.",
		"question_unknown":       "Nie znaleziono takiego pytania.",

		"upload_format": "Nieobsługiwany format pliku. Dozwolone są JPEG, PNG i WEBP.",
		"upload_size":   "Plik jest za duży. Maksymalny rozmiar to 5 MB.",

		"read_failed": "Nie udało się odczytać obrazu. Spróbuj ponownie.",

		"generation_failed_questions": "Nie udało się wygenerować pytań. Spróbuj ponownie.",
		"generation_failed_enhance":   "Nie udało się wygenerować ulepszonego promptu. Spróbuj ponownie.",
		"generation_failed_describe":  "Nie udało się opisać obrazu. Spróbuj ponownie.",
		"generation_failed_magic":     "Nie udało się wygenerować magicznego promptu. Spróbuj ponownie.",
		"generation_failed_copy":      "Nie udało się wygenerować promptu kopiującego obraz. Spróbuj ponownie.",
		"generation_failed_style":     "Nie udało się wygenerować promptu ze stylem. Spróbuj ponownie.",
		"generation_failed_refine":    "Nie udało się dopracować promptu. Spróbuj ponownie.",
		"questions_count_mismatch":    "Model zwrócił nieprawidłową liczbę pytań: oczekiwano %d, otrzymano %d.",

		"config_missing_key": "Usługa generowania jest niedostępna: brak klucza API.",
		"busy_generating":    "Poczekaj na zakończenie trwającego generowania.",
		"session_not_found":  "Sesja wygasła lub nie istnieje.",
		"bad_request":        "Nieprawidłowe żądanie.",
		"internal":           "Wystąpił nieoczekiwany błąd.",
	},
	LocaleEnglish: {
		"idea_required":          "Enter your image idea first.",
		"subject_image_required": "This operation requires an uploaded reference image.",
		"style_image_required":   "This operation requires an uploaded style image.",
		"aspect_custom_invalid":  "Custom dimensions must be positive integers.",
		"edit_draft_required":    "The edited prompt cannot be empty.",
		"wrong_step":             "This action is not available at this step.",
		"question_unknown":       "No such question.",

		"upload_format": "Unsupported file format. Allowed types are JPEG, PNG and WEBP.",
		"upload_size":   "File is too large. The maximum size is 5 MB.",

		"read_failed": "Could not read the image. Please try again.",

		"generation_failed_questions": "Failed to generate questions. Please try again.",
		"generation_failed_enhance":   "Failed to generate the enhanced prompt. Please try again.",
		"generation_failed_describe":  "Failed to describe the image. Please try again.",
		"generation_failed_magic":     "Failed to generate the magic prompt. Please try again.",
		"generation_failed_copy":      "Failed to generate the copy-image prompt. Please try again.",
		"generation_failed_style":     "Failed to generate the style-influence prompt. Please try again.",
		"generation_failed_refine":    "Failed to refine the prompt. Please try again.",
		"questions_count_mismatch":    "The model returned the wrong number of questions: expected %d, got %d.",

		"config_missing_key": "Generation is unavailable: the API key is missing.",
		"busy_generating":    "Wait for the current generation to finish.",
		"session_not_found":  "The session has expired or does not exist.",
		"bad_request":        "Invalid request.",
		"internal":           "An unexpected error occurred.",
	},
}
