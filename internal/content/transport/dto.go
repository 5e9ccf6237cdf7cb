package transport

// ContentResponse is the full dictionary for one language.
type ContentResponse struct {
	Lang       string                       `json:"lang"`
	Dir        string                       `json:"dir"`
	Dictionary map[string]map[string]string `json:"dictionary"`
}

// TextResponse is a single resolved key.
type TextResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Lang  string `json:"lang"`
	Dir   string `json:"dir"`
}

// SetLanguageRequest selects a language. An empty Lang toggles.
type SetLanguageRequest struct {
	Lang string `json:"lang" validate:"omitempty,oneof=en ar"`
}

// LanguageResponse reports the active language after a change.
type LanguageResponse struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}
