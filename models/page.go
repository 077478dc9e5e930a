package models

// Page carries skip/limit navigation offsets. Limit is the number of items
// actually returned, not the requested page size.
type Page struct {
	Next     int `json:"next"`
	Limit    int `json:"limit"`
	Previous int `json:"previous"`
}
