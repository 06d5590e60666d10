package models

// Asset is one hardware record imported from a spreadsheet. Values are
// keyed by the schema field key and are stored exactly as entered.
type Asset map[string]string

// Get returns the value of a field, or "" when the asset has none.
func (a Asset) Get(key string) string {
	return a[key]
}
