package models

// NAVRecord is a single fund price returned by the external NAV lookup
// service, normalized from the feed's wire format.
type NAVRecord struct {
	SchemeCode    string  `json:"scheme_code"`
	SchemeName    string  `json:"scheme_name,omitempty"`
	NetAssetValue float64 `json:"net_asset_value"`
	Date          string  `json:"date,omitempty"`
}
