// Package dto defines the HTTP request and response shapes of the prices feature.
package dto

// DataQuery holds the query parameters of GET /data.
type DataQuery struct {
	Rows *int `form:"rows" binding:"omitempty,min=0"` // Maximum number of rows to render
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PriceRow is one rendered table row. Numbers are preformatted in plain decimal notation.
type PriceRow struct {
	Date   string
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}
