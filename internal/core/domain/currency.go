package domain

// Currency describes the display conventions of a supported currency.
type Currency struct {
	Code         string `json:"code"`
	Symbol       string `json:"symbol"`
	Precision    int    `json:"precision"` // Display decimal places
	ThousandsSep string `json:"thousandsSep"`
	DecimalSep   string `json:"decimalSep"`
	Name         string `json:"name"`
}
