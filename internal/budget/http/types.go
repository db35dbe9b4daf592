package http

// currencyReq is the body of POST /project/budget/currency.
type currencyReq struct {
	Year        int    `json:"year"`
	ProjectName string `json:"projectName"`
	Currency    string `json:"currency"`
}
