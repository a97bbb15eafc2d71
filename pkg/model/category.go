package model

type Category struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	IsIncome bool   `json:"isIncome"`
	// Budget is informational only, progress is always computed against a Budget record.
	Budget float64 `json:"budget"`
}

func CategoryId(c Category) string {
	return c.Id
}
