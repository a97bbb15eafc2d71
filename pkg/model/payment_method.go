package model

type PaymentMethod struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

func PaymentMethodId(p PaymentMethod) string {
	return p.Id
}
