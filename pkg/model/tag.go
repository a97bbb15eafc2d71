package model

type Tag struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func TagId(t Tag) string {
	return t.Id
}
