package models

// Paper is one physical paper size offered by the print shop.
type Paper struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	IsDefaultSize bool           `json:"isDefaultSize"`
	Variants      []PaperVariant `json:"variants"`
}

// PaperVariant is a purchasable stock (weight/finish) within a paper size.
// The snapshot is fetched once per session and never mutated by the client.
type PaperVariant struct {
	ID            string `json:"id"`
	PaperID       string `json:"paperId"`
	PaperName     string `json:"paperName"`
	VariantName   string `json:"variantName"`
	IsDefaultSize bool   `json:"isDefaultSize"`
	IsAvailable   bool   `json:"isAvailable"`
}
