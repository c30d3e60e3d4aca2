package orders

// Paper and PaperVariant mirror the wire format of GET /opts/papers.
type Paper struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	IsDefaultSize bool           `json:"isDefaultSize"`
	Variants      []PaperVariant `json:"variants"`
}

type PaperVariant struct {
	ID            string `json:"id"`
	PaperID       string `json:"paperId"`
	PaperName     string `json:"paperName"`
	VariantName   string `json:"variantName"`
	IsDefaultSize bool   `json:"isDefaultSize"`
	IsAvailable   bool   `json:"isAvailable"`
}

// Papers returns the built-in paper catalog. The development backend has no
// shop database; the snapshot below covers the sizes and stocks the client
// needs to exercise its flows.
func Papers() []Paper {
	return []Paper{
		{
			ID:            "a4",
			Name:          "A4",
			IsDefaultSize: true,
			Variants: []PaperVariant{
				{ID: "a4-80", PaperID: "a4", PaperName: "A4", VariantName: "80 g/m²", IsDefaultSize: true, IsAvailable: true},
				{ID: "a4-120", PaperID: "a4", PaperName: "A4", VariantName: "120 g/m²", IsDefaultSize: true, IsAvailable: true},
				{ID: "a4-glossy", PaperID: "a4", PaperName: "A4", VariantName: "Glossy 200 g/m²", IsDefaultSize: true, IsAvailable: false},
			},
		},
		{
			ID:   "a3",
			Name: "A3",
			Variants: []PaperVariant{
				{ID: "a3-80", PaperID: "a3", PaperName: "A3", VariantName: "80 g/m²", IsAvailable: true},
				{ID: "a3-120", PaperID: "a3", PaperName: "A3", VariantName: "120 g/m²", IsAvailable: true},
			},
		},
		{
			ID:   "a5",
			Name: "A5",
			Variants: []PaperVariant{
				{ID: "a5-80", PaperID: "a5", PaperName: "A5", VariantName: "80 g/m²", IsAvailable: true},
			},
		},
	}
}
