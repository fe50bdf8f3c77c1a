package listing

// Dimension names one filter axis.
type Dimension string

const (
	DimensionSearch       Dimension = "search"
	DimensionCategory     Dimension = "category"
	DimensionNeighborhood Dimension = "neighborhood"
	DimensionPrice        Dimension = "price"
)

// ParseDimension maps a wire name to a Dimension.
func ParseDimension(s string) (Dimension, bool) {
	switch d := Dimension(s); d {
	case DimensionSearch, DimensionCategory, DimensionNeighborhood, DimensionPrice:
		return d, true
	}
	return "", false
}

// CategoryOption describes a selectable category with a name per locale.
type CategoryOption struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
}

// Name returns the name in locale, or the id when none is known.
func (o CategoryOption) Name(locale string) string {
	if n := o.Names[locale]; n != "" {
		return n
	}
	return o.ID
}

// NeighborhoodOption describes a selectable neighborhood.
type NeighborhoodOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Chip is one active filter as shown above the results.
type Chip struct {
	Dimension Dimension `json:"dimension"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	Locked    bool      `json:"locked"`
	Removable bool      `json:"removable"`
}

// Chips lists the active category, neighborhood and price filters of s in
// that order. Locked values are flagged and not removable.
func Chips(s State, l Locked, categories []CategoryOption, neighborhoods []NeighborhoodOption, locale string) []Chip {
	chips := make([]Chip, 0, len(s.Categories)+len(s.Neighborhoods)+len(s.PriceTiers))

	for _, id := range s.Categories {
		label := id
		for _, c := range categories {
			if c.ID == id {
				label = c.Name(locale)
				break
			}
		}
		locked := l.HasCategory(id)
		chips = append(chips, Chip{Dimension: DimensionCategory, Value: id, Label: label, Locked: locked, Removable: !locked})
	}

	for _, id := range s.Neighborhoods {
		label := id
		for _, n := range neighborhoods {
			if n.ID == id && n.Name != "" {
				label = n.Name
				break
			}
		}
		locked := l.HasNeighborhood(id)
		chips = append(chips, Chip{Dimension: DimensionNeighborhood, Value: id, Label: label, Locked: locked, Removable: !locked})
	}

	for _, t := range s.PriceTiers {
		chips = append(chips, Chip{Dimension: DimensionPrice, Value: string(t), Label: string(t), Removable: true})
	}
	return chips
}
