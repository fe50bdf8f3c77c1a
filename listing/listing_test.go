package listing

// place is the entity used throughout the package tests.
type place struct {
	name string
	desc map[string]string
	cats []string
	hood string
	tier PriceTier
}

func (p place) CategoryIDs() []string  { return p.cats }
func (p place) NeighborhoodID() string { return p.hood }
func (p place) PriceTier() PriceTier   { return p.tier }

func (p place) SearchText(locale string) []string {
	return []string{p.name, p.desc[locale]}
}

func names(ps []place) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.name
	}
	return out
}

func strs(v ...string) *[]string { return &v }

func str(v string) *string { return &v }

var (
	pujol = place{
		name: "Pujol",
		desc: map[string]string{
			"en": "Tasting menu with a celebrated mole madre",
			"es": "Menú de degustación con su famoso mole madre",
		},
		cats: []string{"fine-dining"},
		hood: "polanco",
		tier: TierFine,
	}
	tacoStand = place{
		name: "Taco Stand",
		desc: map[string]string{
			"en": "Al pastor straight from the trompo",
			"es": "Al pastor directo del trompo",
		},
		cats: []string{"street-food"},
		hood: "roma",
		tier: TierBudget,
	}
)
