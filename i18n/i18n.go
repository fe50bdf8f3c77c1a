// Package i18n holds the site's locales, Accept-Language negotiation and the
// handful of strings the service renders itself.
package i18n

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

const (
	English = "en"
	Spanish = "es"

	DefaultLocale = English
)

// Locales lists the supported locales, default first.
var Locales = []string{English, Spanish}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish})

// IsSupported reports whether locale is one of Locales.
func IsSupported(locale string) bool {
	return slices.Contains(Locales, locale)
}

// Negotiate picks the best supported locale for an Accept-Language header.
// An empty or unparsable header yields DefaultLocale.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	if idx < 0 || idx >= len(Locales) {
		return DefaultLocale
	}
	return Locales[idx]
}

// Text is a string stored once per locale.
type Text map[string]string

// In returns the text for locale, falling back to DefaultLocale.
func (t Text) In(locale string) string {
	if s, ok := t[locale]; ok && s != "" {
		return s
	}
	return t[DefaultLocale]
}

// Keys of the label dictionary.
const (
	RestaurantsTitle   = "restaurants.title"
	CuisinesTitle      = "cuisines.title"
	NeighborhoodsTitle = "neighborhoods.title"
	CuisineTitle       = "cuisine.title"
	NeighborhoodTitle  = "neighborhood.title"
	HomeTitle          = "home.title"
	GuidesTitle        = "guides.title"
)

var dictionary = map[string]Text{
	RestaurantsTitle: {
		English: "Restaurants in Mexico City",
		Spanish: "Restaurantes en Ciudad de México",
	},
	CuisinesTitle: {
		English: "Cuisines in Mexico City",
		Spanish: "Cocinas en Ciudad de México",
	},
	NeighborhoodsTitle: {
		English: "Mexico City Neighborhoods",
		Spanish: "Colonias de la Ciudad de México",
	},
	CuisineTitle: {
		English: "%s Restaurants in Mexico City",
		Spanish: "Restaurantes de %s en Ciudad de México",
	},
	NeighborhoodTitle: {
		English: "Restaurants in %s",
		Spanish: "Restaurantes en %s",
	},
	HomeTitle: {
		English: "BestCDMX - Discover the Best of Mexico City",
		Spanish: "BestCDMX - Descubre lo Mejor de la Ciudad de México",
	},
	GuidesTitle: {
		English: "Guides | BestCDMX",
		Spanish: "Guías | BestCDMX",
	},
}

// T looks up key for locale and formats it with args. Unknown keys are
// returned as is.
func T(locale, key string, args ...any) string {
	t, ok := dictionary[key]
	if !ok {
		return key
	}
	s := t.In(locale)
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}
