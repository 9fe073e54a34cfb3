package validate

import "strings"

// knownMakes is the set of manufacturers accepted without an UNKNOWN_MAKE
// warning, keyed by lowercase name.
var knownMakes = map[string]struct{}{}

func init() {
	for _, m := range []string{
		"Acura", "Alfa Romeo", "Audi", "BMW", "Buick", "Cadillac", "Chevrolet",
		"Chevy", "Chrysler", "Dodge", "Fiat", "Ford", "Genesis", "GMC", "Honda",
		"Hyundai", "Infiniti", "Jaguar", "Jeep", "Kia", "Land Rover", "Lexus",
		"Lincoln", "Lucid", "Maserati", "Mazda", "Mercedes", "Mercedes-Benz",
		"Mini", "Mitsubishi", "Nissan", "Polestar", "Porsche", "Ram", "Rivian",
		"Subaru", "Tesla", "Toyota", "Volkswagen", "VW", "Volvo",
	} {
		knownMakes[normalizeMake(m)] = struct{}{}
	}
}

func normalizeMake(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// KnownMake reports whether name is a recognized manufacturer, ignoring case.
func KnownMake(name string) bool {
	_, ok := knownMakes[normalizeMake(name)]
	return ok
}
