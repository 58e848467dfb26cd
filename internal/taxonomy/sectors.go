// Package taxonomy holds the static lookup tables used by the profile
// analyzer and the scoring engine: industry-code mappings, sector keyword
// sets, legal-form compatibility and agency tiers. All tables are immutable
// and loaded once with the package.
package taxonomy

import "strings"

// nafEntry maps a two-character NAF division prefix to a sector label and a
// human-readable activity label. The label feeds the search-term extraction.
type nafEntry struct {
	Sector string
	Label  string
}

var nafDivisions = map[string]nafEntry{
	"01": {Sector: "Agriculture", Label: "culture production animale chasse services annexes"},
	"02": {Sector: "Agriculture", Label: "sylviculture exploitation forestière"},
	"03": {Sector: "Agriculture", Label: "pêche aquaculture"},
	"10": {Sector: "Agroalimentaire", Label: "industries alimentaires transformation"},
	"11": {Sector: "Agroalimentaire", Label: "fabrication boissons"},
	"13": {Sector: "Industrie", Label: "fabrication textiles"},
	"14": {Sector: "Industrie", Label: "industrie habillement"},
	"16": {Sector: "Industrie", Label: "travail bois fabrication articles bois"},
	"20": {Sector: "Industrie", Label: "industrie chimique"},
	"21": {Sector: "Santé", Label: "industrie pharmaceutique"},
	"22": {Sector: "Industrie", Label: "fabrication produits caoutchouc plastique"},
	"25": {Sector: "Industrie", Label: "fabrication produits métalliques"},
	"26": {Sector: "Numérique", Label: "fabrication produits informatiques électroniques optiques"},
	"27": {Sector: "Industrie", Label: "fabrication équipements électriques"},
	"28": {Sector: "Industrie", Label: "fabrication machines équipements"},
	"29": {Sector: "Industrie", Label: "industrie automobile"},
	"30": {Sector: "Industrie", Label: "fabrication autres matériels transport"},
	"31": {Sector: "Artisanat", Label: "fabrication meubles"},
	"32": {Sector: "Artisanat", Label: "autres industries manufacturières"},
	"33": {Sector: "Industrie", Label: "réparation installation machines équipements"},
	"35": {Sector: "Énergie", Label: "production distribution électricité gaz vapeur"},
	"36": {Sector: "Environnement", Label: "captage traitement distribution eau"},
	"38": {Sector: "Environnement", Label: "collecte traitement élimination déchets récupération"},
	"41": {Sector: "Construction", Label: "construction bâtiments"},
	"42": {Sector: "Construction", Label: "génie civil"},
	"43": {Sector: "Construction", Label: "travaux construction spécialisés"},
	"45": {Sector: "Commerce", Label: "commerce réparation automobiles motocycles"},
	"46": {Sector: "Commerce", Label: "commerce gros"},
	"47": {Sector: "Commerce", Label: "commerce détail"},
	"49": {Sector: "Transport", Label: "transports terrestres transport conduites"},
	"50": {Sector: "Transport", Label: "transports eau"},
	"51": {Sector: "Transport", Label: "transports aériens"},
	"52": {Sector: "Transport", Label: "entreposage services auxiliaires transports"},
	"55": {Sector: "Tourisme", Label: "hébergement"},
	"56": {Sector: "Tourisme", Label: "restauration"},
	"58": {Sector: "Numérique", Label: "édition logiciels"},
	"59": {Sector: "Culture", Label: "production films cinéma vidéo programmes télévision"},
	"60": {Sector: "Culture", Label: "programmation diffusion"},
	"61": {Sector: "Numérique", Label: "télécommunications"},
	"62": {Sector: "Numérique", Label: "programmation conseil informatique"},
	"63": {Sector: "Numérique", Label: "services information données hébergement"},
	"64": {Sector: "Finance", Label: "activités services financiers"},
	"65": {Sector: "Finance", Label: "assurance"},
	"68": {Sector: "Immobilier", Label: "activités immobilières"},
	"69": {Sector: "Services", Label: "activités juridiques comptables"},
	"70": {Sector: "Services", Label: "conseil gestion"},
	"71": {Sector: "Services", Label: "architecture ingénierie contrôle analyses techniques"},
	"72": {Sector: "Recherche", Label: "recherche développement scientifique"},
	"73": {Sector: "Services", Label: "publicité études marché"},
	"74": {Sector: "Services", Label: "autres activités spécialisées scientifiques techniques"},
	"77": {Sector: "Services", Label: "activités location"},
	"79": {Sector: "Tourisme", Label: "agences voyage voyagistes services réservation"},
	"81": {Sector: "Services", Label: "services bâtiments aménagement paysager"},
	"82": {Sector: "Services", Label: "activités administratives soutien"},
	"85": {Sector: "Formation", Label: "enseignement formation"},
	"86": {Sector: "Santé", Label: "activités santé humaine"},
	"87": {Sector: "Santé", Label: "hébergement médico social"},
	"88": {Sector: "Social", Label: "action sociale sans hébergement"},
	"90": {Sector: "Culture", Label: "activités créatives artistiques spectacle"},
	"91": {Sector: "Culture", Label: "bibliothèques archives musées"},
	"93": {Sector: "Sport", Label: "activités sportives récréatives loisirs"},
	"95": {Sector: "Artisanat", Label: "réparation ordinateurs biens personnels domestiques"},
	"96": {Sector: "Services", Label: "autres services personnels"},
}

// SectorForNAF resolves a NAF/APE code to its sector using the two first
// characters of the code. The empty string means the code is unknown.
func SectorForNAF(code string) string {
	entry, ok := lookupNAF(code)
	if !ok {
		return ""
	}
	return entry.Sector
}

// LabelForNAF returns the activity label for a NAF/APE code, or empty when
// the code is unknown.
func LabelForNAF(code string) string {
	entry, ok := lookupNAF(code)
	if !ok {
		return ""
	}
	return entry.Label
}

func lookupNAF(code string) (nafEntry, bool) {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return nafEntry{}, false
	}
	entry, ok := nafDivisions[code[:2]]
	return entry, ok
}
