package cleaning

// SentinelAbility is a placeholder row in the seed data, not a real ability.
const SentinelAbility = "Remove this ability"

// Exact-match misspelling corrections applied during cleaning.
var (
	abilityCorrections = map[string]string{
		"gras": "Grass",
	}
	trainerCorrections = map[string]string{
		"misty": "Misty",
	}
	pokemonCorrections = map[string]string{
		"Pikuchu":     "Pikachu",
		"Charmanderr": "Charmander",
		"Bulbasuar":   "Bulbasaur",
		"RATtata":     "Rattata",
	}
)
