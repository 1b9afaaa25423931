// Package pokemon serves the cleaned pokemon dataset.
//
// It answers four read queries, each matching names without regard to case
// and returning names in row id order:
//
//	GET /pokemon/ability/{ability_name}    pokemon held with an ability
//	GET /pokemon/type/{type_name}          pokemon with a type in either slot
//	GET /trainers/pokemon/{pokemon_name}   distinct trainers holding a pokemon
//	GET /abilities/pokemon/{pokemon_name}  abilities of a pokemon
//
// # Ingestion
//
// POST /trainer-pokemon-abilities/{pokemon_name} adds a pokemon the dataset
// does not know yet. Its types and abilities come from the lookup service
// (see the lookup subpackage). Types, the pokemon and abilities are reused
// when already present, the pokemon is given to a random existing trainer,
// and one association row per ability is inserted. Everything happens in a
// single transaction, so a failure leaves no partial rows behind.
//
// Errors map to statuses as follows: ErrAlreadyExists and ErrNoTrainers are
// 400, ErrNotFound is 404, ErrUnavailable and ErrInternal are 500.
package pokemon
