package models

// Type represents the 'types' table.
type Type struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

// TableName overrides the table name.
func (Type) TableName() string {
	return "types"
}

// Ability represents the 'abilities' table.
type Ability struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

// TableName overrides the table name.
func (Ability) TableName() string {
	return "abilities"
}

// Pokemon represents the 'pokemon' table. Type2ID is NULL for single-type pokemon.
type Pokemon struct {
	ID      int    `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name"`
	Type1ID int    `gorm:"column:type1_id"`
	Type2ID *int   `gorm:"column:type2_id"`
}

// TableName overrides the table name.
func (Pokemon) TableName() string {
	return "pokemon"
}

// Trainer represents the 'trainers' table.
type Trainer struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

// TableName overrides the table name.
func (Trainer) TableName() string {
	return "trainers"
}

// TrainerPokemonAbility represents the 'trainer_pokemon_abilities' join table:
// the trainer owns the pokemon, which expresses the ability.
type TrainerPokemonAbility struct {
	ID        int `gorm:"column:id;primaryKey"`
	TrainerID int `gorm:"column:trainer_id"`
	PokemonID int `gorm:"column:pokemon_id"`
	AbilityID int `gorm:"column:ability_id"`
}

// TableName overrides the table name.
func (TrainerPokemonAbility) TableName() string {
	return "trainer_pokemon_abilities"
}

// All returns one zero value of every model, parents before children.
func All() []any {
	return []any{Type{}, Ability{}, Pokemon{}, Trainer{}, TrainerPokemonAbility{}}
}
