package models_test

import (
	"testing"

	"pokemon-service/feature/pokemon/models"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		want  string
	}{
		{models.Type{}, "types"},
		{models.Ability{}, "abilities"},
		{models.Pokemon{}, "pokemon"},
		{models.Trainer{}, "trainers"},
		{models.TrainerPokemonAbility{}, "trainer_pokemon_abilities"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.model.TableName())
		})
	}
}

func TestAll(t *testing.T) {
	all := models.All()
	assert.Len(t, all, 5)
	assert.IsType(t, models.Type{}, all[0])
	assert.IsType(t, models.TrainerPokemonAbility{}, all[4])
}
