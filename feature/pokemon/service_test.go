package pokemon

import (
	"context"
	"errors"
	"testing"

	"pokemon-service/core/database"
	"pokemon-service/core/database/dbtest"
	"pokemon-service/feature/cleaning"
	"pokemon-service/feature/pokemon/lookup"
	"pokemon-service/feature/pokemon/lookup/mocks"
	"pokemon-service/feature/pokemon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seedClean loads a small, already cleaned dataset.
func seedClean(t *testing.T, store *database.Store) {
	dbtest.Exec(t, store,
		`INSERT INTO types (id, name) VALUES (1, 'Electric'), (2, 'Fire'), (3, 'Water'), (4, 'Flying')`,
		`INSERT INTO abilities (id, name) VALUES (1, 'Static'), (2, 'Blaze'), (3, 'Torrent'), (4, 'Run-Away'), (5, 'Lightning-Rod')`,
		`INSERT INTO pokemon (id, name, type1_id, type2_id) VALUES (1, 'Pikachu', 1, NULL), (2, 'Charizard', 2, 4),
			(3, 'Squirtle', 3, NULL), (4, 'Raichu', 1, NULL), (5, NULL, 1, NULL)`,
		`INSERT INTO trainers (id, name) VALUES (1, 'Ash'), (2, 'Misty'), (3, 'Brock')`,
		`INSERT INTO trainer_pokemon_abilities (id, trainer_id, pokemon_id, ability_id) VALUES
			(1, 1, 1, 1), (2, 2, 1, 1), (3, 2, 1, 5), (4, 1, 2, 2), (5, 2, 3, 3), (6, 3, 4, 1), (7, 3, 5, 1)`,
	)
}

func newTestService(t *testing.T) (*Service, *database.Store, *mocks.Lookup) {
	store := dbtest.NewStore(t)
	finder := new(mocks.Lookup)
	svc := NewService(store, finder, zap.NewNop())
	svc.pick = func(int) int { return 0 }
	return svc, store, finder
}

func TestService_PokemonByAbility(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedClean(t, store)

	names, err := svc.PokemonByAbility(context.Background(), "sTaTiC")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu", "Raichu"}, names)

	names, err = svc.PokemonByAbility(context.Background(), "lightning-rod")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu"}, names)
}

func TestService_PokemonByAbility_NoMatchIsEmpty(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedClean(t, store)

	names, err := svc.PokemonByAbility(context.Background(), "Levitate")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestService_PokemonByType(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedClean(t, store)

	tests := []struct {
		typeName string
		want     []string
	}{
		{"electric", []string{"Pikachu", "Raichu"}},
		{"ELECTRIC", []string{"Pikachu", "Raichu"}},
		{"Flying", []string{"Charizard"}},
		{"fire", []string{"Charizard"}},
		{"Ghost", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			names, err := svc.PokemonByType(context.Background(), tt.typeName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestService_TrainersByPokemon(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedClean(t, store)

	names, err := svc.TrainersByPokemon(context.Background(), "pikachu")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ash", "Misty"}, names)

	names, err = svc.TrainersByPokemon(context.Background(), "Mew")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestService_AbilitiesByPokemon(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedClean(t, store)

	names, err := svc.AbilitiesByPokemon(context.Background(), "PIKACHU")
	require.NoError(t, err)
	assert.Equal(t, []string{"Static", "Lightning-Rod"}, names)
}

func TestService_Queries_ClosedStore(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Close())

	_, err := svc.PokemonByAbility(context.Background(), "Static")
	assert.ErrorIs(t, err, ErrUnavailable)

	var connErr *database.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestService_Queries_AfterCleaning(t *testing.T) {
	svc, store, _ := newTestService(t)
	dbtest.Exec(t, store,
		`INSERT INTO types (id, name) VALUES (1, 'electric'), (2, 'ELECTRIC')`,
		`INSERT INTO abilities (id, name) VALUES (1, 'static')`,
		`INSERT INTO pokemon (id, name, type1_id, type2_id) VALUES (1, 'Pikuchu', 2, NULL)`,
		`INSERT INTO trainers (id, name) VALUES (1, 'Ash')`,
		`INSERT INTO trainer_pokemon_abilities (trainer_id, pokemon_id, ability_id) VALUES (1, 1, 1)`,
	)

	_, err := cleaning.NewEngine(store, zap.NewNop(), nil).Clean(context.Background())
	require.NoError(t, err)

	names, err := svc.PokemonByType(context.Background(), "eLeCtRiC")
	require.NoError(t, err)
	assert.Contains(t, names, "Pikachu")

	names, err = svc.PokemonByAbility(context.Background(), "static")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu"}, names)
}

func TestService_Ingest(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	var picked int
	svc.pick = func(n int) int {
		picked = n
		return 1
	}
	finder.On("Find", mock.Anything, "eevee").Return(&lookup.Pokemon{
		Name:      "eevee",
		Types:     []string{"normal"},
		Abilities: []string{"run-away", "adaptability", "anticipation"},
	}, nil).Once()

	result, err := svc.Ingest(context.Background(), "eevee")
	require.NoError(t, err)

	assert.Equal(t, "Abilities for Eevee added successfully.", result.Message)
	assert.Len(t, result.InsertedIDs, 3)
	assert.Equal(t, 3, picked)

	assert.Equal(t, []string{"Electric", "Fire", "Water", "Flying", "Normal"}, dbtest.Names(t, store, "types"))
	assert.Equal(t, []string{"Static", "Blaze", "Torrent", "Run-Away", "Lightning-Rod", "Adaptability", "Anticipation"},
		dbtest.Names(t, store, "abilities"))

	var eevee models.Pokemon
	require.NoError(t, store.DB().Where("name = ?", "Eevee").Take(&eevee).Error)
	assert.Equal(t, 5, eevee.Type1ID)
	assert.Nil(t, eevee.Type2ID)

	var links []models.TrainerPokemonAbility
	require.NoError(t, store.DB().Where("id IN ?", result.InsertedIDs).Order("id").Find(&links).Error)
	require.Len(t, links, 3)
	for _, link := range links {
		assert.Equal(t, 2, link.TrainerID)
		assert.Equal(t, eevee.ID, link.PokemonID)
	}
	assert.Equal(t, 4, links[0].AbilityID)

	finder.AssertExpectations(t)
}

func TestService_Ingest_SingleAbility(t *testing.T) {
	svc, store, finder := newTestService(t)
	dbtest.Exec(t, store, `INSERT INTO trainers (id, name) VALUES (1, 'Ash')`)

	finder.On("Find", mock.Anything, "pichu").Return(&lookup.Pokemon{
		Name:      "pichu",
		Types:     []string{"electric"},
		Abilities: []string{"static"},
	}, nil)

	result, err := svc.Ingest(context.Background(), "pichu")
	require.NoError(t, err)
	assert.NotEmpty(t, result.InsertedIDs)

	assert.Equal(t, int64(1), dbtest.Count(t, store, "pokemon"))
	assert.Equal(t, int64(1), dbtest.Count(t, store, "types"))
	assert.Equal(t, int64(1), dbtest.Count(t, store, "abilities"))
	assert.Equal(t, int64(1), dbtest.Count(t, store, "trainer_pokemon_abilities"))
}

func TestService_Ingest_ReusesTypesIgnoringCase(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	finder.On("Find", mock.Anything, "Charmeleon").Return(&lookup.Pokemon{
		Name:      "charmeleon",
		Types:     []string{"fire", "flying"},
		Abilities: []string{"blaze", "blaze"},
	}, nil)

	result, err := svc.Ingest(context.Background(), "Charmeleon")
	require.NoError(t, err)
	assert.Len(t, result.InsertedIDs, 1)
	assert.Equal(t, int64(4), dbtest.Count(t, store, "types"))
	assert.Equal(t, int64(5), dbtest.Count(t, store, "abilities"))

	var created models.Pokemon
	require.NoError(t, store.DB().Where("name = ?", "Charmeleon").Take(&created).Error)
	assert.Equal(t, 2, created.Type1ID)
	require.NotNil(t, created.Type2ID)
	assert.Equal(t, 4, *created.Type2ID)
}

func TestService_Ingest_AlreadyExists(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	_, err := svc.Ingest(context.Background(), "PIKACHU")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	finder.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	assert.Equal(t, int64(5), dbtest.Count(t, store, "pokemon"))
	assert.Equal(t, int64(7), dbtest.Count(t, store, "trainer_pokemon_abilities"))
}

func TestService_Ingest_Twice(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	finder.On("Find", mock.Anything, "pichu").Return(&lookup.Pokemon{
		Name:      "pichu",
		Types:     []string{"electric"},
		Abilities: []string{"static"},
	}, nil).Once()

	_, err := svc.Ingest(context.Background(), "pichu")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), "pichu")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	finder.AssertExpectations(t)
}

func TestService_Ingest_NotFound(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	finder.On("Find", mock.Anything, "missingno").Return(nil, lookup.ErrNotFound)

	_, err := svc.Ingest(context.Background(), "missingno")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(5), dbtest.Count(t, store, "pokemon"))
	assert.Equal(t, int64(4), dbtest.Count(t, store, "types"))
}

func TestService_Ingest_EmptyName(t *testing.T) {
	svc, _, finder := newTestService(t)

	_, err := svc.Ingest(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
	finder.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestService_Ingest_LookupFailure(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)

	finder.On("Find", mock.Anything, "eevee").Return(nil, errors.New("connection reset"))

	_, err := svc.Ingest(context.Background(), "eevee")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Ingest_NoTrainersRollsBack(t *testing.T) {
	svc, store, finder := newTestService(t)
	dbtest.Exec(t, store, `INSERT INTO types (id, name) VALUES (1, 'Electric')`)

	finder.On("Find", mock.Anything, "pichu").Return(&lookup.Pokemon{
		Name:      "pichu",
		Types:     []string{"electric", "fairy"},
		Abilities: []string{"static"},
	}, nil)

	_, err := svc.Ingest(context.Background(), "pichu")
	assert.ErrorIs(t, err, ErrNoTrainers)

	assert.Equal(t, int64(1), dbtest.Count(t, store, "types"))
	assert.Equal(t, int64(0), dbtest.Count(t, store, "pokemon"))
	assert.Equal(t, int64(0), dbtest.Count(t, store, "abilities"))
}

func TestService_Ingest_FailureLeavesNoPartialRows(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)
	dbtest.Exec(t, store, `DROP TABLE trainer_pokemon_abilities`)

	finder.On("Find", mock.Anything, "eevee").Return(&lookup.Pokemon{
		Name:      "eevee",
		Types:     []string{"normal"},
		Abilities: []string{"adaptability"},
	}, nil)

	_, err := svc.Ingest(context.Background(), "eevee")
	assert.ErrorIs(t, err, ErrInternal)

	assert.Equal(t, int64(4), dbtest.Count(t, store, "types"))
	assert.Equal(t, int64(5), dbtest.Count(t, store, "abilities"))
	assert.Equal(t, int64(5), dbtest.Count(t, store, "pokemon"))
}

func TestService_Ingest_ClosedStore(t *testing.T) {
	svc, store, finder := newTestService(t)
	require.NoError(t, store.Close())

	_, err := svc.Ingest(context.Background(), "eevee")
	assert.ErrorIs(t, err, ErrUnavailable)
	finder.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestService_Ingest_UniqueViolationIsAlreadyExists(t *testing.T) {
	svc, store, finder := newTestService(t)
	seedClean(t, store)
	// The existence check compares exact names, so a padded row slips past it
	// and only the unique index catches the clash on insert.
	dbtest.Exec(t, store,
		`INSERT INTO pokemon (id, name, type1_id, type2_id) VALUES (6, 'Pichu ', 1, NULL)`,
		`CREATE UNIQUE INDEX ux_pokemon_name ON pokemon (LOWER(TRIM(name)))`,
	)

	finder.On("Find", mock.Anything, "pichu").Return(&lookup.Pokemon{
		Name:      "pichu",
		Types:     []string{"electric"},
		Abilities: []string{"static"},
	}, nil)

	_, err := svc.Ingest(context.Background(), "pichu")
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.NotErrorIs(t, err, ErrInternal)

	assert.Equal(t, int64(6), dbtest.Count(t, store, "pokemon"))
	assert.Equal(t, int64(7), dbtest.Count(t, store, "trainer_pokemon_abilities"))
}
