package pokemon

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"pokemon-service/core/database"
	"pokemon-service/core/utils"
	"pokemon-service/feature/pokemon/lookup"
	"pokemon-service/feature/pokemon/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service answers the dataset queries and ingests new pokemon.
type Service struct {
	store  *database.Store
	lookup lookup.Lookup
	logger *zap.Logger
	pick   func(n int) int
}

// NewService creates a new pokemon service.
func NewService(store *database.Store, finder lookup.Lookup, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		lookup: finder,
		logger: logger,
		pick:   rand.IntN,
	}
}

// IngestResult describes a successful ingestion.
type IngestResult struct {
	Message     string `json:"message"`
	InsertedIDs []int  `json:"inserted_ids"`
}

// PokemonByAbility returns the names of pokemon held with the given ability
// by any trainer.
func (s *Service) PokemonByAbility(ctx context.Context, ability string) ([]string, error) {
	return s.names(ctx, &models.Pokemon{}, func(tx *gorm.DB) *gorm.DB {
		sub := tx.Table("trainer_pokemon_abilities tpa").
			Select("tpa.pokemon_id").
			Joins("JOIN abilities a ON a.id = tpa.ability_id").
			Where("LOWER(a.name) = LOWER(?)", ability)
		return tx.Where("id IN (?)", sub)
	})
}

// PokemonByType returns the names of pokemon having the given type in
// either slot.
func (s *Service) PokemonByType(ctx context.Context, typeName string) ([]string, error) {
	return s.names(ctx, &models.Pokemon{}, func(tx *gorm.DB) *gorm.DB {
		typeIDs := func() *gorm.DB {
			return tx.Model(&models.Type{}).Select("id").Where("LOWER(name) = LOWER(?)", typeName)
		}
		return tx.Where("(type1_id IN (?) OR type2_id IN (?))", typeIDs(), typeIDs())
	})
}

// TrainersByPokemon returns the distinct trainers holding the given pokemon.
func (s *Service) TrainersByPokemon(ctx context.Context, pokemon string) ([]string, error) {
	return s.names(ctx, &models.Trainer{}, func(tx *gorm.DB) *gorm.DB {
		sub := tx.Table("trainer_pokemon_abilities tpa").
			Select("tpa.trainer_id").
			Joins("JOIN pokemon p ON p.id = tpa.pokemon_id").
			Where("LOWER(p.name) = LOWER(?)", pokemon)
		return tx.Where("id IN (?)", sub)
	})
}

// AbilitiesByPokemon returns the abilities any trainer's instance of the
// given pokemon has.
func (s *Service) AbilitiesByPokemon(ctx context.Context, pokemon string) ([]string, error) {
	return s.names(ctx, &models.Ability{}, func(tx *gorm.DB) *gorm.DB {
		sub := tx.Table("trainer_pokemon_abilities tpa").
			Select("tpa.ability_id").
			Joins("JOIN pokemon p ON p.id = tpa.pokemon_id").
			Where("LOWER(p.name) = LOWER(?)", pokemon)
		return tx.Where("id IN (?)", sub)
	})
}

// names plucks the non-null names of model rows matched by filter, in id
// order. Every row appears once. An empty result is not an error.
func (s *Service) names(ctx context.Context, model any, filter func(tx *gorm.DB) *gorm.DB) ([]string, error) {
	names := []string{}
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		return filter(tx).
			Model(model).
			Where("name IS NOT NULL").
			Order("id").
			Pluck("name", &names).Error
	})
	if err != nil {
		return nil, s.classify(err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Ingest adds a pokemon unknown to the dataset. Its types and abilities are
// fetched from the lookup service, it is given to a random trainer, and one
// association row is created per ability. All writes share one transaction.
func (s *Service) Ingest(ctx context.Context, name string) (*IngestResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}

	if err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		return ensureAbsent(tx, name)
	}); err != nil {
		return nil, s.classify(err)
	}

	found, err := s.lookup.Find(ctx, name)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("Pokemon lookup failed", zap.String("pokemon", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if len(found.Types) == 0 {
		return nil, fmt.Errorf("%w: lookup returned no types for %q", ErrInternal, name)
	}

	display := utils.Canonical(name, "-")
	var inserted []int
	err = s.store.Tx(ctx, func(tx *gorm.DB) error {
		// Another request may have ingested it since the first check.
		if err := ensureAbsent(tx, name); err != nil {
			return err
		}

		typeIDs := make([]int, 0, len(found.Types))
		for _, t := range found.Types {
			row := models.Type{Name: utils.Canonical(t, "")}
			if _, err := getOrCreate(tx, &row, "LOWER(name) = LOWER(?)", row.Name); err != nil {
				return err
			}
			typeIDs = append(typeIDs, row.ID)
		}

		creature := models.Pokemon{Name: display, Type1ID: typeIDs[0]}
		query := tx.Where("LOWER(name) = LOWER(?) AND type1_id = ?", display, typeIDs[0])
		if len(typeIDs) > 1 {
			creature.Type2ID = &typeIDs[1]
			query = query.Where("type2_id = ?", typeIDs[1])
		} else {
			query = query.Where("type2_id IS NULL")
		}
		if _, err := getOrCreate(tx, &creature, query); err != nil {
			return err
		}

		trainer, err := s.randomTrainer(tx)
		if err != nil {
			return err
		}

		for _, a := range found.Abilities {
			ability := models.Ability{Name: utils.Canonical(a, "-")}
			if _, err := getOrCreate(tx, &ability, "LOWER(name) = LOWER(?)", ability.Name); err != nil {
				return err
			}

			link := models.TrainerPokemonAbility{
				TrainerID: trainer.ID,
				PokemonID: creature.ID,
				AbilityID: ability.ID,
			}
			created, err := getOrCreate(tx, &link,
				"trainer_id = ? AND pokemon_id = ? AND ability_id = ?",
				link.TrainerID, link.PokemonID, link.AbilityID)
			if err != nil {
				return err
			}
			if created {
				inserted = append(inserted, link.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.logger.Info("Pokemon ingested",
		zap.String("pokemon", display),
		zap.Ints("inserted_ids", inserted),
	)

	if inserted == nil {
		inserted = []int{}
	}
	return &IngestResult{
		Message:     fmt.Sprintf("Abilities for %s added successfully.", display),
		InsertedIDs: inserted,
	}, nil
}

func ensureAbsent(tx *gorm.DB, name string) error {
	var count int64
	if err := tx.Model(&models.Pokemon{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing pokemon: %w", err)
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *Service) randomTrainer(tx *gorm.DB) (*models.Trainer, error) {
	var count int64
	if err := tx.Model(&models.Trainer{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count trainers: %w", err)
	}
	if count == 0 {
		return nil, ErrNoTrainers
	}

	var trainer models.Trainer
	if err := tx.Order("id").Offset(s.pick(int(count))).Take(&trainer).Error; err != nil {
		return nil, fmt.Errorf("failed to pick a trainer: %w", err)
	}
	return &trainer, nil
}

// classify maps store errors onto the service's error kinds.
func (s *Service) classify(err error) error {
	var connErr *database.ConnectionError
	switch {
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrNotFound), errors.Is(err, ErrNoTrainers):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	case errors.As(err, &connErr):
		s.logger.Error("Database unavailable", zap.String("driver", connErr.Driver), zap.Error(connErr.Err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		s.logger.Error("Database operation failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
