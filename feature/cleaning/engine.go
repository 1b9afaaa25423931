package cleaning

import (
	"context"
	"fmt"
	"time"

	"pokemon-service/core/database"
	"pokemon-service/core/utils"
	"pokemon-service/feature/pokemon/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs the one-shot cleaning pass over the pokemon dataset.
type Engine struct {
	store   *database.Store
	logger  *zap.Logger
	archive *Archive
}

// NewEngine creates a cleaning engine. archive may be nil.
func NewEngine(store *database.Store, logger *zap.Logger, archive *Archive) *Engine {
	return &Engine{store: store, logger: logger, archive: archive}
}

type step struct {
	name string
	run  func(tx *gorm.DB, r *Report) error
}

// steps run in order inside one transaction. Names are normalized first,
// references are then re-pointed at the lowest-id row of each key, and the
// duplicates are deleted last, which keeps a second pass a no-op.
var steps = []step{
	{"remove sentinel abilities", removeSentinelAbilities},
	{"normalize abilities", normalizeAbilities},
	{"normalize types", normalizeTypes},
	{"correct trainers", correctTrainers},
	{"correct pokemon", correctPokemon},
	{"remove unnamed trainers", removeUnnamedTrainers},
	{"re-point references", repointReferences},
	{"deduplicate", deduplicate},
}

// Clean runs every step in one transaction. Any failure rolls the whole pass
// back and is returned as a *CleaningError. The pass is idempotent.
func (e *Engine) Clean(ctx context.Context) (*Report, error) {
	report := newReport()
	current := "begin"

	err := e.store.Tx(ctx, func(tx *gorm.DB) error {
		for _, s := range steps {
			current = s.name
			if err := s.run(tx, report); err != nil {
				return err
			}
			e.logger.Debug("Cleaning step done", zap.String("step", s.name))
		}
		current = "commit"
		return nil
	})
	if err != nil {
		e.logger.Error("Cleaning failed, changes rolled back", zap.String("step", current), zap.Error(err))
		return nil, &CleaningError{Step: current, Err: err}
	}

	report.Duration = time.Since(report.StartedAt)
	e.logger.Info("Cleaning finished",
		zap.Any("deleted", report.Deleted),
		zap.Any("renamed", report.Renamed),
		zap.Any("repointed", report.Repointed),
		zap.Duration("duration", report.Duration),
	)

	if e.archive != nil {
		if key, err := e.archive.Save(ctx, report); err != nil {
			e.logger.Warn("Failed to archive cleaning report", zap.Error(err))
		} else {
			e.logger.Info("Cleaning report archived", zap.String("object", key))
		}
	}

	return report, nil
}

func removeSentinelAbilities(tx *gorm.DB, r *Report) error {
	sentinels := tx.Model(&models.Ability{}).Select("id").Where("name = ?", SentinelAbility)

	res := tx.Where("ability_id IN (?)", sentinels).Delete(&models.TrainerPokemonAbility{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete join rows of sentinel abilities: %w", res.Error)
	}
	r.Deleted["trainer_pokemon_abilities"] += res.RowsAffected

	res = tx.Where("name = ?", SentinelAbility).Delete(&models.Ability{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete sentinel abilities: %w", res.Error)
	}
	r.Deleted["abilities"] += res.RowsAffected
	return nil
}

func normalizeAbilities(tx *gorm.DB, r *Report) error {
	n, err := applyCorrections(tx, &models.Ability{}, abilityCorrections)
	if err != nil {
		return err
	}
	r.Renamed["abilities"] += n

	n, err = canonicalize(tx, &models.Ability{}, "-")
	if err != nil {
		return err
	}
	r.Renamed["abilities"] += n
	return nil
}

func normalizeTypes(tx *gorm.DB, r *Report) error {
	n, err := canonicalize(tx, &models.Type{}, "")
	if err != nil {
		return err
	}
	r.Renamed["types"] += n
	return nil
}

func correctTrainers(tx *gorm.DB, r *Report) error {
	n, err := applyCorrections(tx, &models.Trainer{}, trainerCorrections)
	if err != nil {
		return err
	}
	r.Renamed["trainers"] += n
	return nil
}

func correctPokemon(tx *gorm.DB, r *Report) error {
	n, err := applyCorrections(tx, &models.Pokemon{}, pokemonCorrections)
	if err != nil {
		return err
	}
	r.Renamed["pokemon"] += n
	return nil
}

func removeUnnamedTrainers(tx *gorm.DB, r *Report) error {
	const unnamed = "name IS NULL OR TRIM(name) = ''"
	orphans := tx.Model(&models.Trainer{}).Select("id").Where(unnamed)

	res := tx.Where("trainer_id IN (?)", orphans).Delete(&models.TrainerPokemonAbility{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete join rows of unnamed trainers: %w", res.Error)
	}
	r.Deleted["trainer_pokemon_abilities"] += res.RowsAffected

	res = tx.Where(unnamed).Delete(&models.Trainer{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete unnamed trainers: %w", res.Error)
	}
	r.Deleted["trainers"] += res.RowsAffected
	return nil
}

func repointReferences(tx *gorm.DB, r *Report) error {
	for _, ref := range references {
		n, err := repoint(tx, ref)
		if err != nil {
			return err
		}
		r.Repointed[ref.table+"."+ref.column] += n
	}
	return nil
}

func deduplicate(tx *gorm.DB, r *Report) error {
	for _, key := range uniqueKeys {
		n, err := keepFirst(tx, key)
		if err != nil {
			return err
		}
		r.Deleted[key.table] += n
	}
	return nil
}

// applyCorrections replaces names found in the table, exact match only.
func applyCorrections(tx *gorm.DB, model any, corrections map[string]string) (int64, error) {
	var total int64
	for from, to := range corrections {
		res := tx.Model(model).Where("name = ?", from).Update("name", to)
		if res.Error != nil {
			return total, fmt.Errorf("failed to correct %q: %w", from, res.Error)
		}
		total += res.RowsAffected
	}
	return total, nil
}

type namedRow struct {
	ID   int
	Name string
}

// canonicalize rewrites every non-NULL name into its canonical casing.
func canonicalize(tx *gorm.DB, model any, sep string) (int64, error) {
	var rows []namedRow
	if err := tx.Model(model).Select("id", "name").Where("name IS NOT NULL").Order("id").Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to load names: %w", err)
	}

	var total int64
	for _, row := range rows {
		canonical := utils.Canonical(row.Name, sep)
		if canonical == row.Name {
			continue
		}
		res := tx.Model(model).Where("id = ?", row.ID).Update("name", canonical)
		if res.Error != nil {
			return total, fmt.Errorf("failed to rename id %d: %w", row.ID, res.Error)
		}
		total += res.RowsAffected
	}
	return total, nil
}
