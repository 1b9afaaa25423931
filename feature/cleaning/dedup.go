package cleaning

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// uniqueKey declares the natural key of a table. Rows outside scope take no
// part in deduplication.
type uniqueKey struct {
	table   string
	columns []string
	scope   string
}

// Dedup order: parents first, join rows last so that every reference has
// already been re-pointed at a survivor.
var uniqueKeys = []uniqueKey{
	{table: "types", columns: []string{"LOWER(name)"}, scope: "name IS NOT NULL"},
	{table: "abilities", columns: []string{"LOWER(name)"}, scope: "name IS NOT NULL"},
	{table: "trainers", columns: []string{"LOWER(name)"}, scope: "name IS NOT NULL"},
	{table: "pokemon", columns: []string{"name", "type1_id", "type2_id"}, scope: "name IS NOT NULL"},
	{table: "trainer_pokemon_abilities", columns: []string{"trainer_id", "pokemon_id", "ability_id"}},
}

// keepFirst deletes every row whose id is not the lowest id of its key group.
// The inner select is wrapped in a derived table so MySQL accepts a
// subquery on the table being deleted from.
func keepFirst(tx *gorm.DB, key uniqueKey) (int64, error) {
	scope := "1 = 1"
	if key.scope != "" {
		scope = key.scope
	}
	query := fmt.Sprintf(
		"DELETE FROM %[1]s WHERE %[2]s AND id NOT IN (SELECT keep_id FROM (SELECT MIN(id) AS keep_id FROM %[1]s WHERE %[2]s GROUP BY %[3]s) AS keep)",
		key.table, scope, strings.Join(key.columns, ", "),
	)
	result := tx.Exec(query)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deduplicate %s: %w", key.table, result.Error)
	}
	return result.RowsAffected, nil
}

// reference is a foreign key column that must follow its target row when
// duplicates of the target are merged. match relates two target rows a and b
// that share a natural key.
type reference struct {
	table  string
	column string
	target string
	match  string
}

const (
	sameName    = "LOWER(b.name) = LOWER(a.name)"
	samePokemon = "b.name = a.name AND b.type1_id = a.type1_id AND (b.type2_id = a.type2_id OR (b.type2_id IS NULL AND a.type2_id IS NULL))"
)

// Pokemon references come last: the pokemon key contains type ids, which
// must point at surviving types before pokemon duplicates can be matched.
var references = []reference{
	{table: "pokemon", column: "type1_id", target: "types", match: sameName},
	{table: "pokemon", column: "type2_id", target: "types", match: sameName},
	{table: "trainer_pokemon_abilities", column: "ability_id", target: "abilities", match: sameName},
	{table: "trainer_pokemon_abilities", column: "trainer_id", target: "trainers", match: sameName},
	{table: "trainer_pokemon_abilities", column: "pokemon_id", target: "pokemon", match: samePokemon},
}

// repoint rewrites ref.column to the lowest id sharing the referenced row's
// natural key, recomputed by lookup rather than assumed from the old id.
// Only rows pointing at a non-survivor are touched.
func repoint(tx *gorm.DB, ref reference) (int64, error) {
	query := fmt.Sprintf(
		"UPDATE %[1]s SET %[2]s = (SELECT MIN(b.id) FROM %[3]s a JOIN %[3]s b ON %[4]s WHERE a.id = %[1]s.%[2]s) "+
			"WHERE %[2]s IN (SELECT a.id FROM %[3]s a JOIN %[3]s b ON %[4]s AND b.id < a.id)",
		ref.table, ref.column, ref.target, ref.match,
	)
	result := tx.Exec(query)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to re-point %s.%s: %w", ref.table, ref.column, result.Error)
	}
	return result.RowsAffected, nil
}
