// Package cleaning implements the one-shot data cleaning pass run before the
// service accepts traffic.
//
// # Steps
//
// All steps run inside a single transaction; a failure anywhere rolls the
// whole pass back and surfaces as *CleaningError.
//
//  1. Delete the sentinel ability ("Remove this ability") and its join rows.
//  2. Correct known ability misspellings, then case every ability per
//     hyphen segment ("solar-power" -> "Solar-Power").
//  3. Case every type name ("FIRE" -> "Fire").
//  4. Correct known trainer and pokemon misspellings ("Pikuchu" -> "Pikachu").
//  5. Delete trainers without a name and their join rows.
//  6. Re-point type, ability, trainer and pokemon references at the lowest-id
//     row sharing the referenced row's natural key.
//  7. Delete every row that is not the lowest id of its natural key.
//
// Running the pass twice leaves the dataset unchanged the second time.
//
// # Archive
//
// When object storage is enabled, every successful pass uploads its Report
// under cleaning/ in the configured bucket. Archive failures are logged only.
package cleaning
