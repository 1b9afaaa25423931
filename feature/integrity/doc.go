// Package integrity provides health checks for the dataset service.
//
// # Checks Provided
//
//   - Server: Validates that the connected database has every table and column
//     the pokemon models map, and that primary keys are in place.
//   - Reports: Lists the cleaning reports archived in object storage, when
//     storage is enabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/server : Runs the schema check.
//   - GET /integrity/reports : Lists archived cleaning reports.
package integrity
