// Package models defines the GORM models of the pokemon dataset.
//
// The schema is provisioned outside this service, so every model pins its
// table name and column names explicitly instead of relying on GORM's
// naming strategy. The integrity feature reflects over the column tags to
// verify the live schema.
package models
