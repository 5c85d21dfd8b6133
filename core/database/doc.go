// Package database provides the GORM connection layer for the relational
// store holding venues, artists, festivals, lineup entries and sync logs.
//
// The schema itself is owned by the consuming deployment; this package only
// opens connections and relies on the store's unique constraints (artist
// slug, festival slug, lineup festival/artist pair) being in place.
package database
