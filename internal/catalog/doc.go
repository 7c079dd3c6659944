// Package catalog manages the cave records that supply georeferencing with
// its reference coordinates: the JSONL export of the scraping pipeline and a
// local SQLite database it is imported into for fast lookup.
//
// The database is a disposable index over the JSONL file, not a source of
// truth; re-importing rebuilds it. Records carry WGS84 entrance coordinates
// with (0, 0) standing for "no coordinate available", and the plan-image
// metadata needed to locate the raster to georeference.
package catalog
