// Command caveplan georeferences scanned cave-plan rasters against the
// Polish cave catalog. It imports the JSONL catalog into a local database,
// runs interactive measurement sessions over plan images, and writes world
// file + KML artifacts for the derived transforms.
package main
