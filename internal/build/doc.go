// Package build runs the postbuilder pipeline.
//
// A build is a fixed sequence of named stages (copy_assets, build_published,
// build_drafts, check_slugs, write_pages, write_listings) executed by
// RunStages against one State. The first failing stage stops the build; its
// error is returned wrapped in a StageError naming the stage. Output written
// by earlier stages is left in place.
//
// BuildService is the entry point for the CLI. DefaultBuildService wires the
// configuration into the parser, collection builder, renderer and writer, and
// optionally persists a JSON build report and a Prometheus metrics textfile.
package build
