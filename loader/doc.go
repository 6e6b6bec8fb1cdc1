// Package loader fills a container from maps and definition files.
//
// Supported files are YAML (.yml, .yaml), JSON, TOML and .env. Every
// top-level key becomes a property; files cannot carry factories. Keys are
// read case-insensitively and registered in lower case, except in .env
// files where they are kept as written.
//
//	err := loader.LoadFile(c, "definitions.yml")
package loader
