// Package formats provides parsers for the asset file formats the scene
// loads. Parsers work on byte slices and never touch the filesystem.
package formats
