// Package store provides template sources that feed engine registration.
//
// A Store lists named template sources; Sync registers them on anything
// exposing the engine's RegisterTemplate method. Dir reads templates from a
// directory tree, Redis from a Redis hash of name to source.
//
// Example usage:
//
//	eng := engine.New(logger)
//	n, err := store.Sync(ctx, eng, store.NewDir("./templates", ".hbs"))
package store
