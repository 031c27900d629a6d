// Package plugins links the in-tree plugins into the binary. Import it for
// its side effect; registry_gen.go is written by "webie plugins gen".
package plugins
