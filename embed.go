package webie

import "embed"

// EmbeddedAssets contains static assets shipped with the framework.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
