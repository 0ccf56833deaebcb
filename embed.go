package ivsite

import "embed"

// embeddedAssets holds the site script and stylesheet served under /public/.
//
//go:embed embedded/*
var embeddedAssets embed.FS
