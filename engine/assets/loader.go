package assets

import "github.com/spaghettifunk/rlres/engine/resources"

// Exporter turns discovered source assets of one or more resource types into
// binary resource files.
type Exporter interface {
	Name() string
	// TypeNames are the resource types this exporter produces.
	TypeNames() []resources.TypeName
	// DependsOn are the types whose RIDs must be resolvable before export.
	DependsOn() []resources.TypeName
	Discover(srcRoot string, b *resources.IndexBuilder) error
	BuildOne(e *resources.Entry, srcDir, outDir string, idx *resources.Index) error
}

// Converter rewrites a third-party format into intermediate documents that
// exporters discover afterwards.
type Converter interface {
	Name() string
	Subdir() string
	Patterns() []string
	ConvertOne(srcPath, srcRoot, outRoot string) error
}
