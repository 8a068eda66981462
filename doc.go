// Package iconfont builds an icon font and an icon theme descriptor from a
// mapping of editor icon ids to SVG icons.
//
// # Quick Start
//
// Load a mapping, build, and write the outputs:
//
//	mapping, err := iconfont.LoadMapping("mapping.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := iconfont.NewBuilder(iconfont.WithFontName("lucide-icons"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, iconfont.Input{
//	    Mapping:   mapping,
//	    SourceDir: "node_modules/lucide-static/icons",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.WriteFiles("dist") // dist/lucide-icons.woff, dist/lucide-icons.json
//
// # Mapping
//
// A mapping is a YAML or JSON object whose keys are editor icon ids and whose
// values name vector icons. The key minus the prefix (default "codicon:")
// becomes the glyph name. The value's segment after the first colon is the
// SVG file name without extension; an empty value reuses the key:
//
//	codicon:debug: lucide:bug     # glyph "debug" from bug.svg
//	codicon:alert:                # glyph "alert" from alert.svg
//
// # Build Pipeline
//
// The build runs these stages:
//
//  1. Resolve the mapping into glyph names and SVG file names
//  2. Repair each SVG into a single filled outline (concurrently, bounded by WithWorkers)
//  3. Merge the outlines into an SVG font, assigning code points from U+E000
//  4. Transcode the SVG font to WOFF and render the JSON descriptor (concurrently)
//
// Missing SVG files are skipped and reported in Result.Skipped; they take no
// code point. A repair failure fails the build unless WithRepairPolicy(RepairSkip)
// is set. Intermediate files live in a scratch directory removed before Build
// returns.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go and can be tested with errors.Is:
//
//	if errors.Is(err, iconfont.ErrVectorRepair) {
//	    // one of the icons could not be turned into an outline
//	}
package iconfont
