// File: pkg/combine/execute.go
package combine

import (
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Run executes one pipeline: load extra patterns, scan the root, filter the
// scanned files and write the document. Extra patterns are loaded before the
// scan so a bad pattern file fails fast.
func Run(args Arguments, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	args = args.withDefaults()

	var extraCount int
	filter := NewFilter(nil, logger)
	if args.ExtraPatternsFile != "" {
		extra, err := LoadExtraPatterns(args.ExtraPatternsFile)
		if err != nil {
			logger.Debug("Failed to load extra patterns", zap.String("file", args.ExtraPatternsFile), zap.Error(err))
			return Report{}, err
		}
		filter.Extra = extra
		extraCount = extra.Len()
		if args.Verbose {
			logger.Info("Loaded extra patterns", zap.String("file", args.ExtraPatternsFile), zap.Int("count", extraCount))
		}
	}

	root, err := ResolveRoot(args.Root)
	if err != nil {
		logger.Debug("Invalid root", zap.String("root", args.Root), zap.Error(err))
		return Report{}, err
	}
	if args.Verbose {
		logger.Info("Scanning project", zap.String("root", root))
	}

	found, err := Scan(root)
	if err != nil {
		logger.Debug("Failed to scan project", zap.String("root", root), zap.Error(err))
		return Report{}, err
	}

	retained, err := filter.Apply(found, root)
	if err != nil {
		logger.Debug("Failed to filter files", zap.Error(err))
		return Report{}, err
	}
	retained = withoutOutput(retained, args.Output)
	sort.Slice(retained, func(i, j int) bool {
		return RelativePath(root, retained[i]) < RelativePath(root, retained[j])
	})
	if args.Verbose {
		logger.Info("Filtered files",
			zap.Int("found", len(found)),
			zap.Int("retained", len(retained)),
			zap.Int("extraPatterns", extraCount))
	}

	report, err := WriteDocument(retained, args.Output, root, WriteOptions{
		MaxBytes: args.MaxBytes,
		Verbose:  args.Verbose,
	}, logger)
	if err != nil {
		return Report{}, err
	}
	report.Found = len(found)
	report.Retained = len(retained)
	return report, nil
}

// withoutOutput drops the output document itself so a rerun with a custom
// output path inside the root does not bundle its previous result.
func withoutOutput(files []string, output string) []string {
	absOutput, err := resolveOutput(output)
	if err != nil {
		return files
	}
	target := filepath.Join(canonicalRoot(filepath.Dir(absOutput)), filepath.Base(absOutput))

	kept := files[:0]
	for _, file := range files {
		if file == target {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}
