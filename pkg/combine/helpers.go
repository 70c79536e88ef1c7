// File: pkg/combine/helpers.go
package combine

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"copyfiles/pkg/version"

	"go.uber.org/zap"
)

// Section anchors and markers used in the output document.
const (
	TreeAnchor       = "project-tree"
	SummaryAnchor    = "summary"
	TruncationMarker = "[truncated]"
)

// WriteDocument renders the retained files under root into a single document
// at outputPath. The document is written to a temporary file next to
// outputPath and renamed into place once complete. Per-file problems are
// recorded in the returned Report; only output failures are returned as errors.
func WriteDocument(files []string, outputPath, root string, opts WriteOptions, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	absOutput, err := resolveOutput(outputPath)
	if err != nil {
		return Report{}, outputError("resolve", outputPath, err)
	}
	outputDir := filepath.Dir(absOutput)
	if err := ensureDirectory(outputDir, logger); err != nil {
		return Report{}, outputError("create directory", outputDir, err)
	}
	if opts.Verbose {
		logger.Info("Writing document", zap.String("output", absOutput))
	}

	root = canonicalRoot(root)
	relPaths := make([]string, 0, len(files))
	absByRel := make(map[string]string, len(files))
	for _, file := range files {
		rel := RelativePath(root, file)
		if _, dup := absByRel[rel]; dup {
			continue
		}
		absByRel[rel] = file
		relPaths = append(relPaths, rel)
	}
	sort.Strings(relPaths)

	tmp, err := os.CreateTemp(outputDir, tempFilePattern)
	if err != nil {
		return Report{}, outputError("create", absOutput, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	doc := &documentWriter{w: bufio.NewWriter(tmp)}
	report := Report{OutputPath: absOutput, Retained: len(relPaths)}
	anchors := assignAnchors(relPaths)

	doc.writeHeader(opts)
	doc.writeTableOfContents(relPaths, anchors)
	doc.writeTree(relPaths)
	doc.printf("## Files\n\n")
	for _, rel := range relPaths {
		content := ProcessSingleFile(absByRel[rel], rel, opts.MaxBytes)
		recordFile(&report, content, opts.Verbose, logger)
		doc.writeFileSection(content, anchors[rel])
	}
	doc.writeSummary(report)

	if doc.err == nil {
		doc.err = doc.w.Flush()
	}
	if doc.err != nil {
		logger.Debug("Failed to write document", zap.String("file", tmp.Name()), zap.Error(doc.err))
		return Report{}, outputError("write", absOutput, doc.err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return Report{}, outputError("chmod", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return Report{}, outputError("close", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), absOutput); err != nil {
		_ = os.Remove(tmp.Name())
		committed = true
		return Report{}, outputError("rename", absOutput, err)
	}
	committed = true

	if opts.Verbose {
		logger.Info("Done",
			zap.String("output", absOutput),
			zap.Int("files", report.Retained),
			zap.Int("kept", report.Kept),
			zap.Int64("bytes", report.BytesWritten),
			zap.Int("skipped", len(report.Skipped)),
			zap.Int("truncated", len(report.Truncated)))
	}
	return report, nil
}

// resolveOutput makes outputPath absolute. An existing symlink is followed so
// the rename replaces its target rather than the link.
func resolveOutput(outputPath string) (string, error) {
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absOutput); err == nil {
		return resolved, nil
	}
	return absOutput, nil
}

// recordFile folds one processed file into the report.
func recordFile(report *Report, content FileContent, verbose bool, logger *zap.Logger) {
	switch content.Skip {
	case SkipBinary:
		report.Skipped = append(report.Skipped, SkippedFile{Path: content.Path, Reason: SkipBinary})
		if verbose {
			logger.Info("Skipping binary file", zap.String("file", content.Path))
		}
		return
	case SkipReadFailed:
		report.Skipped = append(report.Skipped, SkippedFile{Path: content.Path, Reason: SkipReadFailed, Detail: content.Detail})
		if verbose {
			logger.Warn("Could not read file", zap.String("file", content.Path), zap.String("error", content.Detail))
		}
		return
	}

	report.Kept++
	report.BytesWritten += int64(len(content.Content))
	if content.Truncated {
		report.Truncated = append(report.Truncated, content.Path)
		if verbose {
			logger.Info("Truncated file", zap.String("file", content.Path), zap.Int("bytesRead", content.RawBytes))
		}
	}
}

// documentWriter keeps the first write error and turns later writes into no-ops.
type documentWriter struct {
	w   *bufio.Writer
	err error
}

func (d *documentWriter) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *documentWriter) write(s string) {
	if d.err != nil {
		return
	}
	_, d.err = d.w.WriteString(s)
}

func (d *documentWriter) writeHeader(opts WriteOptions) {
	d.printf("# copyfiles\n\n")
	d.printf("Version: %s\n", opts.Version)
	d.printf("Generated: %s\n\n", opts.Now().UTC().Format(time.RFC3339))
}

func (d *documentWriter) writeTableOfContents(relPaths []string, anchors map[string]string) {
	d.printf("## Table of Contents\n\n")
	d.printf("- [Project Tree](#%s)\n", TreeAnchor)
	for _, rel := range relPaths {
		d.printf("- [%s](#%s)\n", rel, anchors[rel])
	}
	d.printf("- [Summary](#%s)\n\n", SummaryAnchor)
}

func (d *documentWriter) writeTree(relPaths []string) {
	d.printf("## Project Tree\n\n")
	d.write("```text\n")
	d.write(RenderRelativeTree(relPaths))
	d.write("```\n\n")
}

func (d *documentWriter) writeFileSection(content FileContent, anchor string) {
	d.printf("<a id=\"%s\"></a>\n", anchor)
	d.printf("### %s\n\n", content.Path)

	switch content.Skip {
	case SkipBinary:
		d.write("_Skipped: binary content._\n\n")
		return
	case SkipReadFailed:
		d.printf("_Skipped: %s._\n\n", SkipReadFailed)
		return
	}

	fence := chooseFence(content.Content)
	d.printf("%s%s\n", fence, content.Language)
	d.write(content.Content)
	if content.Content != "" && !strings.HasSuffix(content.Content, "\n") {
		d.write("\n")
	}
	if content.Truncated {
		d.printf("%s\n", TruncationMarker)
	}
	d.printf("%s\n\n", fence)
}

func (d *documentWriter) writeSummary(report Report) {
	d.printf("<a id=\"%s\"></a>\n", SummaryAnchor)
	d.printf("## Summary\n\n")
	d.printf("- Files kept: %d\n", report.Kept)
	d.printf("- Bytes written: %d\n", report.BytesWritten)
	d.printf("- Files skipped: %d\n", len(report.Skipped))
	d.printf("- Files truncated: %d\n\n", len(report.Truncated))

	d.printf("### Skipped files\n\n")
	if len(report.Skipped) == 0 {
		d.write("- none\n")
	}
	for _, skipped := range report.Skipped {
		if skipped.Detail != "" {
			d.printf("- %s (%s: %s)\n", skipped.Path, skipped.Reason, skipped.Detail)
			continue
		}
		d.printf("- %s (%s)\n", skipped.Path, skipped.Reason)
	}

	d.printf("\n### Truncated files\n\n")
	if len(report.Truncated) == 0 {
		d.write("- none\n")
	}
	for _, truncated := range report.Truncated {
		d.printf("- %s\n", truncated)
	}
}

// withDefaults fills in zero-valued options.
func (opts WriteOptions) withDefaults() WriteOptions {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Version == "" {
		opts.Version = version.Get().Version
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// anchorFor strips path separators and spaces from a relative path.
func anchorFor(relPath string) string {
	return strings.NewReplacer("/", "", "\\", "", " ", "").Replace(relPath)
}

// assignAnchors gives every path a unique anchor. Collisions, including with
// the fixed section anchors, get a numeric suffix.
func assignAnchors(relPaths []string) map[string]string {
	used := map[string]bool{TreeAnchor: true, SummaryAnchor: true}
	anchors := make(map[string]string, len(relPaths))
	for _, rel := range relPaths {
		base := anchorFor(rel)
		if base == "" {
			base = "file"
		}
		anchor := base
		for n := 2; used[anchor]; n++ {
			anchor = fmt.Sprintf("%s-%d", base, n)
		}
		used[anchor] = true
		anchors[rel] = anchor
	}
	return anchors
}

// chooseFence returns the shortest code fence that does not occur in content.
func chooseFence(content string) string {
	for n := 3; ; n++ {
		for _, mark := range []string{"`", "~"} {
			fence := strings.Repeat(mark, n)
			if !strings.Contains(content, fence) {
				return fence
			}
		}
	}
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Debug("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
