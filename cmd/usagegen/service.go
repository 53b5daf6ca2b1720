// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/zerosign/usagegen/internal/directive"
	"github.com/zerosign/usagegen/internal/manifest"
	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/generate"

	"github.com/charmbracelet/log"
)

// generationService is the production GenerationService. It owns no state
// beyond its logger; every request is handled in isolation.
type generationService struct {
	logger *log.Logger
}

func newGenerationService(logger *log.Logger) *generationService {
	return &generationService{logger: logger}
}

// Generate runs one generation request. Exactly one input mode is consulted:
// manifest, scan, or direct invocation, in that order of precedence. The
// error return covers input-level failures; invocation-level failures become
// diagnostics and a placeholder in the rendered output.
func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	select {
	case <-ctx.Done():
		return GenerateResult{}, fmt.Errorf("generate canceled: %w", ctx.Err())
	default:
	}

	switch {
	case req.ManifestPath != "":
		return s.generateManifest(req)
	case req.ScanPath != "":
		return s.generateScan(req)
	default:
		return s.generateDirect(req)
	}
}

// generateDirect handles one invocation given as plain text.
func (s *generationService) generateDirect(req GenerateRequest) (GenerateResult, error) {
	s.logger.Debug("generating from invocation text", "package", req.Package)

	var result GenerateResult
	r := generate.Build(req.Invocation)
	s.record(&result, r)

	content, err := s.render(req.Package, []generate.Result{r}, req.HeaderNote.String(), &result)
	if err != nil || content == nil {
		return result, err
	}

	result.Files = []GeneratedFile{{Path: req.OutputPath, Content: content}}
	return result, nil
}

// generateScan collects //usagegen:generate directives from Go sources and
// renders one generated counterpart per scanned file.
func (s *generationService) generateScan(req GenerateRequest) (GenerateResult, error) {
	suffix := req.Suffix.String()
	s.logger.Debug("scanning for directives", "path", req.ScanPath, "suffix", suffix)

	files, err := directive.Scan(req.ScanPath, suffix)
	if err != nil {
		return GenerateResult{}, wrapScanError(err, req.ScanPath)
	}
	if len(files) == 0 {
		return GenerateResult{}, noDirectivesError(req.ScanPath)
	}

	var result GenerateResult
	for _, f := range files {
		s.logger.Debug("generating", "source", f.Path, "directives", len(f.Directives))

		results := make([]generate.Result, 0, len(f.Directives))
		for _, d := range f.Directives {
			r := generate.Build(d.Text)
			// Rebase invocation-relative positions onto the scanned file.
			for i := range r.Diagnostics {
				r.Diagnostics[i].Pos = d.MapPos(r.Diagnostics[i].Pos)
			}
			s.record(&result, r)
			results = append(results, r)
		}

		content, err := s.render(f.Package, results, req.HeaderNote.String(), &result)
		if err != nil || content == nil {
			return result, err
		}
		result.Files = append(result.Files, GeneratedFile{
			Path:    f.OutputPath(suffix),
			Content: content,
		})
	}
	return result, nil
}

// generateManifest renders every invocation of a CUE manifest into the
// manifest's single output file.
func (s *generationService) generateManifest(req GenerateRequest) (GenerateResult, error) {
	s.logger.Debug("loading manifest", "path", req.ManifestPath)

	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return GenerateResult{}, wrapManifestError(err, req.ManifestPath)
	}
	s.logger.Debug("generating from manifest", "package", m.Package, "invocations", len(m.Invocations))

	var result GenerateResult
	results := make([]generate.Result, 0, len(m.Invocations))
	for _, inv := range m.Invocations {
		r := generate.Build(inv.Source())
		// Positions inside the rendered invocation text mean nothing to the
		// manifest author; point at the manifest instead.
		for i := range r.Diagnostics {
			r.Diagnostics[i].Pos = req.ManifestPath
		}
		s.record(&result, r)
		results = append(results, r)
	}

	content, err := s.render(m.Package, results, req.HeaderNote.String(), &result)
	if err != nil || content == nil {
		return result, err
	}

	out := m.Output
	if !filepath.IsAbs(out) {
		out = filepath.Join(filepath.Dir(req.ManifestPath), out)
	}
	result.Files = []GeneratedFile{{Path: out, Content: content}}
	return result, nil
}

// record folds one invocation outcome into the running result.
func (s *generationService) record(result *GenerateResult, r generate.Result) {
	if r.Schema != nil {
		result.Succeeded++
		return
	}
	result.Failed++
	result.Diagnostics = append(result.Diagnostics, r.Diagnostics...)
}

// render emits one output file. A fatal render failure (internal
// consistency) aborts the run: the diagnostic is recorded and a nil content
// tells the caller to stop without an input-level error.
func (s *generationService) render(pkg string, results []generate.Result, headerNote string, result *GenerateResult) ([]byte, error) {
	var opts []generate.RenderOption
	if headerNote != "" {
		opts = append(opts, generate.WithHeaderNote(headerNote))
	}

	content, err := generate.RenderFile(pkg, results, opts...)
	if err != nil {
		var d diag.Diagnostic
		if errors.As(err, &d) {
			s.logger.Error("internal consistency fault", "err", err)
			result.Diagnostics = append(result.Diagnostics, d)
			return nil, nil
		}
		return nil, fmt.Errorf("render %s: %w", pkg, err)
	}
	return content, nil
}
