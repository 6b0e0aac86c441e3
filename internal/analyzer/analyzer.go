package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/internal/discovery"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/internal/graph"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
	"github.com/IARD-Solutions/solidity-analyzer/internal/solidity"
)

// Submitter sends one bundle of related source files for analysis. Bundle
// keys are project-relative paths.
type Submitter interface {
	Analyze(ctx context.Context, bundle map[string]iard.SourceContent) (*iard.AnalysisResponse, error)
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID           string             `json:"run_id"`
	Root            string             `json:"root"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Vulnerabilities []findings.Finding `json:"vulnerabilities"`
	Linter          []findings.Finding `json:"linter"`
}

// Analyzer drives the analysis workflow: discover sources, partition them
// into dependency groups and submit each group for remote analysis. At most
// one run is active at a time; concurrent invocations fail with ErrBusy.
type Analyzer struct {
	logger  hclog.Logger
	files   *discovery.Service
	service Submitter
	busy    atomic.Bool
}

// New creates an analyzer on top of a discovery service and a submission
// client.
func New(logger hclog.Logger, files *discovery.Service, service Submitter) *Analyzer {
	return &Analyzer{
		logger:  logger,
		files:   files,
		service: service,
	}
}

// AnalyzeAll analyzes every Solidity source under root. Sources are
// partitioned into import-connected groups and each group is submitted as
// one request, sequentially. A failed group is logged and skipped so the
// remaining groups still run; the run fails only when no source files exist
// or every group submission failed.
func (a *Analyzer) AnalyzeAll(ctx context.Context, root string) (*Result, error) {
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer a.busy.Store(false)

	sources, err := a.files.Discover(root)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoSourceFiles
	}
	a.logger.Info("discovered source files", "root", root, "files", len(sources))

	byPath := make(map[string]discovery.SourceFile, len(sources))
	for _, file := range sources {
		byPath[file.Path] = file
	}

	groups := graph.Build(sources, a.logger).Components()
	a.logger.Info("partitioned sources into submission groups", "groups", len(groups))

	result := a.newResult(root)
	failed := 0
	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bundle := make(map[string]iard.SourceContent, len(group))
		for _, path := range group {
			file := byPath[path]
			bundle[file.RelPath] = iard.SourceContent{Content: file.Content}
		}

		a.logger.Info("submitting file group", "group", i+1, "of", len(groups), "files", len(bundle))
		resp, err := a.service.Analyze(ctx, bundle)
		if err != nil {
			a.logger.Warn("file group submission failed, continuing with remaining groups", "group", i+1, "error", err)
			failed++
			continue
		}
		a.collect(resp, result)
	}
	if failed == len(groups) {
		return nil, ErrAllGroupsFailed
	}

	findings.Sort(result.Vulnerabilities)
	findings.Sort(result.Linter)
	return result, nil
}

// AnalyzeCurrent analyzes a single file together with the transitive closure
// of its local imports, submitted as one request. The seed file must exist
// and be a Solidity source; imported files that cannot be read are logged
// and left out of the bundle.
func (a *Analyzer) AnalyzeCurrent(ctx context.Context, root, path string) (*Result, error) {
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer a.busy.Store(false)

	if !solidity.IsSourceFile(path) {
		return nil, &NotSourceFileError{Path: path}
	}

	seed, err := a.files.Load(root, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	loaded := map[string]discovery.SourceFile{seed.Path: seed}
	members := graph.Closure(seed.Path, func(p string) []string {
		file, ok := loaded[p]
		if !ok {
			snapshot, err := a.files.Load(root, p)
			if err != nil {
				a.logger.Warn("failed to read imported file, skipping", "path", p, "error", err)
				return nil
			}
			loaded[p] = snapshot
			file = snapshot
		}

		var neighbors []string
		for _, imp := range solidity.ParseImports(file.Content) {
			resolved, ok := solidity.ResolveImport(file.Path, imp)
			if !ok {
				a.logger.Debug("ignoring external import", "path", file.Path, "import", imp)
				continue
			}
			neighbors = append(neighbors, resolved)
		}
		return neighbors
	})

	bundle := make(map[string]iard.SourceContent, len(loaded))
	for _, member := range members {
		file, ok := loaded[member]
		if !ok {
			continue
		}
		bundle[file.RelPath] = iard.SourceContent{Content: file.Content}
	}

	a.logger.Info("submitting file with its import closure", "file", seed.RelPath, "files", len(bundle))
	resp, err := a.service.Analyze(ctx, bundle)
	if err != nil {
		return nil, fmt.Errorf("analysis submission failed: %w", err)
	}

	result := a.newResult(root)
	a.collect(resp, result)
	findings.Sort(result.Vulnerabilities)
	findings.Sort(result.Linter)
	return result, nil
}

// Groups returns the submission groups for the project as project-relative
// paths without submitting anything.
func (a *Analyzer) Groups(root string) ([][]string, error) {
	sources, err := a.files.Discover(root)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoSourceFiles
	}

	rel := make(map[string]string, len(sources))
	for _, file := range sources {
		rel[file.Path] = file.RelPath
	}

	components := graph.Build(sources, a.logger).Components()
	groups := make([][]string, 0, len(components))
	for _, component := range components {
		group := make([]string, 0, len(component))
		for _, path := range component {
			group = append(group, rel[path])
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (a *Analyzer) newResult(root string) *Result {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	return &Result{
		RunID:           uuid.New().String(),
		Root:            absRoot,
		GeneratedAt:     time.Now().UTC(),
		Vulnerabilities: []findings.Finding{},
		Linter:          []findings.Finding{},
	}
}

func (a *Analyzer) collect(resp *iard.AnalysisResponse, result *Result) {
	result.Vulnerabilities = append(result.Vulnerabilities, normalizeVulnerabilities(resp.Result)...)
	result.Linter = append(result.Linter, normalizeLinter(resp, a.logger)...)
}
