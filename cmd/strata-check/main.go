// Command strata-check type-checks infrastructure documents. Each input is
// a syntax-tree dump produced by the parser service; the command loads the
// configured schema catalogs, checks every document on a bounded worker
// pool and prints the diagnostics in input order.
package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/config"
	"github.com/strata-lang/strata/internal/diag"
	"github.com/strata-lang/strata/internal/schema"
	"github.com/strata-lang/strata/internal/types"
)

type cli struct {
	Config   string   `short:"c" type:"existingfile" help:"YAML configuration file."`
	Catalog  []string `short:"s" help:"Schema catalog files, appended to the configured ones."`
	Workers  int      `short:"j" help:"Number of documents checked concurrently (overrides config)."`
	Severity string   `help:"Minimum severity printed: error, warning or note (overrides config)."`
	Verbose  bool     `short:"v" help:"Log per-document progress."`

	Paths []string `arg:"" type:"path" help:"Document dumps (.json) or directories of them."`
}

type result struct {
	path string
	sink *diag.Sink
	err  error
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("strata-check"),
		kong.Description("Static type checker for strata documents."))

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if !args.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	code, err := run(args, logger)
	kctx.FatalIfErrorf(err)
	os.Exit(code)
}

func run(args cli, logger log.Logger) (int, error) {
	cfg := config.Default()
	if args.Config != "" {
		var err error
		if cfg, err = config.Load(args.Config); err != nil {
			return 0, err
		}
	}
	if args.Workers > 0 {
		cfg.Workers = args.Workers
	}
	if args.Severity != "" {
		cfg.MinSeverity = diag.Severity(args.Severity)
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	catalogs := append(append([]string{}, cfg.SchemaCatalogs...), args.Catalog...)
	registry, err := schema.LoadCatalog(catalogs...)
	if err != nil {
		return 0, err
	}
	level.Debug(logger).Log("msg", "catalogs loaded", "files", len(catalogs))

	docs, err := collectDocuments(args.Paths)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, errors.New("no documents to check")
	}

	results := checkAll(docs, registry, cfg.Workers, logger)

	formatter := diag.NewFormatter(os.Stdout)
	failed := false
	for _, res := range results {
		if res.err != nil {
			return 0, res.err
		}
		for _, d := range res.sink.All() {
			if severityRank(d.Severity) > severityRank(cfg.MinSeverity) {
				continue
			}
			formatter.Format(d)
		}
		if res.sink.HasErrors() {
			failed = true
		}
	}
	if failed {
		return 1, nil
	}
	return 0, nil
}

// checkAll runs one checker per document across a bounded pool. Results come
// back indexed by input position so the report order is deterministic.
func checkAll(docs []string, registry *schema.Registry, workers int, logger log.Logger) []result {
	results := make([]result, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = checkDocument(docs[i], registry, logger)
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func checkDocument(path string, registry *schema.Registry, logger log.Logger) result {
	raw, err := os.ReadFile(path)
	if err != nil {
		return result{path: path, err: errors.Wrapf(err, "reading %s", path)}
	}
	file, err := ast.DecodeFile(raw)
	if err != nil {
		return result{path: path, err: errors.Wrapf(err, "decoding %s", path)}
	}

	sink := diag.NewSink()
	checker := types.NewChecker(registry, sink)
	checker.Check(file)
	level.Debug(logger).Log("msg", "checked", "path", path, "diagnostics", sink.Len())
	return result{path: path, sink: sink}
}

// collectDocuments expands the argument list: files pass through, directories
// contribute every .json dump beneath them.
func collectDocuments(paths []string) ([]string, error) {
	var docs []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}
		if !info.IsDir() {
			docs = append(docs, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".json") {
				docs = append(docs, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", path)
		}
	}
	return docs, nil
}

func severityRank(s diag.Severity) int {
	switch s {
	case diag.SeverityError:
		return 0
	case diag.SeverityWarning:
		return 1
	default:
		return 2
	}
}
