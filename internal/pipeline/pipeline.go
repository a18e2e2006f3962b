// Package pipeline sequences one generation job: ingest rows, validate,
// group scenarios, enrich, invoke the producer, post-process for
// conformance, persist the finalized files and record the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/testforge/internal/conform"
	"github.com/harrison/testforge/internal/diag"
	"github.com/harrison/testforge/internal/enrich"
	"github.com/harrison/testforge/internal/history"
	"github.com/harrison/testforge/internal/ingest"
	"github.com/harrison/testforge/internal/models"
	"github.com/harrison/testforge/internal/writer"
)

// Producer is the generative producer collaborator; it returns a validated
// path→content mapping for the given scenario groups.
type Producer interface {
	Generate(ctx context.Context, groups *models.GroupSet, pageObjects []string) (models.FileSet, error)
}

// Logger receives pipeline progress. The console logger satisfies it.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogDiagnostics(diags *diag.List)
}

// Pipeline holds the collaborators for generation jobs. Each call to Run
// operates on its own groups and file set, so a single Pipeline may be used
// for concurrent jobs as long as the collaborators allow it.
type Pipeline struct {
	Producer  Producer
	Analyzer  enrich.Analyzer // nil disables enrichment
	Log       Logger
	History   *history.Store // nil disables run recording
	OutputDir string

	processor *conform.Processor
}

// New creates a Pipeline with the default conformance processor.
func New(prod Producer, log Logger, outputDir string) *Pipeline {
	return &Pipeline{
		Producer:  prod,
		Log:       log,
		OutputDir: outputDir,
		processor: conform.NewProcessor(),
	}
}

// Result is the complete outcome of one generation job.
type Result struct {
	JobID       string
	Groups      *models.GroupSet
	Files       models.FileSet
	Diagnostics *diag.List
	Duration    time.Duration
}

// Run executes one generation job for the definitions at inputPath.
// Fatal conditions (schema violation, producer contract violation, write
// failure) abort with a single error; everything else is recorded in the
// result's diagnostics.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	start := time.Now()

	result, err := p.run(ctx, inputPath)
	duration := time.Since(start)

	if p.History != nil {
		job := history.Job{
			InputPath: inputPath,
			OutputDir: p.OutputDir,
			Duration:  duration,
			Success:   err == nil,
		}
		if err != nil {
			job.ErrorMessage = err.Error()
		}
		if result != nil {
			job.ScenarioCount = result.Groups.Len()
			job.TestCount = result.Groups.TotalTests()
			job.FileCount = len(result.Files)
			job.WarningCount = result.Diagnostics.Len()
		}
		if id, recErr := p.History.Record(job); recErr != nil {
			p.Log.LogWarn(fmt.Sprintf("failed to record run history: %v", recErr))
		} else if result != nil {
			result.JobID = id
		}
	}

	if result != nil {
		result.Duration = duration
	}
	return result, err
}

func (p *Pipeline) run(ctx context.Context, inputPath string) (*Result, error) {
	if p.processor == nil {
		p.processor = conform.NewProcessor()
	}
	diags := &diag.List{}

	table, err := ingest.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	p.Log.LogDebug(fmt.Sprintf("read %d data rows from %s", len(table.Rows), inputPath))

	cols, schemaDiags, err := ingest.ValidateSchema(table)
	diags.Merge(schemaDiags)
	if err != nil {
		p.Log.LogDiagnostics(schemaDiags)
		return nil, err
	}

	groups, groupDiags := ingest.GroupScenarios(table, cols)
	diags.Merge(groupDiags)
	if groups.Len() == 0 {
		return nil, fmt.Errorf("no scenario groups could be built from %s", inputPath)
	}
	p.Log.LogInfo(fmt.Sprintf("grouped %d test cases into %d scenarios",
		groups.TotalTests(), groups.Len()))

	if p.Analyzer != nil {
		p.Log.LogDebug("enriching expected results")
		enrich.EnrichGroups(ctx, p.Analyzer, groups)
	}

	pageObjects := ingest.PageObjects(groups)

	p.Log.LogInfo("invoking generative producer")
	files, err := p.Producer.Generate(ctx, groups, pageObjects)
	if err != nil {
		return nil, err
	}
	p.Log.LogInfo(fmt.Sprintf("producer returned %d files", len(files)))

	conformDiags := p.processor.Process(groups, files, pageObjects)
	diags.Merge(conformDiags)

	if err := writer.Write(p.OutputDir, files); err != nil {
		return nil, err
	}
	p.Log.LogInfo(fmt.Sprintf("wrote %d files to %s", len(files), p.OutputDir))
	p.Log.LogDiagnostics(diags)

	return &Result{
		Groups:      groups,
		Files:       files,
		Diagnostics: diags,
	}, nil
}
