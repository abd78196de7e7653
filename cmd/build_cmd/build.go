package build_cmd

import (
	"arkiv/archive"
	"arkiv/config"
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/database/repository"
	"arkiv/file_io"
	L "arkiv/logger"
	"arkiv/progress"
	"arkiv/tui"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

type BuildCmdEnv struct {
	InputPath   string
	OutputBase  string
	ConfigPath  string
	Formats     []config.ArchiveFormat
	Mode        config.PipelineMode
	Workers     int
	QueueSize   int
	Level       int
	UI          config.UIMode
	Catalog     bool
	Config      *config.Config
	ArchiveRepo repository.ArchiveRepository
	EntryRepo   repository.EntryRepository
}

var configurator config.Configurator = config.New()

// OutputPath is the archive path of one format.
func (env *BuildCmdEnv) OutputPath(format config.ArchiveFormat) string {
	return env.OutputBase + format.Suffix()
}

func Execute(ctx context.Context, args []string) error {
	env, err := parseFlags(args)
	if err != nil {
		return err
	}

	if env.Catalog {
		db, err := database.OpenDefault(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
		env.ArchiveRepo = repository.NewArchiveRepository(db)
		env.EntryRepo = repository.NewEntryRepository(db)
	}

	return run(ctx, env)
}

func run(ctx context.Context, env *BuildCmdEnv) error {
	// archives of earlier formats must not end up inside later ones
	ignored := map[string]bool{}
	for _, f := range env.Formats {
		ignored[env.OutputPath(f)] = true
	}

	for _, format := range env.Formats {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		err := buildOne(ctx, env, format, ignored)
		if err != nil {
			return err
		}
	}
	return nil
}

func buildOne(ctx context.Context, env *BuildCmdEnv, format config.ArchiveFormat, ignored map[string]bool) error {
	outputPath := env.OutputPath(format)
	archiver, err := archive.NewArchiver(archive.Task{
		InputPath:  env.InputPath,
		OutputPath: outputPath,
		Format:     format,
	},
		archive.FromConfig(env.Config),
		archive.WithMode(env.Mode),
		archive.WithWorkers(env.Workers),
		archive.WithQueueSize(env.QueueSize),
		archive.WithLevel(env.Level),
		archive.WithIgnorePaths(ignored),
		archive.WithDisplay(newDisplayFunc(env.UI)),
	)
	if err != nil {
		return err
	}

	err = archiver.Plan(ctx)
	if err != nil {
		return err
	}
	info := archiver.GetInfo(ctx)
	L.Printf("Archiving %s -> %s (%d entries, %s)\n",
		env.InputPath,
		outputPath,
		info.TotalEntries(),
		L.HumanReadableBytes(info.SizeInBytes))

	var archiveId int64
	if env.ArchiveRepo != nil {
		reportSimilar(ctx, env, format, info)
		archiveId, err = env.ArchiveRepo.CreateArchive(ctx,
			env.InputPath,
			archiver.GetArchiveFilePath(ctx),
			format,
			env.Mode,
			time.Now(),
			info)
		if err != nil {
			return err
		}
		err = env.ArchiveRepo.UpdateArchiveStatus(ctx, archiveId, model.ARCHIVE_STATUS_RUNNING)
		if err != nil {
			return err
		}
	}

	startErr := archiver.Start(ctx)

	if env.ArchiveRepo != nil {
		// the run context may be cancelled already, the record still has to land
		catalogCtx := context.WithoutCancel(ctx)
		err = recordResult(catalogCtx, env, archiveId, archiver)
		if err != nil {
			return errors.Join(startErr, err)
		}
	}
	if startErr != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("archiving %s was aborted: %w", outputPath, startErr)
		}
		return startErr
	}

	result := archiver.GetResult(ctx)
	for _, w := range result.Warnings {
		L.Debug(w)
	}
	L.Printf("Archive: %s\n", archiver.GetArchiveFilePath(ctx))
	if archiveId > 0 {
		L.Printf("Cataloged as #%d, see 'arkiv show %d'\n", archiveId, archiveId)
	}
	return nil
}

func reportSimilar(ctx context.Context, env *BuildCmdEnv, format config.ArchiveFormat, info *file_io.FilesInfo) {
	similar, err := env.ArchiveRepo.FindSimilarArchive(ctx, env.InputPath, format, info)
	if err != nil {
		if !errors.Is(err, database.ErrDoesNotExist) {
			L.Debug(err)
		}
		return
	}
	if archive.IsValidArchive(similar.OutputPath, format) == nil {
		L.Info(fmt.Sprintf("Archive #%d at %s already holds the same contents", similar.Id, similar.OutputPath))
	}
}

func recordResult(ctx context.Context, env *BuildCmdEnv, archiveId int64, archiver archive.Archiver) error {
	p, err := archiver.GetProgress(ctx)
	if err != nil {
		return err
	}
	status := catalogStatus(p.Status)
	result := archiver.GetResult(ctx)
	if result == nil {
		return env.ArchiveRepo.UpdateArchiveStatus(ctx, archiveId, status)
	}
	err = env.ArchiveRepo.UpdateArchiveResult(ctx,
		archiveId,
		status,
		int64(result.Appended),
		int64(result.Skipped),
		int64(result.OutputSize))
	if err != nil {
		return err
	}
	if status != model.ARCHIVE_STATUS_COMPLETED {
		return nil
	}
	return env.EntryRepo.AddMany(ctx, entryRows(archiveId, result.Entries))
}

func entryRows(archiveId int64, entries []archive.AppendedEntry) []model.ArchiveEntryRow {
	rows := make([]model.ArchiveEntryRow, 0, len(entries))
	for _, e := range entries {
		fullPath := strings.TrimSuffix(e.Path, "/")
		parent, name := model.SplitEntryPath(fullPath)
		rows = append(rows, model.ArchiveEntryRow{
			ArchiveId:  archiveId,
			FullPath:   fullPath,
			Name:       name,
			ParentPath: parent,
			EntryType:  e.Kind.String(),
			SizeBytes:  e.Size,
			Mode:       e.Mode,
			ModifiedAt: e.ModTime,
			Sha256:     e.Sha256,
		})
	}
	return rows
}

func catalogStatus(s archive.ArchiveStatus) model.ArchiveStatus {
	switch s {
	case archive.STATUS_COMPLETED:
		return model.ARCHIVE_STATUS_COMPLETED
	case archive.STATUS_ABORTED:
		return model.ARCHIVE_STATUS_ABORTED
	case archive.STATUS_FAILED:
		return model.ARCHIVE_STATUS_FAILED
	case archive.STATUS_RUNNING:
		return model.ARCHIVE_STATUS_RUNNING
	default:
		return model.ARCHIVE_STATUS_QUEUED
	}
}

func newDisplayFunc(ui config.UIMode) func(total uint64) progress.Display {
	if ui == config.UI_AUTO {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			ui = config.UI_TEA
		} else {
			ui = config.UI_NONE
		}
	}
	switch ui {
	case config.UI_TEA:
		return func(total uint64) progress.Display { return tui.NewProgressDisplay(total) }
	case config.UI_PLAIN:
		return func(total uint64) progress.Display { return progress.NewFooterDisplay(total) }
	default:
		return func(uint64) progress.Display { return progress.NewQuietDisplay() }
	}
}

func parseFlags(args []string) (*BuildCmdEnv, error) {
	buildCmd := flag.NewFlagSet("build", flag.ContinueOnError)
	outputPath := buildCmd.String("output", "", "Base path of the generated archives")
	configPath := buildCmd.String("config", "", "Path to config.json file")
	formats := buildCmd.String("format", "", "Comma separated archive formats")
	jobs := buildCmd.String("jobs", "", "Number of workers in fanout mode")
	mode := buildCmd.String("mode", "", "Pipeline mode: fanout pipe")
	queue := buildCmd.String("queue", "", "Queue size in pipe mode")
	level := buildCmd.String("level", "", "Compression level 0-9")
	ui := buildCmd.String("ui", "", "Progress display: auto tea plain none")
	logLevel := buildCmd.String("log-level", L.GetLogLevel().String(), "Set log level: debug info warn error panic")
	colorMode := buildCmd.String("color", "auto", "Color mode: auto always never")

	var noCatalog bool

	buildCmd.StringVar(outputPath, "o", "", "alias to -output")
	buildCmd.StringVar(configPath, "c", "", "alias to -config")
	buildCmd.StringVar(formats, "f", "", "alias to -format")
	buildCmd.StringVar(jobs, "j", "", "alias to -jobs")
	buildCmd.StringVar(mode, "m", "", "alias to -mode")
	buildCmd.StringVar(queue, "q", "", "alias to -queue")
	buildCmd.StringVar(logLevel, "L", L.GetLogLevel().String(), "alias to -log-level")
	buildCmd.BoolVar(&noCatalog, "no-catalog", false, "Do not record the archive in the catalog")
	buildCmd.Usage = func() {
		PrintUsage()
	}

	err := buildCmd.Parse(args)
	if err != nil {
		return nil, err
	}

	nArgs := len(buildCmd.Args())
	if nArgs < 1 {
		return nil, fmt.Errorf("SRC not provided. For more information check 'arkiv help build'")
	}
	if nArgs > 1 {
		return nil, fmt.Errorf("too many arguments. For more information check 'arkiv help build'")
	}

	err = L.SetLevelFromString(*logLevel)
	if err != nil {
		return nil, err
	}
	err = L.SetColorModeFromString(*colorMode)
	if err != nil {
		return nil, err
	}

	inputPath, err := file_io.ExpandHome(buildCmd.Arg(0))
	if err != nil {
		return nil, err
	}
	inputPathAbs, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, err
	}
	if !file_io.IsDir(inputPathAbs) {
		return nil, fmt.Errorf("SRC is not a directory: %s", inputPathAbs)
	}

	if *configPath != "" {
		expanded, err := file_io.ExpandHome(*configPath)
		if err != nil {
			return nil, err
		}
		if !file_io.IsReadable(expanded) {
			return nil, fmt.Errorf("config is not readable: %s", expanded)
		}
		*configPath = expanded
	} else {
		defaultConfigPath, err := configurator.GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		*configPath = defaultConfigPath
	}
	configPathAbs, err := filepath.Abs(*configPath)
	if err != nil {
		return nil, err
	}
	err = configurator.Parse(configPathAbs)
	if err != nil {
		return nil, err
	}
	configs := configurator.Get()

	env := &BuildCmdEnv{
		InputPath:  inputPathAbs,
		ConfigPath: configPathAbs,
		Formats:    configs.ArchiveFormats,
		Mode:       configs.PipelineMode,
		Workers:    configs.Workers,
		QueueSize:  configs.QueueSize,
		Level:      configs.CompressionLevel,
		UI:         configs.UI,
		Catalog:    configs.Catalog && !noCatalog,
		Config:     configs,
	}

	// override config with cli flags
	if len(*formats) > 0 {
		parsed, err := config.ParseArchiveFormats(*formats)
		if err != nil {
			return nil, err
		}
		L.Debug(fmt.Sprintf("Overriding archive formats: %v -> %v", env.Formats, parsed))
		env.Formats = parsed
	}
	if len(*mode) > 0 {
		parsed, err := config.ParsePipelineMode(*mode)
		if err != nil {
			return nil, err
		}
		env.Mode = parsed
	}
	if len(*ui) > 0 {
		parsed, err := config.ParseUIMode(*ui)
		if err != nil {
			return nil, err
		}
		env.UI = parsed
	}
	if len(*jobs) > 0 {
		env.Workers, err = parseIntFlag("jobs", *jobs, 1, 1024)
		if err != nil {
			return nil, err
		}
	}
	if len(*queue) > 0 {
		env.QueueSize, err = parseIntFlag("queue", *queue, 0, 1<<20)
		if err != nil {
			return nil, err
		}
	}
	if len(*level) > 0 {
		env.Level, err = parseIntFlag("level", *level, 0, 9)
		if err != nil {
			return nil, err
		}
	}

	outputBase := *outputPath
	if outputBase == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		outputBase = filepath.Join(cwd, filepath.Base(inputPathAbs))
	}
	outputBase, err = file_io.ExpandHome(outputBase)
	if err != nil {
		return nil, err
	}
	outputBase, err = filepath.Abs(outputBase)
	if err != nil {
		return nil, err
	}
	env.OutputBase = trimFormatSuffix(outputBase, env.Formats)
	return env, nil
}

// trimFormatSuffix lets "-o out.tar.gz -f targz" name the file exactly.
func trimFormatSuffix(base string, formats []config.ArchiveFormat) string {
	if len(formats) != 1 {
		return base
	}
	return strings.TrimSuffix(base, formats[0].Suffix())
}

func parseIntFlag(name string, value string, lo int, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for -%s: %s", name, value)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("-%s must be between %d and %d, got %d", name, lo, hi, n)
	}
	return n, nil
}
