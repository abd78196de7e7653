package show_cmd

import (
	"arkiv/archive"
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/database/repository"
	L "arkiv/logger"
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
)

func Execute(ctx context.Context, args []string) error {
	showCmd := flag.NewFlagSet("show", flag.ContinueOnError)
	showCmd.Usage = func() {
		PrintUsage()
	}
	err := showCmd.Parse(args)
	if err != nil {
		return err
	}
	nArgs := len(showCmd.Args())
	if nArgs < 1 {
		return fmt.Errorf("no archive ID provided. For more information check 'arkiv help show'")
	}
	if nArgs > 2 {
		return fmt.Errorf("too many arguments. For more information check 'arkiv help show'")
	}
	archiveId, err := strconv.ParseInt(showCmd.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid archive ID: %s", showCmd.Arg(0))
	}
	dir := strings.Trim(showCmd.Arg(1), "/")
	if dir == "." {
		dir = ""
	}

	db, err := database.OpenDefault(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	a, err := repository.NewArchiveRepository(db).GetArchiveById(ctx, archiveId)
	if err != nil {
		if errors.Is(err, database.ErrDoesNotExist) {
			return fmt.Errorf("archive %d does not exist, see 'arkiv ls'", archiveId)
		}
		return err
	}
	L.Printf("%s", a)
	if a.Status == model.ARCHIVE_STATUS_COMPLETED {
		err = archive.IsValidArchive(a.OutputPath, a.ArchiveFormat)
		if err != nil {
			L.Warn(fmt.Sprintf("Archive file is no longer readable: %v", err))
		}
	}

	entryRepo := repository.NewEntryRepository(db)
	count, err := entryRepo.CountByArchive(ctx, archiveId)
	if err != nil {
		return err
	}
	entries, err := entryRepo.GetByParentPath(ctx, archiveId, dir)
	if err != nil {
		return err
	}
	L.Printf("\nEntries in ./%s (%d cataloged in total)\n", dir, count)
	L.Print(formatEntries(entries))
	return nil
}

func formatEntries(entries []model.ArchiveEntryRow) string {
	if len(entries) == 0 {
		return "  (none)\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		name := e.Name
		size := ""
		if e.EntryType == "file" {
			size = L.HumanReadableBytes(uint64(e.SizeBytes))
		} else {
			name += "/"
		}
		sb.WriteString(fmt.Sprintf("  %-48s %10s  %s\n",
			L.TruncateString(name, 48, L.TRUNC_CENTER),
			size,
			e.ModifiedAt.Format("2006-01-02 15:04")))
	}
	return sb.String()
}
