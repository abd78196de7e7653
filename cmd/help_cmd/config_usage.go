package help_cmd

import (
	"arkiv/config"
	L "arkiv/logger"
	"strings"
)

const configUsageStr string = `
CONFIGURATION
    Configuration file is a JSON file holding archiving preferences.
    You could have different config.json files for different usecases.

    Most keys can be overriden from CLI arguments of 'arkiv build'.
    When you first run the program, a default config will be created for you at
    '~/.config/arkiv/config.json'. Keys missing from a config keep their defaults.

DEFAULT CONFIG

`

const configOptionsStr string = `

OPTIONS
    archive_formats
        Archive formats to build, one archive per format.
        This option is equivalent to --format argument.
        Supported values: tar, targz, tarbz2, tarxz, tarzstd, tarlz4, zip

    pipeline_mode
        fanout: every worker reads and appends on its own.
        pipe:   one reader feeds a bounded queue drained by one writer.
        This option is equivalent to --mode argument.

    workers
        Number of fanout workers, 0 uses one per CPU.

    queue_size
        Capacity of the queue in pipe mode.

    compression_level
        0 to 9, 0 selects the codec default.

    ui
        Progress display: auto, tea, plain, none

    catalog
        Record archives and their entries in ~/.config/arkiv/arkiv.db

    progress.status_interval_ms, progress.eta_interval_ms
        Refresh intervals of the status line and the ETA.

    progress.min_sample_ms, progress.max_sample_ms
        Gaps between completed entries outside this range do not move the ETA.

    progress.smoothing
        Weight of the newest sample in the moving average, in (0, 1].

    progress.min_seconds_per_entry, progress.max_seconds_per_entry
        Bounds applied to the average before computing the ETA.

    progress.warmup_entries
        Entries to complete before an ETA is shown.
`

func ConfigUsage() string {
	return configUsageStr + indent(config.DumpDefaultConfig()) + configOptionsStr
}

func ConfigPrintUsage() {
	L.Print(ConfigUsage())
}

func indent(s string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		sb.WriteString("        " + line + "\n")
	}
	return sb.String()
}
