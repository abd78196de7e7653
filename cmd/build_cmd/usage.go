package build_cmd

import L "arkiv/logger"

const usageStr string = `
USAGE
arkiv build [OPTIONS] SRC

DESCRIPTION
Archives the directory SRC into one archive per selected format and
records every archive and its entries in the local catalog.
Entries that cannot be read are skipped with a warning.

OPTIONS
--output, -o <path>
Base path of the generated archives, the format suffix is appended.
Default is: ./<name of SRC>

--format, -f <formats>
Comma separated list of archive formats.
This argument, if provided, takes precedence over archive_formats
specified in the CONFIG.
Supported values: tar, targz, tarbz2, tarxz, tarzstd, tarlz4, zip

--mode, -m <mode>
fanout: every worker reads and appends on its own (default)
pipe:   one reader feeds a bounded queue drained by one writer

--jobs, -j <jobs>
Number of workers in fanout mode.
Defaults to the number of CPUs.

--queue, -q <size>
Queue size in pipe mode. Default: 64

--level <0-9>
Compression level, 0 selects the codec default.

--ui <ui>
Progress display: auto, tea, plain, none
Default: auto (tea on a terminal, none otherwise)

--no-catalog
Do not record the archive in the catalog.

--config, -c
Path to config.json file
Default is: ~/.config/arkiv/config.json
Use "arkiv help config" for more information on configuring arkiv.

--log-level, -L <log-level>
Specify log output level
Default: info
Accepted values (in order of increasing amount of output) -
debug, info, warn, error, silent

--color <color-mode>
Specify output color mode.
Default: auto
Accepted values: auto, always, never

SRC
Directory that should be archived

EXAMPLES
1. Create a tar.gz and a zip archive of ./photos in /backups
arkiv build -f targz,zip -o /backups/photos ./photos

2. Archive with a single writer fed by a queue of 16 entries
arkiv build -m pipe -q 16 ./photos

SEE ALSO
1. arkiv help ls
2. arkiv help show
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
