package L

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NOTE: populated at build time with -ldflags (-X)
var printCallerLocation string

// log levels
type LogLevel byte

const (
	DEBUG LogLevel = iota
	INFO
	NORMAL
	WARN
	ERROR
	PANIC
	SILENT
)

// color modes
type ColorMode int

const (
	COLOR_MODE_AUTO ColorMode = iota
	COLOR_MODE_ALWAYS
	COLOR_MODE_NEVER
)

// styles
// debug - blue
var debugStyle = lipgloss.NewStyle().Padding(0).Margin(0).
	Foreground(lipgloss.Color("4"))

// info - green
var infoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("2"))

// no color - normal
var noColorStyle = lipgloss.NewStyle()

// warn - yellow
var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("3"))

// error,panic - red
var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("1"))

// prefixes
const (
	debugPrefix  string = "DBG  "
	infoPrefix   string = "INF  "
	normalPrefix string = "     "
	warnPrefix   string = "WRN  "
	errorPrefix  string = "ERR  "
	panicPrefix  string = "PNC  "
)

var (
	level                  = INFO
	colorMode              = COLOR_MODE_AUTO
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
	debugLogger            = log.New(stdout, colorize(debugPrefix, &debugStyle), log.Lmsgprefix)
	infoLogger             = log.New(stdout, colorize(infoPrefix, &infoStyle), log.Lmsgprefix)
	normalLogger           = log.New(stdout, colorize(normalPrefix, &noColorStyle), log.Lmsgprefix)
	warnLogger             = log.New(stderr, colorize(warnPrefix, &warnStyle), log.Lmsgprefix)
	errorLogger            = log.New(stderr, colorize(errorPrefix, &errorStyle), log.Lmsgprefix)
	panicLogger            = log.New(stderr, colorize(panicPrefix, &errorStyle), log.Lmsgprefix)
	footerMutex            = &sync.Mutex{}
	footerText             = ""
	footerLines            = 0
	footerLevel            = INFO
	printHook    func(string)
)

// cursor sequences
const (
	c_escape     string = "\x1B"
	c_clear_line string = c_escape + "[2K"
	c_up         string = c_escape + "[1A"
)

// exported cursor sequences for callers drawing their own lines
const (
	C_CLEAR_LINE string = "\r" + c_clear_line
	C_SAVE       string = c_escape + "7"
	C_RESTORE    string = c_escape + "8"
)

func SetLevelFromString(l string) error {
	switch strings.ToLower(l) {
	case "debug":
		level = DEBUG
	case "info":
		level = INFO
	case "warn":
		level = WARN
	case "error":
		level = ERROR
	case "panic":
		level = PANIC
	case "silent":
		level = SILENT
	default:
		return fmt.Errorf("unsupported log level: %s", l)
	}
	return nil
}

func SetLevel(l LogLevel) error {
	switch l {
	case DEBUG, INFO, WARN, ERROR, PANIC, SILENT:
		level = l
	default:
		return fmt.Errorf("unsupported log level: %d", l)
	}
	return nil
}

func SetColorModeFromString(colorModeStr string) error {
	switch strings.ToLower(colorModeStr) {
	case "always":
		colorMode = COLOR_MODE_ALWAYS
	case "never":
		colorMode = COLOR_MODE_NEVER
	case "auto":
		colorMode = COLOR_MODE_AUTO
	default:
		return fmt.Errorf("unsupported color mode: %s", colorModeStr)
	}
	updateLoggerPrefixColors()
	return nil
}

func SetColorMode(cm ColorMode) error {
	switch cm {
	case COLOR_MODE_ALWAYS, COLOR_MODE_NEVER, COLOR_MODE_AUTO:
		colorMode = cm
	default:
		return fmt.Errorf("unsupported color mode: %s", cm)
	}
	updateLoggerPrefixColors()
	return nil
}

func (cm ColorMode) String() string {
	switch cm {
	case COLOR_MODE_ALWAYS:
		return "always"
	case COLOR_MODE_NEVER:
		return "never"
	case COLOR_MODE_AUTO:
		return "auto"
	default:
		return "auto"
	}
}

// SetPrintHook routes every log line to fn instead of the terminal.
// Passing nil restores direct output.
func SetPrintHook(fn func(string)) {
	footerMutex.Lock()
	defer footerMutex.Unlock()
	printHook = fn
}

// SetOutput replaces the stdout/stderr writers, used by tests.
func SetOutput(out io.Writer, errOut io.Writer) {
	footerMutex.Lock()
	defer footerMutex.Unlock()
	stdout = out
	stderr = errOut
	rebuildLoggers()
}

func Debug(v ...any) {
	if level <= DEBUG {
		if printCallerLocation == "true" {
			emit(func() { printWithCallerLocation(debugLogger, &debugStyle, sprint(v...)) })
		} else {
			emit(func() { printMultiline(debugLogger, &debugStyle, sprint(v...)) })
		}
	}
}

func Info(v ...any) {
	if level <= INFO {
		emit(func() { printMultiline(infoLogger, &infoStyle, sprint(v...)) })
	}
}

func Warn(v ...any) {
	if level <= WARN {
		emit(func() { printMultiline(warnLogger, &warnStyle, sprint(v...)) })
	}
}

func Error(v ...any) {
	if level <= ERROR {
		if printCallerLocation == "true" {
			emit(func() { printWithCallerLocation(errorLogger, &errorStyle, sprint(v...)) })
		} else {
			emit(func() { printMultiline(errorLogger, &errorStyle, sprint(v...)) })
		}
	}
}

func Panic(v ...any) {
	emit(func() { printMultiline(panicLogger, &errorStyle, sprint(v...)) })
	os.Exit(1)
}

func GetLogLevel() LogLevel {
	return level
}

func IsVerbose() bool {
	return level < INFO
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case PANIC:
		return "panic"
	case SILENT:
		return "silent"
	default:
		return "Unknown log level, indicates a bug. Please report"
	}
}

func Printf(format string, v ...any) (int, error) {
	if level < SILENT {
		return printRaw(fmt.Sprintf(format, v...)), nil
	}
	return 0, nil
}

func Print(a ...any) (int, error) {
	if level < SILENT {
		return printRaw(fmt.Sprint(a...)), nil
	}
	return 0, nil
}

func Println(a ...any) (int, error) {
	if level < SILENT {
		return printRaw(fmt.Sprintln(a...)), nil
	}
	return 0, nil
}

// prints a persistent string "s" at the bottom of the terminal output.
// previous "footer" is cleared before each log and reprinted after.
// passing "s" as an empty string removes the footer.
func Footer(l LogLevel, s string) {
	footerMutex.Lock()
	defer footerMutex.Unlock()

	clearFooter()
	footerText = strings.TrimRight(s, "\n")
	footerLevel = l
	footerLines = printFooter()
}

// emit runs print with the footer temporarily removed.
func emit(print func()) {
	footerMutex.Lock()
	defer footerMutex.Unlock()
	clearFooter()
	print()
	footerLines = printFooter()
}

func sprint(v ...any) string {
	if len(v) == 0 {
		return ""
	}
	if format, ok := v[0].(string); ok && len(v) > 1 && strings.Contains(format, "%") {
		return fmt.Sprintf(format, v[1:]...)
	}
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}

func printRaw(s string) int {
	footerMutex.Lock()
	defer footerMutex.Unlock()
	if printHook != nil {
		printHook(strings.TrimSuffix(s, "\n"))
		return len(s)
	}
	clearFooter()
	n, _ := io.WriteString(stdout, s)
	footerLines = printFooter()
	return n
}

func printMultiline(logger *log.Logger, style *lipgloss.Style, s string) int {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	n := 0
	for _, line := range lines {
		if printHook != nil {
			printHook(logger.Prefix() + line)
		} else {
			logger.Print(line)
		}
		n += len(line)
	}
	return n
}

func printWithCallerLocation(logger *log.Logger, style *lipgloss.Style, s string) int {
	// emit -> closure -> this
	_, file, line, ok := runtime.Caller(3)
	if ok {
		s = fmt.Sprintf("%s:%d %s", file, line, s)
	}
	return printMultiline(logger, style, s)
}

// must be called with footerMutex held
func clearFooter() {
	if footerLines == 0 || printHook != nil {
		return
	}
	var sb strings.Builder
	for range footerLines {
		sb.WriteString(c_up)
		sb.WriteString(c_clear_line)
	}
	sb.WriteString("\r")
	io.WriteString(stdout, sb.String())
	footerLines = 0
}

// must be called with footerMutex held, returns number of lines printed
func printFooter() int {
	if footerText == "" || level > footerLevel || printHook != nil {
		return 0
	}
	io.WriteString(stdout, footerText+"\n")
	return strings.Count(footerText, "\n") + 1
}

func colorize(s string, style *lipgloss.Style) string {
	if colorMode == COLOR_MODE_NEVER {
		return s
	}
	return style.Render(s)
}

func updateLoggerPrefixColors() {
	switch colorMode {
	case COLOR_MODE_NEVER:
		lipgloss.SetColorProfile(termenv.Ascii)
	case COLOR_MODE_ALWAYS:
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
	footerMutex.Lock()
	defer footerMutex.Unlock()
	rebuildLoggers()
}

// must be called with footerMutex held
func rebuildLoggers() {
	debugLogger = log.New(stdout, colorize(debugPrefix, &debugStyle), log.Lmsgprefix)
	infoLogger = log.New(stdout, colorize(infoPrefix, &infoStyle), log.Lmsgprefix)
	normalLogger = log.New(stdout, colorize(normalPrefix, &noColorStyle), log.Lmsgprefix)
	warnLogger = log.New(stderr, colorize(warnPrefix, &warnStyle), log.Lmsgprefix)
	errorLogger = log.New(stderr, colorize(errorPrefix, &errorStyle), log.Lmsgprefix)
	panicLogger = log.New(stderr, colorize(panicPrefix, &errorStyle), log.Lmsgprefix)
}
