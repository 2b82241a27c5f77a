package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	DebugLog   *log.Logger
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	// Global config reference
	globalConfig *LogConfig

	// Plugin loggers map (plugin name -> loggers)
	pluginLoggers map[string]*PluginLoggers
)

// LogConfig holds logging configuration
type LogConfig struct {
	LogsEnabled   bool
	LogsDir       string
	LogMaxSize    int
	LogMaxFiles   int
	LogMaxAge     int
	LogCompress   bool
	Debug         bool
	UsePluginLogs bool
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogsEnabled:   true,
		LogsDir:       "",
		LogMaxSize:    10, // 10MB
		LogMaxFiles:   5,  // 5 backups
		LogMaxAge:     30, // 30 days
		LogCompress:   true,
		Debug:         false,
		UsePluginLogs: true,
	}
}

// Default log directory and filename
var logFileName = filepath.Join(os.TempDir(), "termchat.log")

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".termchat"), nil
}

// GetLogDir returns the directory where logs should be stored
func GetLogDir(cfg *LogConfig) (string, error) {
	if cfg != nil && !cfg.LogsEnabled {
		return os.TempDir(), nil
	}

	if cfg != nil && cfg.LogsDir != "" {
		return cfg.LogsDir, nil
	}

	// Otherwise use ~/.termchat/logs/
	configDir, err := GetConfigDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get config directory: %w", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}

	return logDir, nil
}

// GetLogFilePath returns the full path to the log file
func GetLogFilePath(cfg *LogConfig) (string, error) {
	logDir, err := GetLogDir(cfg)
	if err != nil {
		return logFileName, err
	}

	return filepath.Join(logDir, "termchat.log"), nil
}

// GetPluginLogFilePath returns the full path to a plugin-specific log file
func GetPluginLogFilePath(cfg *LogConfig, plugin string) (string, error) {
	logDir, err := GetLogDir(cfg)
	if err != nil {
		return "", err
	}

	// Plugin names come from script file names; keep them filename safe.
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, plugin)

	return filepath.Join(logDir, fmt.Sprintf("plugin_%s.log", safeName)), nil
}

// GetPluginLoggers creates or retrieves loggers for a specific plugin.
// It returns nil loggers when plugin logs are disabled.
func GetPluginLoggers(plugin string) (*PluginLoggers, error) {
	if loggers, exists := pluginLoggers[plugin]; exists {
		return loggers, nil
	}

	if globalConfig == nil || !globalConfig.UsePluginLogs {
		return nil, nil
	}

	logFilePath, err := GetPluginLogFilePath(globalConfig, plugin)
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin log file path: %w", err)
	}

	writer := createRotatingWriter(logFilePath, globalConfig)

	loggers := &PluginLoggers{
		DebugLog:   log.New(writer, fmt.Sprintf("[%s] DEBUG: ", plugin), log.Ldate|log.Ltime),
		InfoLog:    log.New(writer, fmt.Sprintf("[%s] INFO: ", plugin), log.Ldate|log.Ltime),
		WarningLog: log.New(writer, fmt.Sprintf("[%s] WARNING: ", plugin), log.Ldate|log.Ltime),
		ErrorLog:   log.New(writer, fmt.Sprintf("[%s] ERROR: ", plugin), log.Ldate|log.Ltime),
	}

	if closer, ok := writer.(io.Closer); ok {
		loggers.LogFile = closer
	}

	pluginLoggers[plugin] = loggers

	return loggers, nil
}

// LogForPlugin logs a message on behalf of a plugin. The message always goes
// to the global log with a plugin prefix, and additionally to the plugin's own
// file when plugin logs are enabled. Level is one of debug, info, warning, error.
func LogForPlugin(plugin, level, format string, v ...interface{}) {
	prefixed := fmt.Sprintf("[%s] %s", plugin, format)
	global := loggerForLevel(level)
	if global == nil {
		ErrorLog.Printf("unknown log level %q from plugin %s", level, plugin)
		return
	}

	loggers, err := GetPluginLoggers(plugin)
	if err != nil {
		ErrorLog.Printf("Failed to get plugin loggers for %s: %v", plugin, err)
	}
	if loggers != nil {
		switch level {
		case "debug":
			if globalConfig != nil && globalConfig.Debug {
				loggers.DebugLog.Printf(format, v...)
			}
		case "info":
			loggers.InfoLog.Printf(format, v...)
		case "warning":
			loggers.WarningLog.Printf(format, v...)
		case "error":
			loggers.ErrorLog.Printf(format, v...)
		}
	}

	global.Printf(prefixed, v...)
}

func loggerForLevel(level string) *log.Logger {
	switch level {
	case "debug":
		return DebugLog
	case "info":
		return InfoLog
	case "warning":
		return WarningLog
	case "error":
		return ErrorLog
	}
	return nil
}

var globalLogFile io.WriteCloser

// PluginLoggers holds the loggers for a specific plugin
type PluginLoggers struct {
	DebugLog   *log.Logger
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger
	LogFile    io.Closer
}

func init() {
	pluginLoggers = make(map[string]*PluginLoggers)

	// Defaults so that log calls in tests don't panic before Initialize.
	if DebugLog == nil {
		DebugLog = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime)
	}
	if InfoLog == nil {
		InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	}
	if WarningLog == nil {
		WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	}
	if ErrorLog == nil {
		ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	}
}

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. It sets the go log output to the file in
// the configured log directory (default: ~/.termchat/logs/).
func Initialize(debug bool) {
	cfg := DefaultLogConfig()
	cfg.Debug = debug
	initializeWithConfig(cfg)
}

// InitializeWithConfig sets up logging with the provided configuration.
func InitializeWithConfig(cfg *LogConfig) {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}
	initializeWithConfig(cfg)
}

// createRotatingWriter creates a writer that handles log rotation based on config
func createRotatingWriter(logFilePath string, cfg *LogConfig) io.Writer {
	if cfg == nil || cfg.LogMaxSize <= 0 {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			panic(fmt.Sprintf("could not create log directory: %s", err))
		}

		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic(fmt.Sprintf("could not open log file: %s", err))
		}
		return f
	}

	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.LogMaxSize,  // megabytes
		MaxBackups: cfg.LogMaxFiles, // number of backups
		MaxAge:     cfg.LogMaxAge,   // days
		Compress:   cfg.LogCompress, // compress rotated files
		LocalTime:  true,
	}
}

func initializeWithConfig(cfg *LogConfig) {
	globalConfig = cfg
	logFilePath, err := GetLogFilePath(cfg)
	if err != nil {
		fmt.Printf("Warning: Using default log file location due to error: %v\n", err)
		logFilePath = logFileName
	}

	writer := createRotatingWriter(logFilePath, cfg)

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debugWriter := io.Discard
	if cfg.Debug {
		debugWriter = writer
	}
	DebugLog = log.New(debugWriter, "DEBUG:", log.Ldate|log.Ltime|log.Lshortfile)
	InfoLog = log.New(writer, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(writer, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(writer, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)

	if closer, ok := writer.(io.WriteCloser); ok {
		globalLogFile = closer
	}

	logFileName = logFilePath
}

// Close flushes and closes every log file opened by Initialize and
// GetPluginLoggers.
func Close() {
	if globalLogFile != nil {
		_ = globalLogFile.Close()
	}

	for name, loggers := range pluginLoggers {
		if loggers.LogFile != nil {
			_ = loggers.LogFile.Close()
		}
		delete(pluginLoggers, name)
	}

	fmt.Println("wrote logs to " + logFileName)
}

// Every is used to log at most once every timeout duration.
type Every struct {
	timeout time.Duration
	timer   *time.Timer
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	if e.timer == nil {
		e.timer = time.NewTimer(e.timeout)
		return true
	}

	select {
	case <-e.timer.C:
		e.timer.Reset(e.timeout)
		return true
	default:
		return false
	}
}
