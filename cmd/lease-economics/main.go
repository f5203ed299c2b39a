package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leaseworks/lease-economics/internal/analysis"
	"github.com/leaseworks/lease-economics/internal/config"
	"github.com/leaseworks/lease-economics/internal/server"
	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/output"
	"github.com/leaseworks/lease-economics/pkg/validation"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to lease configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	listen := flag.String("listen", "", "run the HTTP API on this address instead of a one-shot analysis")
	terminationMonth := flag.Int("termination-month", -1, "lease month to quote a termination fee for in the summary")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *listen != "" {
		logger.Info("starting analysis API",
			zap.String("op", "main"),
			zap.String("address", *listen),
		)
		handler := server.NewHandler(logger, constants.DefaultMaxUploadSizeBytes, version)
		if err := http.ListenAndServe(*listen, handler); err != nil {
			logger.Fatal("server exited",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Convert and normalize the lease terms.
	terms, issues, err := conf.LeaseTerms()
	if err != nil {
		logger.Fatal("failed to convert lease terms",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, issue := range issues {
		if issue.Severity == config.SeverityError {
			continue // surfaced by the blocking assertion below
		}
		logger.Warn("Lease term issue: "+issue.Message,
			zap.String("op", "main"),
			zap.String("field", issue.Field),
		)
	}
	if err := config.BlockingError(issues); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate terms and display any warnings
	warnings := validation.LeaseCheck{
		Name:                terms.Name,
		RSF:                 terms.RSF,
		TermMonths:          terms.TermMonths,
		AbatementMonths:     terms.Abatement.MonthsAtCommencement,
		DiscountRatePercent: terms.DiscountRatePercent,
		OpexCapPercent:      terms.Operating.Escalation.CapPercent,
		TIAllowancePSF:      terms.OneTime.TIAllowancePSF,
		ActualBuildCostPSF:  terms.OneTime.ActualBuildCostPSF,
	}.Warnings()
	for _, warning := range warnings {
		logger.Warn("Lease warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the analysis.
	engine := analysis.NewEngine(logger)
	econ := engine.Run(terms)

	quoteMonth := *terminationMonth
	if quoteMonth < 0 && conf.Output.TerminationMonth > 0 {
		quoteMonth = conf.Output.TerminationMonth
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(econ, quoteMonth)
	case constants.OutputFormatCSV:
		output.CsvFormat(econ)
	}
}
