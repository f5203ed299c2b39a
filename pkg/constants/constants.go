// Package constants provides shared constants for the lease-economics engine.
package constants

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Lease calculation constants
const (
	// DefaultTerminationPenaltyMonths is the number of months of rent charged
	// as a termination penalty when neither an override nor a termination
	// option supplies one.
	DefaultTerminationPenaltyMonths = 6

	// FreeRentSearchCapMonths caps the inverse free-rent equivalency search.
	FreeRentSearchCapMonths = 18
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "lease.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML
	// lease configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
