// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing, and converting lease terms.
package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/leaseworks/lease-economics/pkg/constants"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for lease-economics.
type Configuration struct {
	Lease   LeaseConfig   `yaml:"lease"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
	// TerminationMonth, when positive, requests the termination fee at that
	// lease month in the summary output.
	TerminationMonth int `yaml:"terminationMonth,omitempty"`
}

// LeaseConfig is the file-facing shape of the lease terms; dates are strings
// in DateLayout and are converted by LeaseTerms(). The yaml tags carry the
// camelCase document keys for yaml.v3 consumers (the HTTP API); viper matches
// field names case-insensitively and ignores them.
type LeaseConfig struct {
	Name                 string             `yaml:"name,omitempty"`
	CommencementDate     string             `yaml:"commencementDate,omitempty"`
	ExpirationDate       string             `yaml:"expirationDate,omitempty"`
	TermMonths           int                `yaml:"termMonths,omitempty"`
	RSF                  float64            `yaml:"rsf,omitempty"`
	BaseRatePSF          float64            `yaml:"baseRatePSF,omitempty"`
	PaymentTiming        string             `yaml:"paymentTiming,omitempty"` // advance, arrears
	RoundCents           bool               `yaml:"roundCents,omitempty"`
	DiscountRatePercent  float64            `yaml:"discountRatePercent,omitempty"`
	RentEscalation       EscalationConfig   `yaml:"rentEscalation,omitempty"`
	Abatement            AbatementConfig    `yaml:"abatement,omitempty"`
	Operating            OperatingConfig    `yaml:"operating,omitempty"`
	Parking              ParkingConfig      `yaml:"parking,omitempty"`
	OneTime              OneTimeConfig      `yaml:"oneTime,omitempty"`
	Financing            FinancingConfig    `yaml:"financing,omitempty"`
	Termination          *TerminationConfig `yaml:"termination,omitempty"`
	OtherRecurringAnnual float64            `yaml:"otherRecurringAnnual,omitempty"`
}

// EscalationConfig is the file-facing escalation block, shared by rent and
// operating expense.
type EscalationConfig struct {
	Mode       string                   `yaml:"mode,omitempty"` // none, fixed_percent, fixed_amount, custom
	Rate       float64                  `yaml:"rate,omitempty"`
	Amount     float64                  `yaml:"amount,omitempty"`
	CapPercent float64                  `yaml:"capPercent,omitempty"`
	Periods    []EscalationPeriodConfig `yaml:"periods,omitempty"`
}

// EscalationPeriodConfig is one custom escalation table entry.
type EscalationPeriodConfig struct {
	PeriodStart          string  `yaml:"periodStart,omitempty"`
	PeriodEnd            string  `yaml:"periodEnd,omitempty"`
	EscalationPercentage float64 `yaml:"escalationPercentage,omitempty"`
}

// AbatementConfig is the file-facing free-rent block.
type AbatementConfig struct {
	MonthsAtCommencement int                     `yaml:"monthsAtCommencement,omitempty"`
	AppliesTo            string                  `yaml:"appliesTo,omitempty"` // base_only, base_plus_nnn
	Periods              []AbatementPeriodConfig `yaml:"periods,omitempty"`
}

// AbatementPeriodConfig is one explicit abatement window.
type AbatementPeriodConfig struct {
	PeriodStart    string `yaml:"periodStart,omitempty"`
	PeriodEnd      string `yaml:"periodEnd,omitempty"`
	FreeRentMonths int    `yaml:"freeRentMonths,omitempty"`
	AppliesTo      string `yaml:"appliesTo,omitempty"`
}

// OperatingConfig is the file-facing operating-expense block.
type OperatingConfig struct {
	LeaseType                          string           `yaml:"leaseType,omitempty"` // full_service, triple_net
	BaseRatePSF                        float64          `yaml:"baseRatePSF,omitempty"`
	BaseYearOffset                     int              `yaml:"baseYearOffset,omitempty"`
	Escalation                         EscalationConfig `yaml:"escalation,omitempty"`
	ManualPassthroughPSF               float64          `yaml:"manualPassthroughPSF,omitempty"`
	ManualPassthroughEscalationPercent float64          `yaml:"manualPassthroughEscalationPercent,omitempty"`
}

// ParkingConfig is the file-facing parking block.
type ParkingConfig struct {
	Spaces              int     `yaml:"spaces,omitempty"`
	MonthlyCostPerSpace float64 `yaml:"monthlyCostPerSpace,omitempty"`
	EscalationPercent   float64 `yaml:"escalationPercent,omitempty"`
}

// OneTimeConfig holds one-time transaction figures.
type OneTimeConfig struct {
	TIAllowancePSF     float64 `yaml:"tiAllowancePSF,omitempty"`
	ActualBuildCostPSF float64 `yaml:"actualBuildCostPSF,omitempty"`
	TransactionCosts   float64 `yaml:"transactionCosts,omitempty"`
}

// FinancingConfig flags which concessions are amortized.
type FinancingConfig struct {
	FinanceTIAllowance      bool    `yaml:"financeTIAllowance,omitempty"`
	FinanceFreeRent         bool    `yaml:"financeFreeRent,omitempty"`
	FinanceTransactionCosts bool    `yaml:"financeTransactionCosts,omitempty"`
	AnnualRatePercent       float64 `yaml:"annualRatePercent,omitempty"`
	Method                  string  `yaml:"method,omitempty"` // level, straight_line
}

// TerminationConfig describes a termination option.
type TerminationConfig struct {
	FeeMonths int `yaml:"feeMonths,omitempty"`
}

// dateToString converts YAML timestamp scalars back into DateLayout strings.
// Unquoted dates like 2026-03-01 resolve to time.Time during config reading;
// the file-facing structs keep string date fields, so decoding needs this
// hook.
func dateToString() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from == reflect.TypeOf(time.Time{}) && to.Kind() == reflect.String {
			return data.(time.Time).Format(DateLayout), nil
		}
		return data, nil
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		dateToString(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
