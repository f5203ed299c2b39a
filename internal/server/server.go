// Package server exposes the analysis engine over HTTP: YAML lease config
// in, JSON economics out. There is no UI; presentation belongs to downstream
// consumers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/leaseworks/lease-economics/internal/analysis"
	"github.com/leaseworks/lease-economics/internal/config"
	"github.com/leaseworks/lease-economics/pkg/constants"
	"github.com/leaseworks/lease-economics/pkg/datetime"
	"github.com/leaseworks/lease-economics/pkg/validation"
)

type handler struct {
	logger        *zap.Logger
	engine        *analysis.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        analysis.NewEngine(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type analyzeResponse struct {
	Name         string         `json:"name,omitempty"`
	Summary      summaryPayload `json:"summary"`
	ScheduleRows []scheduleRow  `json:"scheduleRows"`
	AnnualLines  []annualLine   `json:"annualLines"`
	Issues       []issuePayload `json:"issues,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	Duration     string         `json:"duration"`
}

type summaryPayload struct {
	TermMonths               int     `json:"termMonths"`
	FreeMonths               int     `json:"freeMonths"`
	TotalContractual         float64 `json:"totalContractual"`
	TotalNet                 float64 `json:"totalNet"`
	BlendedRatePSF           float64 `json:"blendedRatePsf"`
	RentNPV                  float64 `json:"rentNpv"`
	CashflowNPV              float64 `json:"cashflowNpv"`
	FinancedPrincipal        float64 `json:"financedPrincipal,omitempty"`
	TerminationPenaltyMonths int     `json:"terminationPenaltyMonths"`
}

type scheduleRow struct {
	Index       int     `json:"index"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Contractual float64 `json:"contractual"`
	FreeRent    float64 `json:"freeRent"`
	NetDue      float64 `json:"netDue"`
}

type annualLine struct {
	Year             int     `json:"year"`
	BaseRent         float64 `json:"baseRent"`
	Operating        float64 `json:"operating"`
	Parking          float64 `json:"parking"`
	AbatementCredit  float64 `json:"abatementCredit"`
	TIShortfall      float64 `json:"tiShortfall"`
	TransactionCosts float64 `json:"transactionCosts"`
	AmortizedCosts   float64 `json:"amortizedCosts"`
	NetCashFlow      float64 `json:"netCashFlow"`
}

type issuePayload struct {
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(body, &conf); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse lease config: %v", err))
		return
	}

	terms, issues, err := conf.LeaseTerms()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if blockErr := config.BlockingError(issues); blockErr != nil {
		h.respondError(w, http.StatusUnprocessableEntity, blockErr.Error())
		return
	}

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

	econ := h.engine.Run(terms)

	h.logger.Debug("analysis served",
		zap.String("op", "server.handleAnalyze"),
		zap.String("lease", terms.Name),
		zap.Duration("duration", time.Since(start)),
	)
	h.respondJSON(w, http.StatusOK, buildResponse(econ, issues, warnings, time.Since(start)))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func buildResponse(econ analysis.Economics, issues []config.Issue, warnings []string, duration time.Duration) analyzeResponse {
	resp := analyzeResponse{
		Name: econ.Name,
		Summary: summaryPayload{
			TermMonths:               econ.Schedule.Summary.TermMonths,
			FreeMonths:               econ.Schedule.Summary.FreeMonths,
			TotalContractual:         econ.Schedule.Summary.TotalContractual,
			TotalNet:                 econ.Schedule.Summary.TotalNet,
			BlendedRatePSF:           econ.BlendedRatePSF,
			RentNPV:                  econ.RentNPV,
			CashflowNPV:              econ.CashflowNPV,
			FinancedPrincipal:        econ.Cashflow.FinancedPrincipal,
			TerminationPenaltyMonths: econ.TerminationPenaltyMonths,
		},
		Warnings: warnings,
		Duration: duration.String(),
	}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, issuePayload{
			Severity: string(issue.Severity),
			Field:    issue.Field,
			Message:  issue.Message,
		})
	}
	for _, row := range econ.Schedule.Rows {
		resp.ScheduleRows = append(resp.ScheduleRows, scheduleRow{
			Index:       row.Index,
			Start:       row.Start.Format(datetime.DateLayout),
			End:         row.End.Format(datetime.DateLayout),
			Contractual: row.ContractualBaseRent,
			FreeRent:    row.FreeRentAmount,
			NetDue:      row.NetRentDue,
		})
	}
	for _, line := range econ.Cashflow.Annual {
		resp.AnnualLines = append(resp.AnnualLines, annualLine{
			Year:             line.Year,
			BaseRent:         line.BaseRent,
			Operating:        line.Operating,
			Parking:          line.Parking,
			AbatementCredit:  line.AbatementCredit,
			TIShortfall:      line.TIShortfall,
			TransactionCosts: line.TransactionCosts,
			AmortizedCosts:   line.AmortizedCosts,
			NetCashFlow:      line.NetCashFlow,
		})
	}
	return resp
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
