// Package output provides utilities for formatting and displaying analysis
// results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leaseworks/lease-economics/internal/analysis"
	"github.com/leaseworks/lease-economics/pkg/datetime"
)

// PrettyFormat outputs a human-readable rather than machine-readable table:
// a deal summary, the annual cashflow lines, and the monthly rent schedule.
func PrettyFormat(econ analysis.Economics, terminationMonth int) {
	p := message.NewPrinter(language.English)

	name := econ.Name
	if name == "" {
		name = "lease"
	}
	fmt.Printf("--- Deal summary for %s ---\n", name)
	_, _ = p.Printf("Term months        | %d\n", econ.Schedule.Summary.TermMonths)
	_, _ = p.Printf("Free months        | %d\n", econ.Schedule.Summary.FreeMonths)
	_, _ = p.Printf("Total base rent    | $%.2f\n", econ.Schedule.Summary.TotalContractual)
	_, _ = p.Printf("Total net rent     | $%.2f\n", econ.Schedule.Summary.TotalNet)
	_, _ = p.Printf("Blended rate PSF   | $%.2f\n", econ.BlendedRatePSF)
	_, _ = p.Printf("Net rent NPV       | $%.2f\n", econ.RentNPV)
	_, _ = p.Printf("Total cashflow NPV | $%.2f\n", econ.CashflowNPV)
	if econ.Cashflow.FinancedPrincipal > 0 {
		_, _ = p.Printf("Financed amount    | $%.2f\n", econ.Cashflow.FinancedPrincipal)
	}
	if terminationMonth >= 0 && terminationMonth < len(econ.TerminationFees) {
		_, _ = p.Printf("Termination fee at month %d (%d months penalty) | $%.2f\n",
			terminationMonth, econ.TerminationPenaltyMonths, econ.TerminationFees[terminationMonth])
	}

	fmt.Printf("\nYear | Base Rent     | Operating     | Parking       | Abatement     | Net Cash Flow\n")
	fmt.Printf("____ | _____________ | _____________ | _____________ | _____________ | _____________\n")
	for _, line := range econ.Cashflow.Annual {
		_, _ = p.Printf("%4d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			line.Year+1, line.BaseRent, line.Operating, line.Parking,
			line.AbatementCredit, line.NetCashFlow)
	}

	fmt.Printf("\nMonth | Start      | Contractual   | Free Rent     | Net Due\n")
	fmt.Printf("_____ | __________ | _____________ | _____________ | _____________\n")
	for _, row := range econ.Schedule.Rows {
		_, _ = p.Printf("%5d | %s | $%.2f | $%.2f | $%.2f\n",
			row.Index, row.Start.Format(datetime.DateLayout),
			row.ContractualBaseRent, row.FreeRentAmount, row.NetRentDue)
	}
}

// CsvFormat outputs the monthly cashflow in comma-separated value format.
func CsvFormat(econ analysis.Economics) {
	fmt.Printf(`"month","start","end","contractual","free_rent","net_due","operating","parking","amortized","total"`)
	fmt.Printf("\n")
	for i, row := range econ.Schedule.Rows {
		var operating, parking, amortized, total float64
		if i < len(econ.Cashflow.Monthly) {
			line := econ.Cashflow.Monthly[i]
			operating = line.Operating
			parking = line.Parking
			amortized = line.Amortized
			total = line.Total
		}
		fmt.Printf(`"%d","%s","%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			row.Index, row.Start.Format(datetime.DateLayout), row.End.Format(datetime.DateLayout),
			row.ContractualBaseRent, row.FreeRentAmount, row.NetRentDue,
			operating, parking, amortized, total)
		fmt.Printf("\n")
	}
}
