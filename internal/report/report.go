package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-value/internal/sweep"
)

func WriteJSON(res *sweep.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "sweep.json"), b, 0644)
}

func WriteCSV(res *sweep.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "sweep.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	headers := []string{"run_id", "valuation_date", "expiry", "option_type", "underlying", "spot", "strike", "time_to_expiry", "rate", "dividend_yield", "sigma", "price"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, sc := range res.Scenarios {
		row := []string{res.RunID, res.ValuationDate.String(), res.Expiry.String(), string(res.OptionType), res.Underlying, fmt.Sprintf("%.4f", res.Spot), fmt.Sprintf("%.4f", res.Strike), fmt.Sprintf("%.6f", res.TimeToExpiry), fmt.Sprintf("%.6f", res.Rate), fmt.Sprintf("%.6f", res.DividendYield), fmt.Sprintf("%.6f", sc.Sigma), fmt.Sprintf("%.6f", sc.Price)}
		_ = w.Write(row)
	}
	return nil
}
