package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/satoh-er/eui_calc_go/energycalc"
)

// monthlyRow is one line of a monthly_<name>.csv.
type monthlyRow struct {
	Month          string  `csv:"month"`
	SolarGain      float64 `csv:"solar_gain_w"`
	TotalGain      float64 `csv:"total_gain_w"`
	Infiltration   float64 `csv:"infiltration_ach"`
	HTC            float64 `csv:"htc_w_per_k"`
	HLP            float64 `csv:"hlp_w_per_m2k"`
	Cooling        float64 `csv:"cooling_kwh"`
	Heating        float64 `csv:"heating_kwh"`
	Emissions      float64 `csv:"co2_kg"`
	Bill           float64 `csv:"bill"`
	CoolingSavings float64 `csv:"cooling_savings_kwh,omitempty"`
	HeatingSavings float64 `csv:"heating_savings_kwh,omitempty"`
}

func monthlyRows(r *energycalc.Result) []*monthlyRow {
	rows := make([]*monthlyRow, 0, 12)
	for i, m := range energycalc.Months() {
		rows = append(rows, &monthlyRow{
			Month:        m.String(),
			SolarGain:    r.Gains.Solar.Total[i],
			TotalGain:    r.Gains.Total[i],
			Infiltration: r.Ventilation.Rate[i],
			HTC:          r.HLP.HeatTransferCoefficient[i],
			HLP:          r.HLP.HeatLossParameter[i],
			Cooling:      r.Energy.MonthlyCooling[i],
			Heating:      r.Energy.MonthlyHeating[i],
			Emissions:    r.Report.Emissions.Monthly[i],
			Bill:         r.Report.Bill.MonthlyCooling[i] + r.Report.Bill.MonthlyHeating[i],
		})
	}
	return rows
}

func writeCSV(path string, rows any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func writeJSONFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := writeJSON(file, v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("`%s` is not a directory: %w", dir, err)
	}
	return nil
}

/*
saveResult writes the result of one case.

Args

	dir output directory, created when missing
	name file stem

Notes

	<name>.json holds the whole result, monthly_<name>.csv the monthly schedules.
*/
func saveResult(dir, name string, r *energycalc.Result) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(dir, name+".json"), r); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "monthly_"+name+".csv"), monthlyRows(r))
}

// saveComparison writes comparison.json and one monthly CSV per case; the
// proposed CSV also carries the monthly savings.
func saveComparison(dir string, c *energycalc.Comparison) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(dir, "comparison.json"), c); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "monthly_base.csv"), monthlyRows(c.Base)); err != nil {
		return err
	}
	rows := monthlyRows(c.Proposed)
	for i, row := range rows {
		row.CoolingSavings = c.CoolingSavings[i]
		row.HeatingSavings = c.HeatingSavings[i]
	}
	return writeCSV(filepath.Join(dir, "monthly_proposed.csv"), rows)
}

// saveWeather writes the hourly series of a city as weather_<city>.csv.
func saveWeather(dir string, cc energycalc.CityClimate) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "weather_"+cc.Name+".csv")
	records := make([]*energycalc.WeatherRecord, len(cc.Hourly))
	for i := range cc.Hourly {
		records[i] = &cc.Hourly[i]
	}
	return path, writeCSV(path, records)
}
