package refdata

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/satoh-er/eui_calc_go/energycalc"
)

// Hours of a non-leap year; every series must have exactly this many rows.
const HoursPerYear = 8760

/*
LoadWeatherDir reads the hourly outdoor temperature series of a directory.

Args

	dir directory holding one <City>.csv per city with the columns MO, DY, HR, T2M

Returns

	series keyed by city name (file name without extension)
*/
func LoadWeatherDir(dir string) (map[string][]energycalc.WeatherRecord, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("weather directory %s: %w", dir, err)
	}
	return loadWeatherFS(os.DirFS(dir), ".")
}

func loadWeatherFS(fsys fs.FS, dir string) (map[string][]energycalc.WeatherRecord, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := map[string][]energycalc.WeatherRecord{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".csv" {
			continue
		}
		city := strings.TrimSuffix(e.Name(), ".csv")
		records, err := readWeather(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", city, err)
		}
		out[key(city)] = records
	}
	return out, nil
}

func readWeather(fsys fs.FS, name string) ([]energycalc.WeatherRecord, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []energycalc.WeatherRecord
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		return nil, err
	}
	if err := ValidateWeather(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ValidateWeather checks the row count and the month and hour ranges of a series.
func ValidateWeather(rows []energycalc.WeatherRecord) error {
	if len(rows) != HoursPerYear {
		return fmt.Errorf("%d rows, want %d: %w", len(rows), HoursPerYear, ErrInvalidWeather)
	}
	for i, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("row %d: month %d: %w", i+1, r.Month, ErrInvalidWeather)
		}
		if r.Hour < 0 || r.Hour > 23 {
			return fmt.Errorf("row %d: hour %d: %w", i+1, r.Hour, ErrInvalidWeather)
		}
	}
	return nil
}
