package normalize

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/dailybrief/core"
)

// Forecast table columns.
const (
	ColTime      = "Time"
	ColTemp      = "Temp"
	ColFeels     = "Feels"
	ColRainPct   = "Rain %"
	ColRainMM    = "Rain mm"
	ColCondition = "Condition"
)

// Condition labels derived from the precipitation amount.
const (
	ConditionRain  = "Rain"
	ConditionClear = "Clear/Cloudy"
)

// rainThresholdMM is the hourly precipitation above which an hour is "Rain".
const rainThresholdMM = 0.1

const missingValue = "-"

var forecastColumns = []string{ColTime, ColTemp, ColFeels, ColRainPct, ColRainMM, ColCondition}

// forecastPayload is the subset of an Open-Meteo hourly forecast we read.
// Values are pointers because the API reports missing hours as null.
type forecastPayload struct {
	Hourly *struct {
		Time                     []string   `json:"time"`
		Temperature              []*float64 `json:"temperature_2m"`
		ApparentTemperature      []*float64 `json:"apparent_temperature"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		Precipitation            []*float64 `json:"precipitation"`
	} `json:"hourly"`
}

// Weather normalizes an hourly forecast made of parallel time series.
type Weather struct {
	Hours int // <= 0 keeps every hour
}

// NewWeather creates a Weather normalizer covering the next hours entries.
func NewWeather(hours int) *Weather {
	return &Weather{Hours: hours}
}

// Normalize zips the forecast series positionally, stopping at the shortest one.
func (w *Weather) Normalize(raw []byte) core.Result[core.Table] {
	var p forecastPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return core.EmptyTable(fmt.Sprintf("decoding forecast: %v", err))
	}
	if p.Hourly == nil {
		return core.EmptyTable("forecast has no hourly section")
	}
	h := p.Hourly

	n := min(len(h.Time), len(h.Temperature), len(h.ApparentTemperature),
		len(h.PrecipitationProbability), len(h.Precipitation))
	if w.Hours > 0 {
		n = min(n, w.Hours)
	}
	if n == 0 {
		return core.EmptyTable("forecast series are empty")
	}

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{
			hourLabel(h.Time[i]),
			unit(h.Temperature[i], "%.1f°C"),
			unit(h.ApparentTemperature[i], "%.1f°C"),
			unit(h.PrecipitationProbability[i], "%.0f%%"),
			unit(h.Precipitation[i], "%.1f mm"),
			Condition(h.Precipitation[i]),
		})
	}
	return core.OK(core.NewTable(forecastColumns, rows))
}

// Condition labels an hour by its precipitation amount in millimetres.
// A missing amount counts as dry.
func Condition(precipMM *float64) string {
	if precipMM != nil && *precipMM > rainThresholdMM {
		return ConditionRain
	}
	return ConditionClear
}

// hourLabel shortens an ISO8601 local timestamp to HH:MM.
func hourLabel(ts string) string {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("15:04")
		}
	}
	return ts
}

func unit(v *float64, layout string) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf(layout, *v)
}
