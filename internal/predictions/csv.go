package predictions

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
)

// WriteCSV writes records as CSV with a Ticker,Date,ProbUp,Signal header.
// Null dates and probabilities are written as empty cells.
func WriteCSV(w io.Writer, records []models.PredictionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		date := ""
		if r.Date != nil {
			date = r.Date.Format(time.RFC3339)
		}
		prob := ""
		if r.ProbUp != nil {
			prob = strconv.FormatFloat(*r.ProbUp, 'g', -1, 64)
		}
		if err := cw.Write([]string{r.Ticker, date, prob, r.Signal}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
