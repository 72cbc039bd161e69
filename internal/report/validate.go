package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/go-playground/validator/v10"
)

// Issue describes a suspicious value in the class metrics table.
// Issues are informational; the table is shown as parsed.
type Issue struct {
	Row     int    `json:"row"`
	Label   string `json:"label"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s / %s: %s", i.Label, i.Column, i.Message)
}

// Metric columns of the class table.
const (
	ColPrecision = "precision"
	ColRecall    = "recall"
	ColF1        = "f1-score"
	ColSupport   = "support"
)

// classRow holds the numeric cells of one table row.
type classRow struct {
	Precision *float64 `validate:"omitempty,gte=0,lte=1"`
	Recall    *float64 `validate:"omitempty,gte=0,lte=1"`
	F1        *float64 `validate:"omitempty,gte=0,lte=1"`
	Support   *float64 `validate:"omitempty,gte=0"`
}

var rowColumns = map[string]string{
	"Precision": ColPrecision,
	"Recall":    ColRecall,
	"F1":        ColF1,
	"Support":   ColSupport,
}

var validate = validator.New()

// Validate checks the metric cells of every row: scores must lie in [0,1]
// and support must be a non-negative integer. Blank cells are allowed.
func Validate(table *models.ClassTable) []Issue {
	if table == nil {
		return nil
	}

	var issues []Issue
	for i := range table.Rows {
		label := table.Label(i)
		var row classRow
		targets := map[string]**float64{
			ColPrecision: &row.Precision,
			ColRecall:    &row.Recall,
			ColF1:        &row.F1,
			ColSupport:   &row.Support,
		}
		for _, col := range []string{ColPrecision, ColRecall, ColF1, ColSupport} {
			if table.ColumnIndex(col) < 0 || table.Cell(i, col) == "" {
				continue
			}
			v := table.Float(i, col)
			if v == nil {
				issues = append(issues, Issue{Row: i, Label: label, Column: col, Message: fmt.Sprintf("not a number: %q", table.Cell(i, col))})
				continue
			}
			*targets[col] = v
		}

		if err := validate.Struct(row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					col := rowColumns[fe.Field()]
					issues = append(issues, Issue{Row: i, Label: label, Column: col, Message: rangeMessage(col)})
				}
			}
		}

		if row.Support != nil && *row.Support >= 0 && *row.Support != math.Trunc(*row.Support) {
			issues = append(issues, Issue{Row: i, Label: label, Column: ColSupport, Message: "support is not a whole number"})
		}
	}
	return issues
}

func rangeMessage(col string) string {
	if col == ColSupport {
		return "support is negative"
	}
	return col + " is outside [0, 1]"
}
