package dashboard

import (
	"errors"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/report"
)

// ScalarView is a summary metric formatted for display.
type ScalarView struct {
	Name  string
	Value string
}

// ClassificationView is the Classification Area tab.
type ClassificationView struct {
	Warning      string
	ReportName   string
	ReportAge    string
	ReportSize   string
	ClassTable   *models.ClassTable
	TableInfo    string
	Issues       []report.Issue
	Scalars      []ScalarView
	ScalarInfo   string
	Features     []models.FeatureImportance
	FeatureInfo  string
	DownloadName string
}

// Report returns the latest parsed report.
func (s *Service) Report() (*report.Report, error) {
	return s.reports.Latest()
}

// Classification builds the classification tab from the latest report.
func (s *Service) Classification() ClassificationView {
	var view ClassificationView

	rep, err := s.reports.Latest()
	switch {
	case errors.Is(err, report.ErrNoReportDir):
		view.Warning = "Reports folder not found. Expected a 'reports/' directory."
		return view
	case errors.Is(err, report.ErrNoReports):
		view.Warning = "No classification report files found."
		return view
	case err != nil:
		s.logger.Error().Str("error", err.Error()).Msg("failed to load classification report")
		view.Warning = "The latest classification report could not be read."
		return view
	}

	view.ReportName = rep.File.Name
	view.DownloadName = rep.File.Name
	view.ReportAge = common.FormatAge(rep.File.Timestamp)
	view.ReportSize = common.FormatBytes(int64(len(rep.Raw)))

	m := rep.Metrics
	if m.ClassTable != nil {
		view.ClassTable = m.ClassTable
		view.Issues = rep.Issues
	} else {
		view.TableInfo = "Classification metrics table not detected in report text."
	}

	if len(m.Scalars) > 0 {
		for _, sc := range m.Scalars {
			v := sc.Value
			view.Scalars = append(view.Scalars, ScalarView{Name: sc.Name, Value: common.FormatDecimal(&v, 3)})
		}
	} else {
		view.ScalarInfo = "No scalar summary metrics (ROC-AUC/Accuracy/Precision/Recall) found in report."
	}

	if len(m.FeatureImportances) > 0 {
		view.Features = m.FeatureImportances
	} else {
		view.FeatureInfo = "No feature importances section found or it was empty."
	}
	return view
}
