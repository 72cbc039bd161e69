package dashboard

import "os"

// DataStatus summarises which inputs are currently available.
type DataStatus struct {
	PredictionsFile  string `json:"predictions_file"`
	PredictionsFound bool   `json:"predictions_found"`
	PredictionRows   int    `json:"prediction_rows"`
	PricesDir        string `json:"prices_dir"`
	PriceFiles       int    `json:"price_files"`
	LatestReport     string `json:"latest_report,omitempty"`
}

// Status inspects the configured inputs. Missing inputs are reported, not returned as errors.
func (s *Service) Status() DataStatus {
	st := DataStatus{
		PredictionsFile: s.PredictionsFile(),
		PricesDir:       s.pricesDirLabel(),
	}

	if _, err := os.Stat(s.predictions.Path()); err == nil {
		st.PredictionsFound = true
	}
	if records, err := s.predictions.Records(); err == nil {
		st.PredictionRows = len(records)
	}
	if idx, err := s.prices.Index(); err == nil {
		st.PriceFiles = idx.Files()
	}
	if rep, err := s.reports.Latest(); err == nil {
		st.LatestReport = rep.File.Name
	}
	return st
}
