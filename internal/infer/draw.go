package infer

// Draw is one recorded step of a run, streamed to the caller as it happens.
// Monte Carlo algorithms set Accepted; variational algorithms set ELBO.
type Draw struct {
	Iter     int       `json:"iter"`
	Z        []float64 `json:"z"`
	LogProb  float64   `json:"log_prob"`
	Accepted bool      `json:"accepted,omitempty"`
	ELBO     float64   `json:"elbo,omitempty"`
}

// Summary aggregates a finished run. Mean/Std/quantiles are per latent
// coordinate. AcceptRate is set by samplers, ELBO by variational fits, and
// LogProb by point estimators.
type Summary struct {
	Algorithm  string    `json:"algorithm"`
	Iterations int       `json:"iterations"`
	Draws      int       `json:"draws"`
	AcceptRate float64   `json:"accept_rate,omitempty"`
	ELBO       float64   `json:"elbo,omitempty"`
	LogProb    float64   `json:"log_prob,omitempty"`
	Mean       []float64 `json:"mean"`
	Std        []float64 `json:"std"`
	Q05        []float64 `json:"q05,omitempty"`
	Q50        []float64 `json:"q50,omitempty"`
	Q95        []float64 `json:"q95,omitempty"`
}
