package model

import "math"

const log2Pi = 1.8378770664093453

// normLogPdf is the log density of N(mean, std) at x.
func normLogPdf(x, mean, std float64) float64 {
	d := (x - mean) / std
	return -0.5*log2Pi - math.Log(std) - 0.5*d*d
}

// normalMean is the "normal" family: iid normal observations with known
// observation stddev and an unknown mean under a normal prior. Latent is
// the single-element vector [mu].
type normalMean struct {
	y         []float64
	priorMean float64
	priorStd  float64
	obsStd    float64
}

func newNormalMean(spec Spec) (*normalMean, error) {
	rows, err := loadCSV(spec.DatasetPath())
	if err != nil {
		return nil, err
	}
	// Single-column dataset; for wider files the last column is the
	// observation.
	y := make([]float64, len(rows))
	for i, row := range rows {
		y[i] = row[len(row)-1]
	}
	return &normalMean{
		y:         y,
		priorMean: spec.PriorMean,
		priorStd:  spec.priorStd(),
		obsStd:    spec.obsStd(),
	}, nil
}

func (m *normalMean) Dim() int { return 1 }

func (m *normalMean) LogProb(z []float64) float64 {
	mu := z[0]
	lp := normLogPdf(mu, m.priorMean, m.priorStd)
	for _, y := range m.y {
		lp += normLogPdf(y, mu, m.obsStd)
	}
	return lp
}

func (m *normalMean) GradLogProb(z, grad []float64) float64 {
	mu := z[0]
	lp := normLogPdf(mu, m.priorMean, m.priorStd)
	g := -(mu - m.priorMean) / (m.priorStd * m.priorStd)
	ov := m.obsStd * m.obsStd
	for _, y := range m.y {
		lp += normLogPdf(y, mu, m.obsStd)
		g += (y - mu) / ov
	}
	grad[0] = g
	return lp
}
