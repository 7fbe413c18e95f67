package model

// linReg is Bayesian linear regression with fixed observation noise and a
// zero-mean normal prior on each weight. Latent layout: one weight per
// feature column followed by the intercept.
type linReg struct {
	x        [][]float64
	y        []float64
	priorStd float64
	obsStd   float64
}

func newLinReg(spec Spec) (*linReg, error) {
	rows, err := loadCSV(spec.DatasetPath())
	if err != nil {
		return nil, err
	}
	x, y, err := splitXY(rows)
	if err != nil {
		return nil, err
	}
	return &linReg{x: x, y: y, priorStd: spec.priorStd(), obsStd: spec.obsStd()}, nil
}

func (m *linReg) Dim() int { return len(m.x[0]) + 1 }

func (m *linReg) predict(z []float64, row []float64) float64 {
	eta := z[len(z)-1] // intercept
	for j, v := range row {
		eta += z[j] * v
	}
	return eta
}

func (m *linReg) LogProb(z []float64) float64 {
	lp := 0.0
	for _, w := range z {
		lp += normLogPdf(w, 0, m.priorStd)
	}
	for i, row := range m.x {
		lp += normLogPdf(m.y[i], m.predict(z, row), m.obsStd)
	}
	return lp
}

func (m *linReg) GradLogProb(z, grad []float64) float64 {
	pv := m.priorStd * m.priorStd
	ov := m.obsStd * m.obsStd
	lp := 0.0
	for j, w := range z {
		lp += normLogPdf(w, 0, m.priorStd)
		grad[j] = -w / pv
	}
	for i, row := range m.x {
		pred := m.predict(z, row)
		lp += normLogPdf(m.y[i], pred, m.obsStd)
		resid := (m.y[i] - pred) / ov
		for j, v := range row {
			grad[j] += resid * v
		}
		grad[len(z)-1] += resid
	}
	return lp
}
