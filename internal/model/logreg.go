package model

import (
	"fmt"
	"math"
)

// logReg is Bayesian logistic regression with a zero-mean normal prior on
// each weight. Targets must be 0/1 in the trailing dataset column. Latent
// layout matches linReg: feature weights then intercept.
type logReg struct {
	x        [][]float64
	y        []float64
	priorStd float64
}

func newLogReg(spec Spec) (*logReg, error) {
	rows, err := loadCSV(spec.DatasetPath())
	if err != nil {
		return nil, err
	}
	x, y, err := splitXY(rows)
	if err != nil {
		return nil, err
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("logreg dataset: row %d target %v is not 0/1", i+1, v)
		}
	}
	return &logReg{x: x, y: y, priorStd: spec.priorStd()}, nil
}

func (m *logReg) Dim() int { return len(m.x[0]) + 1 }

func (m *logReg) linear(z []float64, row []float64) float64 {
	eta := z[len(z)-1]
	for j, v := range row {
		eta += z[j] * v
	}
	return eta
}

// logSigmoid computes log(sigmoid(eta)) without overflow.
func logSigmoid(eta float64) float64 {
	if eta >= 0 {
		return -math.Log1p(math.Exp(-eta))
	}
	return eta - math.Log1p(math.Exp(eta))
}

func sigmoid(eta float64) float64 {
	if eta >= 0 {
		return 1 / (1 + math.Exp(-eta))
	}
	e := math.Exp(eta)
	return e / (1 + e)
}

func (m *logReg) LogProb(z []float64) float64 {
	lp := 0.0
	for _, w := range z {
		lp += normLogPdf(w, 0, m.priorStd)
	}
	for i, row := range m.x {
		eta := m.linear(z, row)
		if m.y[i] == 1 {
			lp += logSigmoid(eta)
		} else {
			lp += logSigmoid(-eta)
		}
	}
	return lp
}

func (m *logReg) GradLogProb(z, grad []float64) float64 {
	pv := m.priorStd * m.priorStd
	lp := 0.0
	for j, w := range z {
		lp += normLogPdf(w, 0, m.priorStd)
		grad[j] = -w / pv
	}
	for i, row := range m.x {
		eta := m.linear(z, row)
		if m.y[i] == 1 {
			lp += logSigmoid(eta)
		} else {
			lp += logSigmoid(-eta)
		}
		resid := m.y[i] - sigmoid(eta)
		for j, v := range row {
			grad[j] += resid * v
		}
		grad[len(z)-1] += resid
	}
	return lp
}
