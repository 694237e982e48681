package stats

import (
	"fmt"
	"math"

	"github.com/juusorepo/ReproRepo/internal/panel"
)

// Term is one estimated coefficient in a fitted model.
type Term struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

// Model is an ordinary-least-squares fit of task duration on age, sleep, and
// mobility category (Crawling as the reference level).
type Model struct {
	Terms []Term  `json:"terms"`
	R2    float64 `json:"r2"`
	N     int     `json:"n"`
}

// FitTaskModel fits task_duration ~ age + sleep + category via the normal
// equations. It needs more observations than predictors and at least some
// variation in each predictor; otherwise the system is singular and an error
// is returned.
func FitTaskModel(obs []panel.Observation) (*Model, error) {
	names := []string{"intercept", "age_months", "sleep_hours", "cruising", "walking"}
	p := len(names)
	if len(obs) <= p {
		return nil, fmt.Errorf("need more than %d observations to fit %d terms, got %d", p, p, len(obs))
	}

	x := make([][]float64, len(obs))
	y := make([]float64, len(obs))
	for i, o := range obs {
		cruising, walking := 0.0, 0.0
		switch o.Category {
		case panel.CategoryCruising:
			cruising = 1
		case panel.CategoryWalking:
			walking = 1
		}
		x[i] = []float64{1, float64(o.AgeMonths), float64(o.SleepHours), cruising, walking}
		y[i] = o.TaskSeconds
	}

	beta, err := solveNormalEquations(x, y, p)
	if err != nil {
		return nil, err
	}

	terms := make([]Term, p)
	for i, name := range names {
		terms[i] = Term{Name: name, Coefficient: beta[i]}
	}

	return &Model{
		Terms: terms,
		R2:    rSquared(x, y, beta),
		N:     len(obs),
	}, nil
}

// solveNormalEquations solves (XᵀX)β = Xᵀy by Gaussian elimination with
// partial pivoting.
func solveNormalEquations(x [][]float64, y []float64, p int) ([]float64, error) {
	// Build the augmented matrix [XᵀX | Xᵀy].
	aug := make([][]float64, p)
	for i := range aug {
		aug[i] = make([]float64, p+1)
	}
	for _, row := range x {
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				aug[i][j] += row[i] * row[j]
			}
		}
	}
	for k, row := range x {
		for i := 0; i < p; i++ {
			aug[i][p] += row[i] * y[k]
		}
	}

	for col := 0; col < p; col++ {
		pivot := col
		for r := col + 1; r < p; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-10 {
			return nil, fmt.Errorf("design matrix is singular: no variation in term %d", col)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		for r := 0; r < p; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col] / aug[col][col]
			for c := col; c <= p; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	beta := make([]float64, p)
	for i := 0; i < p; i++ {
		beta[i] = aug[i][p] / aug[i][i]
	}
	return beta, nil
}

func rSquared(x [][]float64, y []float64, beta []float64) float64 {
	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	sst, sse := 0.0, 0.0
	for i, row := range x {
		pred := 0.0
		for j, b := range beta {
			pred += b * row[j]
		}
		diff := y[i] - meanY
		sst += diff * diff
		err := y[i] - pred
		sse += err * err
	}
	if sst == 0 {
		return 0
	}
	return 1 - sse/sst
}
