package analytics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CovarianceMatrix is an annualized sample covariance matrix over a fixed
// ticker ordering. Tickers map to stable integer indices through a side
// table, so matrix indices and ticker identity stay unambiguous and the hot
// double loop never hashes symbols.
type CovarianceMatrix struct {
	Tickers []string
	index   map[string]int
	sym     *mat.SymDense
}

// BuildCovarianceMatrix builds the N×N annualized covariance matrix for the
// given ticker ordering. Cell (i,j) is the pairwise sample covariance of the
// two daily return series over their leading min-length prefix, scaled by the
// configured trading days per year. Overlaps shorter than two observations
// yield 0. The diagonal is computed the same way and holds annualized
// variance.
func (e *Engine) BuildCovarianceMatrix(returns map[string][]float64, tickers []string) *CovarianceMatrix {
	n := len(tickers)
	index := make(map[string]int, n)
	for i, t := range tickers {
		index[t] = i
	}

	sym := mat.NewSymDense(n, nil)
	scale := float64(e.cfg.TradingDays)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov := pairwiseCovariance(returns[tickers[i]], returns[tickers[j]])
			sym.SetSym(i, j, cov*scale)
		}
	}

	ordered := make([]string, n)
	copy(ordered, tickers)

	return &CovarianceMatrix{
		Tickers: ordered,
		index:   index,
		sym:     sym,
	}
}

// NewCovarianceMatrix wraps an already computed matrix, e.g. one supplied by
// a caller with its own risk model. Only the upper triangle of cells is read;
// symmetry is imposed by construction.
func NewCovarianceMatrix(tickers []string, cells [][]float64) *CovarianceMatrix {
	n := len(tickers)
	index := make(map[string]int, n)
	for i, t := range tickers {
		index[t] = i
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, cells[i][j])
		}
	}

	ordered := make([]string, n)
	copy(ordered, tickers)

	return &CovarianceMatrix{Tickers: ordered, index: index, sym: sym}
}

// pairwiseCovariance computes the sample covariance (Bessel's correction) of
// the leading min-length prefixes of the two series, 0 when the overlap is
// shorter than two observations.
func pairwiseCovariance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	return stat.Covariance(a[:n], b[:n], nil)
}

// Dim returns the matrix dimension
func (m *CovarianceMatrix) Dim() int {
	if m == nil || m.sym == nil {
		return 0
	}
	n, _ := m.sym.Dims()
	return n
}

// At returns the annualized covariance of assets i and j
func (m *CovarianceMatrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Index returns the matrix index of a ticker
func (m *CovarianceMatrix) Index(ticker string) (int, bool) {
	i, ok := m.index[ticker]
	return i, ok
}
