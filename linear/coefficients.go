package linear

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// InterceptName labels the intercept in coefficient tables.
const InterceptName = "intercept"

func coefficientNames(features []string, n int, intercept bool) []string {
	names := make([]string, 0, n+1)
	if intercept {
		names = append(names, InterceptName)
	}
	for j := 0; j < n; j++ {
		if j < len(features) {
			names = append(names, features[j])
		} else {
			names = append(names, "x"+strconv.Itoa(j+1))
		}
	}
	return names
}

// CoefficientRow is one line of a CoefficientTable.
type CoefficientRow struct {
	Name    string  `json:"name"`
	StdCoef float64 `json:"std_coef"`
	Coef    float64 `json:"coef"`
}

// CoefficientTable lists each coefficient on the standardised and the
// raw feature scale.
type CoefficientTable []CoefficientRow

// CoefficientTable returns the fitted coefficients by name.
func (lr *LogisticRegression) CoefficientTable() (CoefficientTable, error) {
	if err := lr.State().RequireFitted(lr.Name, "CoefficientTable"); err != nil {
		return nil, err
	}
	table := make(CoefficientTable, len(lr.coef))
	for i := range lr.coef {
		table[i] = CoefficientRow{Name: lr.names[i], StdCoef: lr.stdCoef[i], Coef: lr.coef[i]}
	}
	return table, nil
}

// Lookup returns the row named name.
func (t CoefficientTable) Lookup(name string) (CoefficientRow, bool) {
	for _, row := range t {
		if row.Name == name {
			return row, true
		}
	}
	return CoefficientRow{}, false
}

// WriteTo renders the table as aligned text.
func (t CoefficientTable) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "name\tstd_coef\tcoef\t")
	for _, row := range t {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t\n", row.Name, row.StdCoef, row.Coef)
	}
	err := tw.Flush()
	return cw.n, err
}

func (t CoefficientTable) String() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
