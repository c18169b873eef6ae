package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// CSVOptions selects the columns of a delimited file that make up a Dataset.
// Every value is trimmed of surrounding whitespace before use.
type CSVOptions struct {
	// ColumnNames names the columns of a file without a header row.
	// When empty the first record is read as the header.
	ColumnNames []string
	// Features lists the numeric feature columns in order. When empty every
	// column except Label and Group is used.
	Features []string
	Label    string
	// PositiveLabel maps the label column to 1 when it equals this value and
	// to 0 otherwise. When empty the label is parsed as a number and must be 0 or 1.
	PositiveLabel string
	// Group is the optional group column.
	Group string
	// GroupValue maps the group column like PositiveLabel does for the label.
	GroupValue string
	Comma      rune
}

// AdultColumns are the column names of the headerless UCI Adult census file.
var AdultColumns = []string{
	"age", "workclass", "fnlwgt", "education", "education_num",
	"marital_status", "occupation", "relationship", "race", "sex",
	"capital_gain", "capital_loss", "hours_per_week", "native_country", "income",
}

// AdultFeatures are the numeric columns of the Adult file.
var AdultFeatures = []string{
	"age", "fnlwgt", "education_num", "capital_gain", "capital_loss", "hours_per_week",
}

// AdultOptions reads the Adult file with y = 1 for income "<=50K". When group
// is non-empty, rows whose group column equals groupValue get g = 1.
func AdultOptions(group, groupValue string) CSVOptions {
	return CSVOptions{
		ColumnNames:   AdultColumns,
		Features:      AdultFeatures,
		Label:         "income",
		PositiveLabel: "<=50K",
		Group:         group,
		GroupValue:    groupValue,
	}
}

type columnPlan struct {
	features []int
	label    int
	group    int
}

func planColumns(header []string, opts CSVOptions) (columnPlan, []string, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	lookup := func(param, name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, errors.NewValidationError(param, "column not found", name)
		}
		return i, nil
	}

	if opts.Label == "" {
		return columnPlan{}, nil, errors.NewValidationError("label", "label column is required", opts.Label)
	}
	plan := columnPlan{group: -1}
	var err error
	if plan.label, err = lookup("label", opts.Label); err != nil {
		return columnPlan{}, nil, err
	}
	if opts.Group != "" {
		if plan.group, err = lookup("group", opts.Group); err != nil {
			return columnPlan{}, nil, err
		}
	}

	names := opts.Features
	if len(names) == 0 {
		for i, h := range header {
			if i != plan.label && i != plan.group {
				names = append(names, strings.TrimSpace(h))
			}
		}
	}
	for _, name := range names {
		i, err := lookup("features", name)
		if err != nil {
			return columnPlan{}, nil, err
		}
		if i == plan.label || i == plan.group {
			return columnPlan{}, nil, errors.NewValidationError("features", "feature overlaps label or group column", name)
		}
		plan.features = append(plan.features, i)
	}
	if len(plan.features) == 0 {
		return columnPlan{}, nil, errors.NewValidationError("features", "no feature columns selected", names)
	}
	return plan, append([]string(nil), names...), nil
}

func binaryValue(raw, positive, column string, line int) (float64, error) {
	if positive != "" {
		if raw == positive {
			return 1, nil
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || (v != 0 && v != 1) {
		return 0, errors.NewValidationErrorWithCause(column, "line "+strconv.Itoa(line)+": expected 0 or 1", raw, err)
	}
	return v, nil
}

// LoadCSV reads a Dataset from r.
func LoadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header := opts.ColumnNames
	line := 0
	if len(header) == 0 {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil, errors.Wrap(errors.ErrEmptyData, "csv has no header")
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv header")
		}
		header = append([]string(nil), rec...)
		line++
	} else {
		reader.FieldsPerRecord = len(header)
	}

	plan, names, err := planColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var data, labels, group []float64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv record")
		}
		line++

		for _, j := range plan.features {
			raw := strings.TrimSpace(rec[j])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.NewValidationErrorWithCause(header[j], "line "+strconv.Itoa(line)+": not a number", raw, err)
			}
			data = append(data, v)
		}
		y, err := binaryValue(strings.TrimSpace(rec[plan.label]), opts.PositiveLabel, opts.Label, line)
		if err != nil {
			return nil, err
		}
		labels = append(labels, y)
		if plan.group >= 0 {
			g, err := binaryValue(strings.TrimSpace(rec[plan.group]), opts.GroupValue, opts.Group, line)
			if err != nil {
				return nil, err
			}
			group = append(group, g)
		}
	}

	rows := len(labels)
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no records")
	}
	return &Dataset{
		X:            mat.NewDense(rows, len(plan.features), data),
		Y:            mat.NewVecDense(rows, labels),
		Group:        group,
		FeatureNames: names,
	}, nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return LoadCSV(f, opts)
}
