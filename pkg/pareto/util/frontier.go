package util

import (
	"fmt"
	"io"
	"math"

	"sigs.k8s.io/yaml"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// Sample is the serialized form of one frontier point.
type Sample struct {
	Parameters []float64 `json:"parameters"`
	Objectives []float64 `json:"objectives"`
}

// FrontierDump is the serialized form of a frontier.
type FrontierDump struct {
	Algorithm string   `json:"algorithm,omitempty"`
	Problem   string   `json:"problem,omitempty"`
	Samples   []Sample `json:"samples"`
}

// WriteFrontier writes the samples of the frontier as yaml. Non-finite values
// cannot be represented and are reported as an error.
func WriteFrontier(w io.Writer, frontier *framework.Frontier, problem, algorithm string) error {
	dump := FrontierDump{
		Algorithm: algorithm,
		Problem:   problem,
		Samples:   make([]Sample, frontier.SampleCount()),
	}
	for i := range dump.Samples {
		x, y := frontier.Parameters(i), frontier.Objectives(i)
		if err := checkFinite(x); err != nil {
			return fmt.Errorf("sample %d parameters: %w", i, err)
		}
		if err := checkFinite(y); err != nil {
			return fmt.Errorf("sample %d objectives: %w", i, err)
		}
		dump.Samples[i] = Sample{
			Parameters: append([]float64(nil), x...),
			Objectives: append([]float64(nil), y...),
		}
	}

	data, err := yaml.Marshal(&dump)
	if err != nil {
		return fmt.Errorf("failed to marshal frontier: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ReadFrontier reads a frontier written by WriteFrontier.
func ReadFrontier(r io.Reader) (*framework.Frontier, *FrontierDump, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	var dump FrontierDump
	if err := yaml.UnmarshalStrict(data, &dump); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal frontier: %w", err)
	}

	if len(dump.Samples) == 0 {
		return framework.NewFrontier(0, 0, 0), &dump, nil
	}
	n, m := len(dump.Samples[0].Parameters), len(dump.Samples[0].Objectives)
	frontier := framework.NewFrontier(len(dump.Samples), n, m)
	for i, s := range dump.Samples {
		if len(s.Parameters) != n || len(s.Objectives) != m {
			return nil, nil, fmt.Errorf("sample %d has %d parameters and %d objectives, want %d and %d",
				i, len(s.Parameters), len(s.Objectives), n, m)
		}
		copy(frontier.Parameters(i), s.Parameters)
		copy(frontier.Objectives(i), s.Objectives)
	}
	return frontier, &dump, nil
}

func checkFinite(values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %v is not finite", v)
		}
	}
	return nil
}
