/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sigs.k8s.io/pareto/pkg/pareto/util"
)

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "frontier.yaml")
	plot := filepath.Join(dir, "frontier.html")
	metricsFile := filepath.Join(dir, "metrics.txt")

	var out bytes.Buffer
	cmd := NewParetoCommand(&out)
	cmd.SetArgs([]string{"run",
		"--problem", "schaffer1",
		"--population", "40",
		"--iterations", "20",
		"--seed", "3",
		"--output", output,
		"--plot", plot,
		"--metrics-file", metricsFile,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	frontier, dump, err := util.ReadFrontier(f)
	if err != nil {
		t.Fatalf("ReadFrontier() error = %v", err)
	}
	if frontier.SampleCount() == 0 || dump.Problem != "Schaffer1" || dump.Algorithm != "NSGA-II" {
		t.Errorf("unexpected frontier dump with %d samples for %s/%s", frontier.SampleCount(), dump.Problem, dump.Algorithm)
	}

	if _, err := os.Stat(plot); err != nil {
		t.Errorf("plot was not written: %v", err)
	}
	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `pareto_generations_total{algorithm="NSGA-II"} 20`) {
		t.Errorf("metrics file misses the generation count:\n%s", data)
	}
}

func TestRunCommandWritesToStdout(t *testing.T) {
	var out bytes.Buffer
	cmd := NewParetoCommand(&out)
	cmd.SetArgs([]string{"run", "--problem", "tradeoff", "--algorithm", "naive", "--iterations", "10"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	frontier, _, err := util.ReadFrontier(&out)
	if err != nil {
		t.Fatalf("ReadFrontier() error = %v", err)
	}
	if frontier.SampleCount() != 10 {
		t.Errorf("SampleCount() = %d, want every one of the 10 samples", frontier.SampleCount())
	}
}

func TestRunCommandUnknownProblem(t *testing.T) {
	cmd := NewParetoCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--problem", "rosenbrock"})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() should fail for an unknown problem")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewParetoCommand(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Pareto version") {
		t.Errorf("version output = %q", out.String())
	}
}
