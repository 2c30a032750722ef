package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/example/go-meddl/internal/bench"
)

func TestRunBench(t *testing.T) {
	svc := fixtureService(t)

	results, err := runBench(context.Background(), svc, "Kette Apfel Stück", 4)
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d; want 4", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Cold != (i == 0) {
			t.Errorf("run %d: index/cold = %d/%v", i, r.Index, r.Cold)
		}
		if r.Words != 3 {
			t.Errorf("run %d: words = %d; want 3", i, r.Words)
		}
	}
}

func TestRunBench_EmptyText(t *testing.T) {
	svc := fixtureService(t)
	if _, err := runBench(context.Background(), svc, "   ", 2); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestWriteBench_JSON(t *testing.T) {
	results := []bench.RunResult{{Index: 0, Cold: true, Words: 2}, {Index: 1, Words: 2}}

	var buf bytes.Buffer
	writeBench(results, bench.Stats{}, "json", &buf)

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
}

func TestBenchCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing text", []string{"bench"}, "--text is required"},
		{"zero runs", []string{"bench", "--text", "Kette", "--runs", "0"}, "--runs must be at least 1"},
		{"bad format", []string{"bench", "--text", "Kette", "--format", "xml"}, "--format must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v; want %q", err, tt.want)
			}
		})
	}
}

func TestBenchCmd_Table(t *testing.T) {
	out, err := execute(t, "bench", "--text", "Hallo Leute!", "--runs", "3")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(out, "Words/s") {
		t.Errorf("table header missing:\n%s", out)
	}
}
