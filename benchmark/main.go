// Package main provides a performance benchmarking tool for the tpmplot CLI.
// It generates synthetic result files of increasing size, runs each command several
// times with and without run history, treating the first successful run as cold and
// averaging the rest as warm, and writes a CSV for performance analysis.
//
// Prerequisites:
// - tpmplot binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory the synthetic result files and charts are written to
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// timestampLayout is the key layout of every sample in a result file.
const timestampLayout = "2006-01-02 15:04:05"

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       int
	NoHistoryRuns int
	HistoryRuns   int
	Datasets      map[string][2]int // name -> {files, samples per file}
	DatasetOrder  []string
	Commands      []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		Workers:       8,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Datasets: map[string][2]int{
			"small":  {2, 60},
			"medium": {8, 1_440},
			"large":  {16, 10_080},
			"huge":   {32, 100_000},
		},
		DatasetOrder: []string{"small", "medium", "large", "huge"},
		Commands:     []string{"summary", "points", "plot"},
	}

	if _, err := exec.LookPath("tpmplot"); err != nil {
		fmt.Printf("Prerequisites check failed: tpmplot binary not found in PATH\n")
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// generateDatasets writes the synthetic result files and returns the file list per dataset.
func generateDatasets(config BenchmarkConfig) (map[string][]string, error) {
	out := make(map[string][]string, len(config.Datasets))
	for _, name := range config.DatasetOrder {
		shape := config.Datasets[name]
		dir := filepath.Join(config.WorkDir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		for i := range shape[0] {
			key := "MySQL tpm"
			engine := "my"
			if i%2 == 1 {
				key = "PostgreSQL tpm"
				engine = "pg"
			}
			path := filepath.Join(dir, fmt.Sprintf("bench_%s_%dVu_%d.json", engine, (i/2+1)*10, i))
			if err := writeResultFile(path, key, shape[1]); err != nil {
				return nil, err
			}
			out[name] = append(out[name], path)
		}
		fmt.Printf("Generated %s: %d files x %d samples\n", name, shape[0], shape[1])
	}
	return out, nil
}

// writeResultFile writes one result file with a ramp-up, a noisy plateau and an idle tail.
func writeResultFile(path, key string, samples int) error {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	series := make(map[string]int, samples)
	tail := max(samples/20, 3)
	for i := range samples {
		var tpm int
		switch {
		case i >= samples-tail:
			tpm = 0
		case i < 3:
			tpm = (i + 1) * 2_000
		default:
			tpm = 6_000 + rand.IntN(1_000)
		}
		series[start.Add(time.Duration(i)*time.Minute).Format(timestampLayout)] = tpm
	}
	data, err := json.Marshal(map[string]any{key: series})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes every command against every dataset.
func runBenchmarks(config BenchmarkConfig, datasets map[string][]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-history: %d runs, history: %d runs\n",
		len(config.DatasetOrder), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	for _, name := range config.DatasetOrder {
		fmt.Printf("Benchmarking %s\n", name)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, name, command, datasets[name]))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string, files []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, files, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a tpmplot command multiple times and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, command string, files []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--history-backend", backend, "--workers", strconv.Itoa(config.Workers)}
	if command == "plot" {
		args = append(args, "--out-dir", filepath.Join(config.WorkDir, "graphs"))
	} else {
		args = append(args, "--output", "csv", "--output-file", filepath.Join(config.WorkDir, command+".csv"))
	}
	args = append(args, files...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("tpmplot", args...)
		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tpmplot_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by command.
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
