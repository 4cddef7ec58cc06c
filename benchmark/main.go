// Package main provides a performance benchmarking tool for the deedscore CLI.
// It measures batch scoring times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - deedscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where generated datasets and the store database are placed
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Workers      int
	NoStoreRuns  int
	StoreRuns    int
	DatasetSizes map[string]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoStoreRuns: 3,
		StoreRuns:   4,
		DatasetSizes: map[string]int{
			"small":  500,
			"medium": 5000,
			"large":  10000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	// Clear the store using deedscore store clear
	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("deedscore", "store", "clear",
		"--store-backend", "sqlite", "--store-db-connect", storeDBPath(config))
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

func storeDBPath(config BenchmarkConfig) string {
	return filepath.Join(config.WorkDir, "deedscore-bench.db")
}

// checkPrerequisites verifies that the deedscore binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if deedscore is available
	if _, err := exec.LookPath("deedscore"); err != nil {
		return fmt.Errorf("deedscore binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// generateDatasets writes synthetic property input files of each configured
// size and returns a map of dataset name to file path.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	counties := []string{"Lake", "Polk", "Marion", "Orange", "Pasco"}
	landUses := []string{"residential", "vacant", "commercial", "agricultural"}

	datasets := make(map[string]string, len(config.DatasetSizes))
	for name, size := range config.DatasetSizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("properties_%s.json", name))

		records := make([]map[string]any, 0, size)
		for i := 0; i < size; i++ {
			property := map[string]any{
				"id":             fmt.Sprintf("BENCH-%s-%06d", name, i),
				"parcel_id":      fmt.Sprintf("%02d-%02d-%02d-%04d", i%99, (i/99)%99, (i/9801)%99, i%9999),
				"state":          "FL",
				"county":         counties[i%len(counties)],
				"assessed_value": 20000 + float64(i%200)*1500,
				"minimum_bid":    1500 + float64(i%80)*450,
				"acreage":        0.05 + float64(i%40)*0.12,
				"land_use":       landUses[i%len(landUses)],
				"sale_type":      "deed",
				"road_frontage":  i%7 != 0,
			}
			if i%3 != 0 {
				property["year_built"] = 1950 + i%75
			}
			records = append(records, map[string]any{"property": property})
		}

		data, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		datasets[name] = path
		fmt.Printf("Generated %s dataset (%d records) at %s\n", name, size, path)
	}

	return datasets, nil
}

// runBenchmarks executes all benchmark tests across generated datasets
func runBenchmarks(config BenchmarkConfig, datasets map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(datasets), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, name := range []string{"small", "medium", "large"} {
		path, ok := datasets[name]
		if !ok {
			continue
		}
		fmt.Printf("Benchmarking %s\n", name)

		// Plain batch scoring
		result := runBenchmarkSuite(config, name, path, "batch", "batch scoring", "")
		results = append(results, result)

		// Batch scoring with full component detail
		result = runBenchmarkSuite(config, name, path, "batch", "batch scoring (detail)", "--detail")
		results = append(results, result)

		// Batch scoring with edge case detection disabled
		result = runBenchmarkSuite(config, name, path, "batch", "batch scoring (no edge cases)", "--skip-edge-cases")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, inputPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, inputPath, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs (peer estimation reads from a warm store)
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     strings.TrimSpace(fmt.Sprintf("%s %s", command, extraArgs)),
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a deedscore command multiple times with the specified store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, inputPath, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, inputPath,
		"--store-backend", storeBackend,
		"--workers", fmt.Sprintf("%d", config.Workers),
		"--limit", "10000",
		"--output-file", os.DevNull,
	}
	if storeBackend == "sqlite" {
		args = append(args, "--store-db-connect", storeDBPath(config), "--save")
	}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("deedscore", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Batch completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/deedscore_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	fmt.Printf("Batch Scoring:\n")
	for _, result := range results {
		fmt.Printf("  %-8s %-32s: No-store: %s, Cold: %s, Warm: %s\n",
			result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
