// Package main provides a performance benchmarking tool for the Atlas CLI.
// It seeds synthetic team sprints, then measures execution times per command and
// store backend, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - atlas binary installed and available in PATH
//
// Usage: go run benchmark/main.go [team-count]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run per backend.
type BenchmarkResult struct {
	Backend  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Teams    int
	Runs     int
	Timeout  time.Duration
	Backends []string
	WorkDir  string
}

// benchCommand is one timed atlas invocation; %s is replaced by the team ID.
type benchCommand struct {
	name string
	args string
}

var benchCommands = []benchCommand{
	{name: "analyze", args: "analyze --team %s --sprint S1 --output json"},
	{name: "analyze-save", args: "analyze --team %s --sprint S1 --save --output json"},
	{name: "check", args: "check --team %s --sprint S1 --threshold 100"},
	{name: "history", args: "history --team %s --limit 100 --output csv"},
}

func main() {
	teams := 20
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Printf("Usage: %s [team-count]\n", os.Args[0])
			os.Exit(1)
		}
		teams = n
	}

	if err := run(teams); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run owns the work directory so it is removed on every return path.
func run(teams int) error {
	if _, err := exec.LookPath("atlas"); err != nil {
		return fmt.Errorf("prerequisites check failed: atlas binary not found in PATH")
	}

	workDir, err := os.MkdirTemp("", "atlas-benchmark-*")
	if err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		Teams:    teams,
		Runs:     4,
		Timeout:  time.Minute,
		Backends: []string{"none", "sqlite"},
		WorkDir:  workDir,
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	printSummary(results)
	return nil
}

// backendEnv returns the environment that points atlas at a backend.
func backendEnv(config BenchmarkConfig, backend string) []string {
	env := append(os.Environ(), "ATLAS_STORE_BACKEND="+backend)
	if backend == "sqlite" {
		env = append(env, "ATLAS_STORE_DB_CONNECT="+filepath.Join(config.WorkDir, "bench.db"))
	}
	return env
}

// seedTeams imports one synthetic sprint per team.
func seedTeams(config BenchmarkConfig, backend string) error {
	for i := range config.Teams {
		team := fmt.Sprintf("team-%03d", i)
		path := filepath.Join(config.WorkDir, team+".yaml")
		data := fmt.Sprintf(`votes:
  - confidence_level: %d
  - confidence_level: 3
metrics:
  - metric_type: velocity
    value: %d
  - metric_type: throughput
    value: %d
objectives:
  - status: in_progress
  - status: %s
`, 1+i%5, 20+i%15, 40+i%60, []string{"completed", "blocked", "at_risk"}[i%3])
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			return err
		}

		cmd := exec.Command("atlas", "import", path, "--team", team, "--sprint", "S1")
		cmd.Env = backendEnv(config, backend)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("seeding %s failed: %w\nOutput: %s", team, err, output)
		}
	}
	return nil
}

// runBenchmarks executes all benchmark commands across configured backends
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d teams, %d runs, %v timeout\n", config.Teams, config.Runs, config.Timeout)

	for _, backend := range config.Backends {
		fmt.Printf("Benchmarking %s backend\n", backend)
		if err := seedTeams(config, backend); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}

		for _, bc := range benchCommands {
			cold, warm := runBenchmark(config, backend, bc)
			coldStr, warmStr := "TIMEOUT", "TIMEOUT"
			if cold > 0 {
				coldStr = fmt.Sprintf("%.3fs", cold)
			}
			if len(warm) > 0 {
				var sum float64
				for _, t := range warm {
					sum += t
				}
				warmStr = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
			}
			fmt.Printf("  %-12s cold: %s, warm average: %s\n", bc.name, coldStr, warmStr)
			results = append(results, BenchmarkResult{Backend: backend, Command: bc.name, ColdTime: coldStr, WarmTime: warmStr})
		}
	}

	return results
}

// runBenchmark times one command over every team for each run and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, backend string, bc benchCommand) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()
		ok := true
		for i := range config.Teams {
			args := strings.Fields(fmt.Sprintf(bc.args, fmt.Sprintf("team-%03d", i)))
			if !runWithTimeout(config, backend, args) {
				ok = false
				break
			}
		}
		if ok {
			times = append(times, time.Since(start).Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// runWithTimeout runs atlas once and reports whether it finished successfully in time.
func runWithTimeout(config BenchmarkConfig, backend string, args []string) bool {
	cmd := exec.Command("atlas", args...)
	cmd.Env = backendEnv(config, backend)

	done := make(chan error, 1)
	go func() {
		_, err := cmd.CombinedOutput()
		done <- err
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(config.Timeout):
		_ = cmd.Process.Kill()
		return false
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("atlas_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"backend", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Backend, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, bc := range benchCommands {
		fmt.Printf("%s:\n", bc.name)
		for _, result := range results {
			if result.Command == bc.name {
				fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Backend, result.ColdTime, result.WarmTime)
			}
		}
	}
}
