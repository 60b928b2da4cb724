// Package main provides a performance benchmarking tool for the dealsense CLI.
// It generates synthetic batches of leads and deals, runs every pipeline on
// them with different worker counts and analysis backends, treating the first
// successful run as cold and averaging the rest as warm, and writes CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - dealsense binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated inputs and the SQLite database
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// BenchmarkResult holds the result of one pipeline, batch size and setting.
type BenchmarkResult struct {
	Pipeline  string
	BatchSize int
	Workers   int
	Backend   string
	ColdTime  string
	WarmTime  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Runs       int
	BatchSizes []int
	Workers    []int
	Backends   []string
}

// benchmarkNow pins the engine clock so every run decides the same batch the same way.
var benchmarkNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:    os.Args[1],
		Timeout:    5 * time.Minute,
		Runs:       4,
		BatchSizes: []int{100, 1000, 10000},
		Workers:    []int{1, 4, 14},
		Backends:   []string{"none", "sqlite"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	inputs, err := generateInputs(config)
	if err != nil {
		fmt.Printf("Failed to generate inputs: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, inputs)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the dealsense binary and the work dir exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("dealsense"); err != nil {
		return eris.New("dealsense binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return eris.Wrapf(err, "cannot create work dir %s", config.WorkDir)
	}
	return nil
}

// generateInputs writes one input file per pipeline and batch size.
// The result maps pipeline -> batch size -> file path.
func generateInputs(config BenchmarkConfig) (map[string]map[int]string, error) {
	rng := rand.New(rand.NewPCG(42, 7))
	inputs := map[string]map[int]string{
		"dormancy": {},
		"score":    {},
		"reversal": {},
	}

	for _, size := range config.BatchSizes {
		dormant := make([]schema.DormantLead, size)
		inbound := make([]schema.InboundLead, size)
		lost := make([]schema.LostDeal, size)
		for i := range size {
			dormant[i] = syntheticDormantLead(rng, i)
			inbound[i] = syntheticInboundLead(rng, i)
			lost[i] = syntheticLostDeal(rng, i)
		}

		for pipeline, batch := range map[string]any{"dormancy": dormant, "score": inbound, "reversal": lost} {
			path := filepath.Join(config.WorkDir, fmt.Sprintf("%s_%d.json", pipeline, size))
			if err := writeJSONFile(path, batch); err != nil {
				return nil, err
			}
			inputs[pipeline][size] = path
		}
	}
	return inputs, nil
}

var (
	objections = []string{"too expensive", "not the right time", "need to check with my boss", "missing a feature", "happy with current vendor"}
	sources    = []string{"referral", "partner", "event", "organic", "paid_search", "social", "cold_list", "webinar"}
	activities = []string{schema.PricingPageView, schema.DemoRequest, schema.TrialSignup}
	reasons    = []string{"budget cut", "timing was off", "chose a competitor", "missing integration", "reorg", ""}
)

func syntheticDormantLead(rng *rand.Rand, i int) schema.DormantLead {
	last := benchmarkNow.AddDate(0, 0, -rng.IntN(400))
	events := make([]schema.EngagementEvent, rng.IntN(8))
	for j := range events {
		events[j] = schema.EngagementEvent{
			Type:      "email_open",
			Timestamp: last.AddDate(0, 0, -rng.IntN(120)),
			Depth:     rng.Float64(),
			Sentiment: rng.Float64(),
		}
	}
	return schema.DormantLead{
		ID: fmt.Sprintf("lead-%d", i),
		Signals: schema.BehaviorSignals{
			LastEngagement:   last,
			EngagementEvents: events,
			ObjectionHistory: []string{objections[rng.IntN(len(objections))]},
		},
	}
}

func syntheticInboundLead(rng *rand.Rand, i int) schema.InboundLead {
	return schema.InboundLead{
		ID:       fmt.Sprintf("in-%d", i),
		Source:   sources[rng.IntN(len(sources))],
		Identity: schema.LeadIdentity{Email: fmt.Sprintf("user%d@company%d.io", i, i%50), CompanyName: "Company"},
		Website: schema.LeadWebsite{
			PricingVisible: rng.IntN(2) == 0,
			CompanySize:    rng.IntN(5000),
			EstimatedACV:   float64(rng.IntN(100000)),
		},
		Behavior: schema.LeadBehavior{HighIntentActivities: activities[:rng.IntN(len(activities)+1)]},
	}
}

func syntheticLostDeal(rng *rand.Rand, i int) schema.LostDeal {
	return schema.LostDeal{
		ID:                 fmt.Sprintf("deal-%d", i),
		OriginalValue:      float64(1000 + rng.IntN(200000)),
		LostAt:             benchmarkNow.AddDate(0, 0, -rng.IntN(365)),
		LossReason:         reasons[rng.IntN(len(reasons))],
		ChampionIdentified: rng.IntN(2) == 0,
		ExecutiveAccess:    rng.IntN(3) == 0,
		Objections:         []string{objections[rng.IntN(len(objections))]},
	}
}

func writeJSONFile(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "failed to encode %s", path)
	}
	return eris.Wrapf(os.WriteFile(path, data, 0o644), "failed to write %s", path)
}

// runBenchmarks executes every pipeline across batch sizes, worker counts and backends.
func runBenchmarks(config BenchmarkConfig, inputs map[string]map[int]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %v batch sizes, %v workers, %v backends, %d runs, %v timeout\n",
		config.BatchSizes, config.Workers, config.Backends, config.Runs, config.Timeout)

	for _, pipeline := range []string{"dormancy", "score", "reversal"} {
		for _, size := range config.BatchSizes {
			for _, workers := range config.Workers {
				for _, backend := range config.Backends {
					results = append(results, runBenchmarkSuite(config, pipeline, inputs[pipeline][size], size, workers, backend))
				}
			}
		}
	}
	return results
}

// runBenchmarkSuite runs one setting several times and summarizes cold and warm times.
func runBenchmarkSuite(config BenchmarkConfig, pipeline, inputPath string, size, workers int, backend string) BenchmarkResult {
	fmt.Printf("Running %s on %d entities with %d workers (%s backend)\n", pipeline, size, workers, backend)

	args := []string{
		pipeline, inputPath,
		"--workers", fmt.Sprint(workers),
		"--output", "csv",
		"--output-file", filepath.Join(config.WorkDir, pipeline+"_out.csv"),
		"--now", benchmarkNow.Format(time.RFC3339),
		"--analysis-backend", backend,
	}
	if backend == "sqlite" {
		args = append(args, "--analysis-db-connect", filepath.Join(config.WorkDir, "benchmark.db"))
	}

	times := runBenchmark(config, args)
	result := BenchmarkResult{
		Pipeline:  pipeline,
		BatchSize: size,
		Workers:   workers,
		Backend:   backend,
		ColdTime:  "TIMEOUT",
		WarmTime:  "TIMEOUT",
	}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if warm := times[min(1, len(times)):]; len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark executes a dealsense command multiple times and returns the successful durations.
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	var times []float64
	for range config.Runs {
		start := time.Now()
		cmd := exec.Command("dealsense", args...)

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
	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("dealsense_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"pipeline", "batch_size", "workers", "backend", "cold_time", "warm_avg"}); err != nil {
		return eris.Wrap(err, "failed to write CSV header")
	}
	for _, r := range results {
		record := []string{r.Pipeline, fmt.Sprint(r.BatchSize), fmt.Sprint(r.Workers), r.Backend, r.ColdTime, r.WarmTime}
		if err := writer.Write(record); err != nil {
			return eris.Wrap(err, "failed to write CSV record")
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, pipeline := range []string{"dormancy", "score", "reversal"} {
		fmt.Printf("%s:\n", pipeline)
		for _, r := range results {
			if r.Pipeline == pipeline {
				fmt.Printf("  %6d entities, %2d workers, %-6s: Cold: %s, Warm: %s\n",
					r.BatchSize, r.Workers, r.Backend, r.ColdTime, r.WarmTime)
			}
		}
	}
}
