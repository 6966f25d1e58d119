// Command probehash measures average probe comparisons of quadratic probing and double hashing.
//
// Parameters come from flags, falling back to PROBEHASH_* environment variables, which may be set in a .env file.
//
//	probehash -ts 2000 -method double -dc2 31
//	probehash -method quadratic -c1 1 -c2 3 -sweep 2000:4000:100 -target 1.5
//	probehash -interactive
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bdragon300/probe-hash/experiment"
	"github.com/bdragon300/probe-hash/probe"
)

var (
	infoLog  = log.New(os.Stderr, "[INFO] ", log.Ldate|log.Ltime|log.Lmsgprefix)
	errorLog = log.New(os.Stderr, "[ERROR] ", log.Ldate|log.Ltime|log.Lmsgprefix)
)

func main() {
	if err := godotenv.Load(); err != nil {
		infoLog.Println("no .env file loaded, using environment and flags")
	}
	def := experiment.DefaultConfig()

	var (
		tsFlag          = flag.Int("ts", atoiDefault(getEnv("PROBEHASH_TS", ""), def.TableSize), "table size")
		methodFlag      = flag.String("method", getEnv("PROBEHASH_METHOD", "double"), "probing method: quadratic or double")
		c1Flag          = flag.Int("c1", atoiDefault(getEnv("PROBEHASH_C1", ""), 1), "quadratic probing linear coefficient")
		c2Flag          = flag.Int("c2", atoiDefault(getEnv("PROBEHASH_C2", ""), 3), "quadratic probing quadratic coefficient")
		dc1Flag         = flag.Int("dc1", atoiDefault(getEnv("PROBEHASH_DC1", ""), 0), "double hashing dc1 (accepted, unused)")
		dc2Flag         = flag.Int("dc2", atoiDefault(getEnv("PROBEHASH_DC2", ""), 31), "double hashing secondary hash multiplier")
		keysFlag        = flag.Int("n", atoiDefault(getEnv("PROBEHASH_KEYS", ""), def.Keys), "number of keys to insert")
		lengthsFlag     = flag.String("lengths", getEnv("PROBEHASH_LENGTHS", "7,8"), "comma separated key lengths")
		seedFlag        = flag.Uint64("seed", uint64(atoiDefault(getEnv("PROBEHASH_SEED", ""), int(def.Seed))), "key generator seed")
		interactiveFlag = flag.Bool("interactive", false, "prompt for parameters on stdin")
		sweepFlag       = flag.String("sweep", "", "table size range from:to[:step] to sweep")
		targetFlag      = flag.Float64("target", 0, "with -sweep, report the smallest size with average comparisons <= target")
		metricsFlag     = flag.String("metrics-file", getEnv("PROBEHASH_METRICS_FILE", ""), "write Prometheus metrics to this file")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, options{
		method:      *methodFlag,
		c1:          *c1Flag,
		c2:          *c2Flag,
		dc1:         *dc1Flag,
		dc2:         *dc2Flag,
		ts:          *tsFlag,
		keys:        *keysFlag,
		lengths:     *lengthsFlag,
		seed:        *seedFlag,
		interactive: *interactiveFlag,
		sweep:       *sweepFlag,
		target:      *targetFlag,
		metricsFile: *metricsFlag,
	}, os.Stdin, os.Stdout)
	if err != nil {
		errorLog.Println(err)
		os.Exit(1)
	}
}

type options struct {
	method           string
	c1, c2, dc1, dc2 int
	ts, keys         int
	lengths          string
	seed             uint64
	interactive      bool
	sweep            string
	target           float64
	metricsFile      string
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := experiment.NewMetrics(reg)

	switch {
	case opts.interactive:
		err = interactive(in, out, cfg, metrics)
	case opts.sweep != "":
		err = sweep(ctx, out, cfg, opts.sweep, opts.target, metrics)
	default:
		var res experiment.Result
		if res, err = experiment.Run(cfg); err == nil {
			metrics.Observe(res)
			report(out, res)
		}
	}
	if err != nil {
		return err
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		infoLog.Printf("metrics written to %s", opts.metricsFile)
	}
	return nil
}

func (o options) config() (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	strategy, err := strategyFor(o.method, o.c1, o.c2, o.dc1, o.dc2)
	if err != nil {
		return cfg, err
	}
	lengths, err := parseInts(o.lengths)
	if err != nil {
		return cfg, fmt.Errorf("parse lengths: %w", err)
	}
	cfg.TableSize = o.ts
	cfg.Strategy = strategy
	cfg.Keys = o.keys
	cfg.Lengths = lengths
	cfg.Seed = o.seed
	return cfg, cfg.Validate()
}

func strategyFor(method string, c1, c2, dc1, dc2 int) (probe.Strategy, error) {
	s, err := probe.Parse(method, 0, 0)
	if err != nil {
		return nil, err
	}
	if s.Name() == "quadratic" {
		return probe.Quadratic{C1: c1, C2: c2}, nil
	}
	return probe.DoubleHashing{DC1: dc1, DC2: dc2}, nil
}

func sweep(ctx context.Context, out io.Writer, cfg experiment.Config, rng string, target float64, metrics *experiment.Metrics) error {
	bounds, err := parseInts(strings.ReplaceAll(rng, ":", ","))
	if err != nil || len(bounds) < 2 || len(bounds) > 3 {
		return fmt.Errorf("%w: sweep range %q, want from:to[:step]", experiment.ErrInvalidConfig, rng)
	}
	step := 1
	if len(bounds) == 3 {
		step = bounds[2]
	}
	sizes, err := experiment.Sizes(bounds[0], bounds[1], step)
	if err != nil {
		return err
	}

	infoLog.Printf("sweeping %d table sizes with %v", len(sizes), cfg.Strategy)
	results, err := experiment.Sweep(ctx, cfg, sizes, nil)
	if err != nil {
		return err
	}
	for _, r := range results {
		metrics.Observe(r)
		fmt.Fprintln(out, r)
	}
	if target > 0 {
		if best, ok := experiment.Smallest(results, target); ok {
			fmt.Fprintf(out, "Smallest table size with average comparisons <= %.2f: %d (%.2f)\n",
				target, best.TableSize, best.AverageComparisons)
		} else {
			fmt.Fprintf(out, "No table size in range reaches average comparisons <= %.2f\n", target)
		}
	}
	return nil
}

// interactive prompts for table size, method and constants until the table size is 0 or input ends.
func interactive(in io.Reader, out io.Writer, base experiment.Config, metrics *experiment.Metrics) error {
	p := prompter{sc: bufio.NewScanner(in), out: out}
	for {
		err := interactiveRun(p, base, metrics)
		if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var errExit = errors.New("exit")

// interactiveRun handles one prompt round. It returns errExit when the user enters table size 0.
func interactiveRun(p prompter, base experiment.Config, metrics *experiment.Metrics) error {
	out := p.out
	ts, err := p.number("\nEnter ts (table size) (or 0 to exit): ")
	if err != nil {
		return err
	}
	if ts == 0 {
		return errExit
	}
	fmt.Fprintln(out, "Select hash method:")
	fmt.Fprintln(out, "1. Quadratic Probing")
	fmt.Fprintln(out, "2. Double Hashing")
	choice, err := p.line("Enter choice (1/2): ")
	if err != nil {
		return err
	}
	// Anything but 1 means double hashing
	var s probe.Strategy
	if choice == "1" {
		var c1, c2 int
		if c1, err = p.number("Enter value for c1: "); err == nil {
			c2, err = p.number("Enter value for c2: ")
		}
		s = probe.Quadratic{C1: c1, C2: c2}
	} else {
		var dc1, dc2 int
		if dc1, err = p.number("Enter value for dc1: "); err == nil {
			dc2, err = p.number("Enter value for dc2: ")
		}
		s = probe.DoubleHashing{DC1: dc1, DC2: dc2}
	}
	if err != nil {
		return err
	}

	cfg := base
	cfg.TableSize = ts
	cfg.Strategy = s
	res, err := experiment.Run(cfg)
	if errors.Is(err, experiment.ErrInvalidConfig) {
		fmt.Fprintln(out, err)
		return nil
	}
	if err != nil {
		return err
	}
	metrics.Observe(res)
	report(out, res)
	return nil
}

func report(out io.Writer, r experiment.Result) {
	name := "Quadratic"
	if r.Strategy.Name() == "double" {
		name = "Double"
	}
	fmt.Fprintf(out, "Method: %s Hashing\n", name)
	fmt.Fprintf(out, "Average comparisons per insertion: %.2f\n", r.AverageComparisons)
	fmt.Fprintf(out, "Inserted: %d, failed: %d\n", r.Inserted, r.Failed)
}

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

func (p prompter) number(prompt string) (int, error) {
	s, err := p.line(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, nil
}

func parseInts(s string) ([]int, error) {
	var res []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
