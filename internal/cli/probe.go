package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/probe"
	"github.com/llehouerou/cadence/internal/ui/playerbar"
)

type probeOptions struct {
	json    bool
	verbose bool
	ceiling int
}

// probeResult is one line of probe output.
type probeResult struct {
	File       string  `json:"file"`
	Duration   string  `json:"duration"`
	Seconds    float64 `json:"seconds"`
	Confidence string  `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

func newProbeCmd(root *rootOptions) *cobra.Command {
	opts := &probeOptions{}

	cmd := &cobra.Command{
		Use:   "probe FILE...",
		Short: "Print how long audio files play",
		Long: `Print the duration of each file and how it was obtained:

  exact      frame count declared by the container
  estimated  every packet was decoded and counted (shown with ~)
  truncated  counting stopped at the packet ceiling, a lower bound (shown with ≥)
  unknown    nothing could be determined (shown as --:--)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log probe details to stderr")
	cmd.Flags().IntVar(&opts.ceiling, "ceiling", 0,
		"packets decoded at most when estimating (default: probe.packet_ceiling)")
	return cmd
}

func runProbe(cmd *cobra.Command, root *rootOptions, opts *probeOptions, files []string) error {
	ceiling := opts.ceiling
	if ceiling <= 0 {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		ceiling = cfg.Probe.PacketCeiling
	}

	log := logging.Discard()
	if opts.verbose {
		log = logging.New(cmd.ErrOrStderr(), slog.LevelDebug)
	}
	prober := probe.New(probe.Options{PacketCeiling: ceiling, Logger: log})

	results := make([]probeResult, 0, len(files))
	failed := 0
	for _, path := range files {
		r := probeFile(prober, path)
		if r.Error != "" {
			failed++
		}
		results = append(results, r)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		writeProbeTable(out, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(files))
	}
	return nil
}

func probeFile(prober *probe.Prober, path string) probeResult {
	r := probeResult{File: path}

	f, err := os.Open(path)
	if err != nil {
		r.Error = err.Error()
		r.Duration = playerbar.TotalLabel(probe.Estimate{})
		r.Confidence = probe.Unknown.String()
		return r
	}
	defer f.Close()

	est := prober.Probe(f, filepath.Ext(path))
	r.Duration = playerbar.TotalLabel(est)
	r.Seconds = est.Duration.Seconds()
	r.Confidence = est.Confidence.String()
	return r
}

func writeProbeTable(out io.Writer, results []probeResult) {
	t := NewTableWriter(out, "FILE", "DURATION", "CONFIDENCE")
	for _, r := range results {
		confidence := r.Confidence
		if r.Error != "" {
			confidence += " (" + r.Error + ")"
		}
		t.Row(r.File, r.Duration, confidence)
	}
	t.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
