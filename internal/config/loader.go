package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/fsutil"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// fileRoot decodes the top level of a settings file.
type fileRoot struct {
	Settings []*settingsBlock `hcl:"settings,block"`
	Remain   hcl.Body         `hcl:",remain"`
}

type settingsBlock struct {
	HoursPerDay []int       `hcl:"hours_per_day,optional"`
	MaxDays     *int        `hcl:"max_days,optional"`
	Strategy    *int        `hcl:"strategy,optional"`
	LogDir      *string     `hcl:"log_dir,optional"`
	HTMLDir     *string     `hcl:"html_dir,optional"`
	Relay       *relayBlock `hcl:"relay,block"`
}

type relayBlock struct {
	URL       string  `hcl:"url"`
	Namespace *string `hcl:"namespace,optional"`
	Timeout   *string `hcl:"timeout,optional"`
}

// Loader reads settings from HCL files.
type Loader struct {
	// Environ supplies the `env` variable; os.Environ when nil.
	Environ func() []string
}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load starts from Default and applies every settings block found in paths,
// in order. Directories are searched for *.hcl files. It is an error for
// paths to contain no settings file at all.
func (l *Loader) Load(ctx context.Context, scriptDir string, paths ...string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ResolveFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no settings file found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered settings files.", "count", len(files))

	evalCtx := l.evalContext(scriptDir)
	parser := hclparse.NewParser()
	settings := Default()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode settings file %s: %w", file, diags)
		}
		for _, block := range root.Settings {
			if err := block.applyTo(settings); err != nil {
				return nil, fmt.Errorf("settings file %s: %w", file, err)
			}
		}
		logger.Debug("Loaded settings file.", "file", file, "blocks", len(root.Settings))
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (b *settingsBlock) applyTo(s *Settings) error {
	if b.HoursPerDay != nil {
		s.HoursPerDay = b.HoursPerDay
	}
	if b.MaxDays != nil {
		s.MaxDays = *b.MaxDays
	}
	if b.Strategy != nil {
		s.Strategy = schedule.Strategy(*b.Strategy)
	}
	if b.LogDir != nil {
		s.LogDir = *b.LogDir
	}
	if b.HTMLDir != nil {
		s.HTMLDir = *b.HTMLDir
	}
	if b.Relay != nil {
		r := &RelaySettings{URL: b.Relay.URL, Namespace: "/", Timeout: 10 * time.Second}
		if b.Relay.Namespace != nil {
			r.Namespace = *b.Relay.Namespace
		}
		if b.Relay.Timeout != nil {
			d, err := time.ParseDuration(*b.Relay.Timeout)
			if err != nil {
				return fmt.Errorf("relay.timeout: %w", err)
			}
			r.Timeout = d
		}
		s.Relay = r
	}
	return nil
}

func (l *Loader) evalContext(scriptDir string) *hcl.EvalContext {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := make(map[string]cty.Value)
	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":        envVal,
			"script_dir": cty.StringVal(scriptDir),
		},
		Functions: map[string]function.Function{
			"upper": stdlib.UpperFunc,
			"lower": stdlib.LowerFunc,
			"join":  stdlib.JoinFunc,
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
		},
	}
}
