package rules

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"time"

	"example.com/edidgate/internal/edid"
)

type Severity string

const (
	ERROR Severity = "ERROR"
	WARN  Severity = "WARN"
	INFO  Severity = "INFO"
)

type Rule struct {
	RuleId    string   `json:"ruleId"`
	Name      string   `json:"name,omitempty"`
	Severity  Severity `json:"severity"`
	CheckFunc string   `json:"checkFunction"`
	Refs      []string `json:"refs,omitempty"`
	Message   string   `json:"message,omitempty"`
}

type RulePack struct {
	RulePackId string `json:"rulePackId"`
	Version    string `json:"version"`
	Rules      []Rule `json:"rules"`
}

type Diagnostic struct {
	Ts       time.Time `json:"ts"`
	File     string    `json:"file"`
	Slot     *int      `json:"slot,omitempty"`
	RuleId   string    `json:"ruleId"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Refs     []string  `json:"refs,omitempty"`
	Passed   bool      `json:"passed"`
}

type AcceptanceReport struct {
	Summary struct {
		Total    int  `json:"total"`
		Errors   int  `json:"errors"`
		Warnings int  `json:"warnings"`
		Pass     bool `json:"pass"`
	} `json:"summary"`
	Findings []Diagnostic `json:"findings,omitempty"`
}

// Context carries one block under evaluation. Block is loaded lazily
// from InputFile unless the caller supplies it directly.
type Context struct {
	InputFile string
	Block     *edid.Block
}

func (ctx *Context) EnsureBlock() error {
	if ctx == nil {
		return errors.New("nil context")
	}
	if ctx.Block != nil {
		return nil
	}
	if ctx.InputFile == "" {
		return errors.New("no block and no input file")
	}
	b, err := edid.ReadFile(ctx.InputFile)
	if err != nil {
		return err
	}
	ctx.Block = &b
	return nil
}

// CheckFunc evaluates one rule against the context. The bool reports
// whether the check passed; a non-nil error means the check itself
// could not run.
type CheckFunc func(ctx *Context, rule Rule) (Diagnostic, bool, error)

type Engine struct {
	rulePack               RulePack
	registry               map[string]CheckFunc
	diagnostics            []Diagnostic
	includeTimestampFields bool
}

func NewEngine(rp RulePack) *Engine {
	return &Engine{
		rulePack:               rp,
		registry:               make(map[string]CheckFunc),
		includeTimestampFields: true,
	}
}

func (e *Engine) Register(name string, f CheckFunc) {
	e.registry[name] = f
}

func (e *Engine) Eval(ctx *Context) ([]Diagnostic, error) {
	if ctx == nil {
		return nil, errors.New("nil context")
	}
	if err := ctx.EnsureBlock(); err != nil {
		return nil, err
	}
	var diags []Diagnostic
	for _, r := range e.rulePack.Rules {
		if r.CheckFunc == "" {
			continue
		}
		fn, ok := e.registry[r.CheckFunc]
		if !ok {
			diags = append(diags, Diagnostic{
				Ts: time.Now(), File: ctx.InputFile, RuleId: r.RuleId, Severity: WARN,
				Message: "no function for rule", Refs: r.Refs,
			})
			continue
		}
		d, passed, err := fn(ctx, r)
		if err != nil {
			d.Severity = ERROR
			d.Message = d.Message + " (" + err.Error() + ")"
		}
		d.Passed = passed
		diags = append(diags, d)
	}
	e.diagnostics = diags
	return diags, nil
}

func (e *Engine) WriteDiagnosticsNDJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, d := range e.diagnostics {
		var b []byte
		if e.includeTimestampFields {
			b, _ = json.Marshal(d)
		} else {
			b, _ = json.Marshal(d.toNoTimestamp())
		}
		w.Write(b)
		w.WriteString("\n")
	}
	return nil
}

// diagnosticNoTimestamp drops the Ts field so diagnostics output is
// byte-stable across runs, for golden-file comparisons on the bench.
type diagnosticNoTimestamp struct {
	File     string   `json:"file"`
	Slot     *int     `json:"slot,omitempty"`
	RuleId   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Refs     []string `json:"refs,omitempty"`
	Passed   bool     `json:"passed"`
}

func (d Diagnostic) toNoTimestamp() diagnosticNoTimestamp {
	return diagnosticNoTimestamp{
		File:     d.File,
		Slot:     d.Slot,
		RuleId:   d.RuleId,
		Severity: d.Severity,
		Message:  d.Message,
		Refs:     d.Refs,
		Passed:   d.Passed,
	}
}

func (e *Engine) SetConfigValue(key string, value any) {
	if e == nil {
		return
	}
	switch key {
	case "diag.include_timestamps":
		switch v := value.(type) {
		case bool:
			e.includeTimestampFields = v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				e.includeTimestampFields = b
			}
		}
	}
}

func (e *Engine) MakeAcceptance() AcceptanceReport {
	var rep AcceptanceReport
	var errs, warns int
	for _, d := range e.diagnostics {
		if d.Passed {
			continue
		}
		switch d.Severity {
		case ERROR:
			errs++
		case WARN:
			warns++
		}
	}
	rep.Summary.Total = len(e.diagnostics)
	rep.Summary.Errors = errs
	rep.Summary.Warnings = warns
	rep.Summary.Pass = errs == 0
	rep.Findings = e.diagnostics
	return rep
}

func LoadRulePack(path string) (RulePack, error) {
	var rp RulePack
	b, err := os.ReadFile(path)
	if err != nil {
		return rp, err
	}
	err = json.Unmarshal(b, &rp)
	return rp, err
}
