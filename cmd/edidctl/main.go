package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/edid"
	"example.com/edidgate/internal/mode"
	"example.com/edidgate/internal/report"
	"example.com/edidgate/internal/rules"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	switch cmd {
	case "generate":
		generateCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "batch":
		batchCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "modes":
		modesCmd()
	default:
		usage()
	}
}

func usage() {
	fmt.Printf(`edidctl %s (built %s) <command> [options]

Commands:
  generate  --out <file.bin> [--config <profile.yaml>] [--mode <name>] [--name <monitor name>] [--hex] [--log-dir <dir>]
  validate  --in <file.bin> [--rules <rulepack.json>] --out <diagnostics.jsonl> --acceptance <acceptance.json> [--diag-include-timestamps=<bool>] [--log-dir <dir>]
  batch     --in <dir> [--rules <rulepack.json>] --out-dir <dir> [--log-dir <dir>]
  report    --acceptance <acceptance.json> --pdf <out.pdf> [--qr <out.png> --in <file.bin>]
  modes
`, version, buildDate)
}

type vendorConfig struct {
	ID      string `yaml:"id"`
	Product uint16 `yaml:"product"`
	Serial  uint32 `yaml:"serial"`
	Week    int    `yaml:"week"`
	Year    int    `yaml:"year"`
}

type displayConfig struct {
	WidthCm    int     `yaml:"widthCm"`
	HeightCm   int     `yaml:"heightCm"`
	Gamma      float64 `yaml:"gamma"`
	Name       string  `yaml:"name"`
	SerialText string  `yaml:"serialText"`
}

type profileConfig struct {
	Vendor  vendorConfig  `yaml:"vendor"`
	Display displayConfig `yaml:"display"`
	Mode    string        `yaml:"mode"`
}

func loadProfile(path string) (profileConfig, error) {
	var cfg profileConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	err = dec.Decode(&cfg)
	return cfg, err
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "edid.bin", "output file")
	configPath := fs.String("config", "", "profile yaml")
	modeName := fs.String("mode", "", "builtin mode for the preferred timing")
	name := fs.String("name", "", "monitor name descriptor")
	hexDump := fs.Bool("hex", false, "print a hex dump of the block")
	logDir := fs.String("log-dir", "", "directory for rotating logs")
	fs.Parse(args)

	if *logDir != "" {
		if err := common.SetupRotatingLog(*logDir); err != nil {
			fmt.Println("setup logging:", err)
			os.Exit(1)
		}
	}

	var cfg profileConfig
	if *configPath != "" {
		var err error
		cfg, err = loadProfile(*configPath)
		if err != nil {
			fmt.Println("load profile:", err)
			os.Exit(1)
		}
	}
	if *modeName != "" {
		cfg.Mode = *modeName
	}
	if *name != "" {
		cfg.Display.Name = *name
	}

	blk, err := buildBlock(cfg)
	if err != nil {
		fmt.Println("generate:", err)
		os.Exit(1)
	}

	if err := blk.WriteFile(*out); err != nil {
		fmt.Println("write:", err)
		os.Exit(1)
	}
	hash, _, err := common.Sha256OfFile(*out)
	if err != nil {
		fmt.Println("hash:", err)
		os.Exit(1)
	}
	common.Logf("generated %s sha256=%s", *out, hash)
	fmt.Printf("wrote %s (%d bytes, sha256 %s)\n", *out, edid.BlockSize, hash)
	if *hexDump {
		fmt.Print(hex.Dump(blk[:]))
	}
}

// buildBlock assembles one block from a profile. Overrides that touch
// the physical size are applied before the detailed descriptors are
// packed so the pixel timing sees the final millimeter values.
func buildBlock(cfg profileConfig) (edid.Block, error) {
	blk := edid.New()

	widthCm, heightCm := 52, 30
	if cfg.Display.WidthCm > 0 && cfg.Display.HeightCm > 0 {
		widthCm, heightCm = cfg.Display.WidthCm, cfg.Display.HeightCm
		blk.SetPhysicalSize(widthCm, heightCm)
	}
	if cfg.Display.Gamma > 0 {
		blk.SetGamma(cfg.Display.Gamma)
	}
	if cfg.Vendor.ID != "" {
		blk.SetManufacturer(cfg.Vendor.ID)
	}
	if cfg.Vendor.Product != 0 {
		blk.SetProductCode(cfg.Vendor.Product)
	}
	if cfg.Vendor.Serial != 0 {
		blk.SetSerialNumber(cfg.Vendor.Serial)
	}
	if cfg.Vendor.Year != 0 {
		blk.SetManufactureDate(cfg.Vendor.Week, cfg.Vendor.Year)
	}

	if cfg.Mode != "" {
		m, ok := mode.Lookup(cfg.Mode)
		if !ok {
			return blk, fmt.Errorf("unknown mode %q (see edidctl modes)", cfg.Mode)
		}
		monitorName := cfg.Display.Name
		if monitorName == "" {
			monitorName = "EDG"
		}
		blk.SetDetailedTiming(0, edid.PixelTiming{
			Mode:     m,
			WidthMM:  widthCm * 10,
			HeightMM: heightCm * 10,
		})
		blk.SetDetailedTiming(1, edid.MonitorRange{Mode: m})
		blk.SetDetailedTiming(2, edid.DisplayString{Kind: edid.MonitorName, Text: monitorName})
		if cfg.Display.SerialText != "" {
			blk.SetDetailedTiming(3, edid.DisplayString{Kind: edid.MonitorSerial, Text: cfg.Display.SerialText})
		} else {
			blk.SetDetailedTiming(3, edid.Dummy{})
		}
	} else if cfg.Display.Name != "" {
		blk.SetDetailedTiming(2, edid.DisplayString{Kind: edid.MonitorName, Text: cfg.Display.Name})
	}

	blk.UpdateChecksum()
	return blk, nil
}

func resolveRulePack(path string) (rules.RulePack, error) {
	if path == "" {
		return rules.DefaultRulePack(), nil
	}
	return rules.LoadRulePack(path)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	in := fs.String("in", "", "input EDID block")
	rulesPath := fs.String("rules", "", "rulepack.json (builtin pack when empty)")
	outDiag := fs.String("out", "diagnostics.jsonl", "diagnostics output")
	outAcc := fs.String("acceptance", "acceptance_report.json", "acceptance json")
	includeTimestamps := fs.Bool("diag-include-timestamps", true, "include timestamp metadata in diagnostics output")
	logDir := fs.String("log-dir", "", "directory for rotating logs")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	if *logDir != "" {
		if err := common.SetupRotatingLog(*logDir); err != nil {
			fmt.Println("setup logging:", err)
			os.Exit(1)
		}
	}

	rp, err := resolveRulePack(*rulesPath)
	if err != nil {
		fmt.Println("resolve rulepack:", err)
		os.Exit(1)
	}
	engine := rules.NewEngine(rp)
	engine.RegisterBuiltins()
	engine.SetConfigValue("diag.include_timestamps", *includeTimestamps)

	ctx := &rules.Context{InputFile: *in}
	diags, err := engine.Eval(ctx)
	if err != nil {
		fmt.Println("eval:", err)
		os.Exit(1)
	}

	if err := engine.WriteDiagnosticsNDJSON(*outDiag); err != nil {
		fmt.Println("write diags:", err)
		os.Exit(1)
	}
	rep := engine.MakeAcceptance()
	if err := report.SaveAcceptanceJSON(rep, *outAcc); err != nil {
		fmt.Println("write report:", err)
		os.Exit(1)
	}
	fmt.Printf("PASS=%v, errors=%d, warnings=%d, diagnostics=%d\n",
		rep.Summary.Pass, rep.Summary.Errors, rep.Summary.Warnings, len(diags))
	if !rep.Summary.Pass {
		os.Exit(1)
	}
}

func batchCmd(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	in := fs.String("in", "", "input directory")
	rulesPath := fs.String("rules", "", "rulepack.json (builtin pack when empty)")
	outDir := fs.String("out-dir", "", "output directory")
	logDir := fs.String("log-dir", "", "directory for rotating logs")
	fs.Parse(args)

	if *in == "" || *outDir == "" {
		fmt.Println("required: --in, --out-dir")
		os.Exit(1)
	}
	if *logDir != "" {
		if err := common.SetupRotatingLog(*logDir); err != nil {
			fmt.Println("setup logging:", err)
			os.Exit(1)
		}
	}

	rp, err := resolveRulePack(*rulesPath)
	if err != nil {
		fmt.Println("resolve rulepack:", err)
		os.Exit(1)
	}

	var inputs []string
	err = filepath.Walk(*in, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".bin") {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		fmt.Println("scan inputs:", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Println("no .bin inputs found under", *in)
		os.Exit(1)
	}

	failures := 0
	for _, input := range inputs {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		dest := filepath.Join(*outDir, base)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			fmt.Println("output dir:", err)
			os.Exit(1)
		}

		engine := rules.NewEngine(rp)
		engine.RegisterBuiltins()
		ctx := &rules.Context{InputFile: input}
		if _, err := engine.Eval(ctx); err != nil {
			common.Logf("eval %s: %v", input, err)
			failures++
			continue
		}
		if err := engine.WriteDiagnosticsNDJSON(filepath.Join(dest, "diagnostics.jsonl")); err != nil {
			fmt.Println("write diags:", err)
			os.Exit(1)
		}
		rep := engine.MakeAcceptance()
		if err := report.SaveAcceptanceJSON(rep, filepath.Join(dest, "acceptance.json")); err != nil {
			fmt.Println("write report:", err)
			os.Exit(1)
		}
		if !rep.Summary.Pass {
			failures++
		}
		common.Logf("validated %s pass=%v errors=%d", input, rep.Summary.Pass, rep.Summary.Errors)
	}
	fmt.Printf("batch: %d inputs, %d failed\n", len(inputs), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	accPath := fs.String("acceptance", "", "acceptance json input")
	pdfPath := fs.String("pdf", "", "PDF output")
	qrPath := fs.String("qr", "", "QR PNG output of the block hash")
	in := fs.String("in", "", "EDID block for the QR hash")
	fs.Parse(args)

	if *accPath == "" || *pdfPath == "" {
		fmt.Println("required: --acceptance, --pdf")
		os.Exit(1)
	}
	data, err := os.ReadFile(*accPath)
	if err != nil {
		fmt.Println("read acceptance:", err)
		os.Exit(1)
	}
	var rep rules.AcceptanceReport
	if err := json.Unmarshal(data, &rep); err != nil {
		fmt.Println("parse acceptance:", err)
		os.Exit(1)
	}
	if err := report.SaveAcceptancePDF(rep, *pdfPath); err != nil {
		fmt.Println("write pdf:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", *pdfPath)

	if *qrPath != "" {
		if *in == "" {
			fmt.Println("--qr requires --in")
			os.Exit(1)
		}
		hash, _, err := common.Sha256OfFile(*in)
		if err != nil {
			fmt.Println("hash:", err)
			os.Exit(1)
		}
		png, err := report.BlockHashToQR(hash, 256)
		if err != nil {
			fmt.Println("qr:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*qrPath, png, 0o644); err != nil {
			fmt.Println("write qr:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *qrPath)
	}
}

func modesCmd() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLOCK (kHz)\tTOTAL\tREFRESH")
	for _, name := range mode.Names() {
		m, _ := mode.Lookup(name)
		fmt.Fprintf(w, "%s\t%d\t%dx%d\t%d Hz\n",
			m.Name, m.Clock, m.HTotal, m.VTotal, m.RefreshRate())
	}
	w.Flush()
}
