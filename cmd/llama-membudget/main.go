package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"

	. "github.com/AgustinJimenez/llama-membudget"
	"github.com/AgustinJimenez/llama-membudget/util/anyx"
	"github.com/AgustinJimenez/llama-membudget/util/json"
	"github.com/AgustinJimenez/llama-membudget/util/osx"
)

var Version = "v0.0.0"

func main() {
	ctx := context.Background()

	// Parse arguments.

	var (
		// model options
		path string
		url  string
		// read options
		debug           bool
		skipProxy       bool
		skipTLSVerify   bool
		skipDNSCache    bool
		token           string
		cachePath       = filepath.Join(os.TempDir(), "llama-membudget")
		cacheExpiration = 24 * time.Hour
		// estimate options
		ctxSize       = -1
		gpuLayers     = -1
		gpuLayersStep uint64
		cacheTypeK    = "f16"
		cacheTypeV    = "f16"
		vram          = "24"
		ram           = "32"
		overhead      = osx.Getenv("LLAMA_MEMBUDGET_OVERHEAD", DefaultFixedOverhead.String())
		// output options
		version      bool
		inJson       bool
		inPrettyJson = true
	)
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage of llama-membudget %v:\n", Version)
		fs.PrintDefaults()
	}
	fs.StringVar(&path, "path", path, "Path of the model metadata JSON file, "+
		"e.g. the saved \"model_meta\" object of a llama.cpp style server.")
	fs.StringVar(&url, "url", url, "URL of the properties endpoint of a running llama.cpp style server, "+
		"e.g. http://127.0.0.1:8080/props, "+
		"used when --path is not given.")
	fs.BoolVar(&debug, "debug", debug, "Enable debugging, verbosity.")
	fs.BoolVar(&skipProxy, "skip-proxy", skipProxy, "Skip proxy settings, "+
		"works with --url.")
	fs.BoolVar(&skipTLSVerify, "skip-tls-verify", skipTLSVerify, "Skip TLS verification, "+
		"works with --url.")
	fs.BoolVar(&skipDNSCache, "skip-dns-cache", skipDNSCache, "Skip DNS cache, "+
		"works with --url.")
	fs.StringVar(&token, "token", token, "Bearer auth token to fetch the properties, "+
		"works with --url.")
	fs.StringVar(&cachePath, "cache-path", cachePath, "Path which holds the fetched descriptors, "+
		"works with --url.")
	fs.DurationVar(&cacheExpiration, "cache-expiration", cacheExpiration, "Expiration of the fetched descriptors, "+
		"works with --url.")
	fs.IntVar(&ctxSize, "ctx-size", ctxSize, "Context size to size the KV cache for, "+
		"default is 4096.")
	fs.IntVar(&gpuLayers, "gpu-layers", gpuLayers, "Number of layers to place on the GPU, "+
		"default is the whole model.")
	fs.Uint64Var(&gpuLayersStep, "gpu-layers-step", gpuLayersStep, "Step of layers to estimate in a sweep from 0 to the whole model.")
	fs.StringVar(&cacheTypeK, "cache-type-k", cacheTypeK, "Quantization type of the key cache side, "+
		"select from [f32, f16, q8_0, q5_1, q5_0, q4_1, q4_0].")
	fs.StringVar(&cacheTypeV, "cache-type-v", cacheTypeV, "Quantization type of the value cache side, "+
		"select from [f32, f16, q8_0, q5_1, q5_0, q4_1, q4_0].")
	fs.StringVar(&vram, "vram", vram, "Available VRAM capacity, "+
		"a bare number is taken as GiB, a suffixed one as bytes, "+
		"e.g. 24 or 24GiB.")
	fs.StringVar(&ram, "ram", ram, "Available RAM capacity, "+
		"a bare number is taken as GiB, a suffixed one as bytes.")
	fs.StringVar(&overhead, "overhead", overhead, "Fixed VRAM overhead charged on top of weights and KV cache, "+
		"defaults from the LLAMA_MEMBUDGET_OVERHEAD environment variable.")
	fs.BoolVar(&version, "version", version, "Show llama-membudget version.")
	fs.BoolVar(&inJson, "json", inJson, "Output as JSON.")
	fs.BoolVar(&inPrettyJson, "json-pretty", inPrettyJson, "Output as pretty JSON.")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if version {
		fmt.Printf("llama-membudget %s\n", Version)
		return
	}

	// Build the descriptor.

	ropts := []DescriptorReadOption{
		UseCachePath(cachePath),
		UseCacheExpiration(cacheExpiration),
	}
	if debug {
		ropts = append(ropts, UseDebug())
	}
	if token != "" {
		ropts = append(ropts, UseBearerAuth(token))
	}
	if skipProxy {
		ropts = append(ropts, SkipProxy())
	}
	if skipTLSVerify {
		ropts = append(ropts, SkipTLSVerification())
	}
	if skipDNSCache {
		ropts = append(ropts, SkipDNSCache())
	}

	var (
		desc *ModelArchitectureDescriptor
		err  error
	)
	switch {
	case path != "":
		var bs []byte
		if bs, err = os.ReadFile(path); err == nil {
			var md map[string]any
			if err = json.Unmarshal(bs, &md); err == nil {
				desc = DescriptorFromMetadata(md)
			}
		}
	case url != "":
		desc, err = DescriptorFromRemoteProps(ctx, url, ropts...)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "no model specified\n")
		os.Exit(1)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}

	// Estimate.

	var hw HardwareBudget
	if hw.AvailableVRAM, err = ParseGigabytesScalar(vram); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "parse --vram: %s\n", err.Error())
		os.Exit(1)
	}
	if hw.AvailableRAM, err = ParseGigabytesScalar(ram); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "parse --ram: %s\n", err.Error())
		os.Exit(1)
	}
	if hw.FixedOverhead, err = ParseGigabytesScalar(overhead); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "parse --overhead: %s\n", err.Error())
		os.Exit(1)
	}

	eopts := []BudgetEstimateOption{
		WithCacheKeyType(ParseCacheType(cacheTypeK)),
		WithCacheValueType(ParseCacheType(cacheTypeV)),
	}
	if ctxSize > 0 {
		eopts = append(eopts, WithContextSize(int32(ctxSize)))
	}
	if gpuLayers >= 0 {
		eopts = append(eopts, WithGPULayers(gpuLayers))
	}

	bd := EstimateMemoryBreakdown(desc, hw, eopts...)

	var sweep []MemoryBreakdown
	if gpuLayersStep > 0 && bd.Layers > 0 {
		splits := make([]uint64, 0, bd.Layers/gpuLayersStep+2)
		for n := uint64(0); n < bd.Layers; n += gpuLayersStep {
			splits = append(splits, n)
		}
		splits = append(splits, bd.Layers)

		var (
			memo BreakdownMemo
			wg   sync.WaitGroup
		)
		sweep = make([]MemoryBreakdown, len(splits))
		for i := range splits {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				o := append(eopts[:len(eopts):len(eopts)], WithGPULayers(int(splits[i])))
				sweep[i] = memo.Estimate(desc, hw, o...)
			}(i)
		}
		wg.Wait()
	}

	// Output.

	if inJson {
		var out any = bd
		if len(sweep) != 0 {
			out = map[string]any{
				"estimate": bd,
				"sweep":    sweep,
			}
		}
		enc := json.NewEncoder(os.Stdout)
		if inPrettyJson {
			enc.SetIndent("", "  ")
		}
		if err = enc.Encode(out); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
		return
	}

	a := ResolveArchitecture(desc)
	tprint(
		"ARCHITECTURE",
		[]string{"Arch", "Layers", "KV Layers", "Heads", "KV Heads", "Embedding", "Size"},
		[]string{
			archLabel(desc),
			sprintf(a.TotalLayers),
			sprintf(a.KVCacheLayers),
			sprintf(a.AttentionHeadCount),
			sprintf(a.AttentionHeadCountKV),
			sprintf(a.EmbeddingLength),
			a.ModelSize.String(),
		})

	bds := sweep
	if len(bds) == 0 {
		bds = []MemoryBreakdown{bd}
	}
	rows := make([][]string, len(bds))
	for i := range bds {
		e := bds[i]
		rows[i] = []string{
			sprintf(e.GPULayers),
			sprintf(e.ContextSize),
			sprintf("%s/%s", e.CacheKeyType, e.CacheValueType),
			e.VRAM.ModelGPU.String(),
			e.VRAM.KVCache.String(),
			e.VRAM.Overhead.String(),
			e.VRAM.Available.String(),
			sprintf(tenary(e.VRAM.Overcommitted, "Yes", "No")),
			e.RAM.ModelCPU.String(),
			e.RAM.Available.String(),
			sprintf(tenary(e.RAM.Overcommitted, "Yes", "No")),
		}
	}
	tprint(
		"ESTIMATE",
		[]string{
			"GPU Layers", "Ctx Size", "K/V Type",
			"VRAM Model", "VRAM KV", "VRAM Overhead", "VRAM Avail", "VRAM Over",
			"RAM Model", "RAM Avail", "RAM Over",
		},
		rows...)
}

// archLabel tolerates a nil descriptor,
// e.g. a metadata file holding a JSON null.
func archLabel(desc *ModelArchitectureDescriptor) string {
	if desc == nil || desc.Architecture == "" {
		return "-"
	}
	return desc.Architecture
}

func sprintf(f any, a ...any) string {
	if s, ok := f.(string); ok {
		if len(a) != 0 {
			return fmt.Sprintf(s, a...)
		}
		return s
	}
	return anyx.String(f)
}

func tprint(title string, header []string, body ...[]string) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetTablePadding("\t")
	tw.SetAlignment(tablewriter.ALIGN_CENTER)
	tw.SetHeaderLine(true)
	tw.SetRowLine(true)
	tw.SetHeader(header)
	tw.AppendBulk(body)
	tw.SetCaption(true, title)
	tw.Render()
	fmt.Println()
}

func tenary(c bool, t, f any) any {
	if c {
		return t
	}
	return f
}
