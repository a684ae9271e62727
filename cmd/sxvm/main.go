// Completion: 80% - CLI interface complete
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/sxvm"
	"github.com/xyproto/sxvm/engine"
)

const versionString = "sxvm 0.1.0"

var VerboseMode bool

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: sxvm <command> [flags] <module.bin> [args...]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run   load one or more module images and call a function\n")
	fmt.Fprintf(os.Stderr, "  dump  disassemble a module image's functions\n\n")
	fmt.Fprintf(os.Stderr, "Run 'sxvm <command> -h' for command-specific flags.\n")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var versionShort = flag.Bool("V", false, "print version information and exit")
	var version = flag.Bool("version", false, "print version information and exit")
	if os.Args[1] == "-V" || os.Args[1] == "-version" || os.Args[1] == "--version" {
		flag.Parse()
		_ = versionShort
		_ = version
		fmt.Println(versionString)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		runCommand(os.Args[2:])
	case "dump":
		dumpCommand(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "sxvm: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var verbose = fs.Bool("v", false, "verbose mode (trace dispatch and native bridge activity)")
	var verboseLong = fs.Bool("verbose", false, "verbose mode (trace dispatch and native bridge activity)")
	var moduleIndex = fs.Uint("module", 0, "module index owning the function (0 = main module)")
	var fnIndex = fs.Uint("func", 0, "public function index to call")
	var argsCSV = fs.String("args", "", "comma-separated i32 arguments to pass")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sxvm run [flags] <module.bin> [dependency.bin...]\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	VerboseMode = *verbose || *verboseLong
	sxvm.Verbose = VerboseMode

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	binaries := make([][]byte, len(rest))
	for i, path := range rest {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sxvm: read %s: %v\n", path, err)
			os.Exit(1)
		}
		binaries[i] = b
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "DEBUG run: loading %d module image(s)\n", len(binaries))
	}

	vm, err := sxvm.LoadModules(binaries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sxvm: load: %v\n", err)
		os.Exit(1)
	}

	values, err := parseArgsCSV(*argsCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sxvm: %v\n", err)
		os.Exit(1)
	}

	thread := vm.CreateThread()
	results, err := thread.CallFunction(uint32(*moduleIndex), uint32(*fnIndex), values)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sxvm: call failed: %v\n", err)
		os.Exit(1)
	}

	for i, r := range results {
		fmt.Printf("result[%d] = %d (0x%x)\n", i, int32(r.I32()), r.Raw())
	}
}

func parseArgsCSV(csv string) ([]sxvm.Value, error) {
	if csv == "" {
		return nil, nil
	}
	var out []sxvm.Value
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			var n int64
			_, err := fmt.Sscanf(csv[start:i], "%d", &n)
			if err != nil {
				return nil, fmt.Errorf("invalid argument %q: %w", csv[start:i], err)
			}
			out = append(out, sxvm.I32(int32(n)))
			start = i + 1
		}
	}
	return out, nil
}

func dumpCommand(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	var moduleIndex = fs.Uint("module", 0, "module index to disassemble")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sxvm dump [flags] <module.bin>\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fs.Usage()
		os.Exit(1)
	}

	b, err := os.ReadFile(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sxvm: read %s: %v\n", rest[0], err)
		os.Exit(1)
	}

	ctx, err := engine.LoadModules([][]byte{b})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sxvm: load: %v\n", err)
		os.Exit(1)
	}

	m := ctx.Modules[*moduleIndex]
	for fi := 0; fi < m.Functions.Len(); fi++ {
		fmt.Printf("function %d:\n", fi)
		code := m.Functions.Code(fi)
		addr := uint32(0)
		for addr < uint32(len(code)) {
			line, length := engine.FormatInstruction(code, addr)
			fmt.Printf("  %s\n", line)
			if length <= 0 {
				break
			}
			addr += uint32(length)
		}
	}
}
