package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/image/font"

	"github.com/konko2/letters-recognition/internal/imaging"
	"github.com/konko2/letters-recognition/internal/ocr"
	"github.com/konko2/letters-recognition/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errUsage is returned for bad command lines; the flag set already printed
// the details.
var errUsage = errors.New("usage error")

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "letters - recognize the letters A-J in an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  letters [options] <input> <output>   Annotate recognized letters and save to output")
	fmt.Fprintln(w, "  letters mcp [options]                Serve the MCP protocol over stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -font path        TrueType font for letter labels (default: built-in bitmap font)")
	fmt.Fprintln(w, "  -font-size n      Label font size in points (default 16)")
	fmt.Fprintln(w, "  -workers n        Regions classified in parallel (default: number of CPUs)")
	fmt.Fprintln(w, "  -json             Print the recognition report as JSON")
	fmt.Fprintln(w, "  --version, -v     Print version information")
	fmt.Fprintln(w, "  --help, -h        Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  LETTERS_LOG_LEVEL=debug    Enable debug logging")
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("letters %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		}
	}

	// Logging goes to stderr; stdout carries the MCP protocol or the report.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("LETTERS_LOG_LEVEL") == "debug" {
		log.Printf("letters v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatalf("Error: %v", err)
	}
}

type config struct {
	fontPath string
	fontSize float64
	workers  int
	json     bool
	args     []string
}

func parseFlags(name string, args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.fontPath, "font", "", "TrueType font for letter labels")
	fs.Float64Var(&cfg.fontSize, "font-size", 16, "label font size in points")
	fs.IntVar(&cfg.workers, "workers", 0, "regions classified in parallel")
	fs.BoolVar(&cfg.json, "json", false, "print the recognition report as JSON")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	cfg.args = fs.Args()
	return cfg, nil
}

func (c *config) face() (font.Face, error) {
	if c.fontPath == "" {
		return imaging.DefaultFace, nil
	}
	return imaging.LoadFontFace(c.fontPath, c.fontSize)
}

// run executes one command line, without the program name.
func run(args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "mcp" {
		return runServer(args[1:])
	}

	cfg, err := parseFlags("letters", args)
	if err != nil {
		return err
	}
	if len(cfg.args) != 2 {
		printHelp(os.Stderr)
		return errUsage
	}
	return annotateFile(cfg, cfg.args[0], cfg.args[1], stdout)
}

func runServer(args []string) error {
	cfg, err := parseFlags("letters mcp", args)
	if err != nil {
		return err
	}
	face, err := cfg.face()
	if err != nil {
		return err
	}

	srv := server.New(server.WithWorkers(cfg.workers), server.WithFace(face))
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// annotateFile recognizes the letters of input, writes the annotated image
// to output and prints a summary to stdout.
func annotateFile(cfg *config, input, output string, stdout io.Writer) error {
	face, err := cfg.face()
	if err != nil {
		return err
	}
	img, _, err := imaging.Decode(input)
	if err != nil {
		return err
	}

	report, err := ocr.Recognize(context.Background(), img, ocr.Options{Workers: cfg.workers})
	if err != nil {
		return fmt.Errorf("failed to recognize letters: %w", err)
	}
	if os.Getenv("LETTERS_LOG_LEVEL") == "debug" {
		log.Printf("%s: threshold %d, %d regions", input, report.Threshold, len(report.Letters))
	}

	if err := imaging.Save(imaging.Annotate(img, report.Annotations(), face), output); err != nil {
		return err
	}

	if cfg.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, l := range report.Letters {
		if !l.Recognized {
			continue
		}
		fmt.Fprintf(stdout, "%s at (%d,%d) %dx%d\n", l.Letter, l.Bounds.X, l.Bounds.Y, l.Bounds.Width, l.Bounds.Height)
	}
	fmt.Fprintf(stdout, "%d of %d regions recognized: %s\n", len(report.Annotations()), len(report.Letters), report.Text())
	return nil
}
