// Command mdcoredump is a debug driver for the tokenizer engine: it reads a
// markdown document, runs it through mdcore.Parse, and dumps the resulting
// event log -- optionally writing the dump atomically to a file, and
// optionally rendering the same input through blackfriday so the two can
// be eyeballed side by side.
//
// This is the external collaborator spec.md §1 describes as out of scope
// for the core itself: CLI/option handling lives here, not in the mdcore
// package. It does not render events to HTML; its optional HTML view comes
// from blackfriday rendering the source text.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"
	"github.com/jcorbin/mdcore"
	"github.com/jcorbin/mdcore/internal/socutil"
	"github.com/russross/blackfriday"
)

func main() {
	var (
		outPath   string
		compare   bool
		verbose   bool
		logPrefix = "mdcoredump: "
	)
	flag.StringVar(&outPath, "o", "", "write dump atomically to this path instead of stdout")
	flag.BoolVar(&compare, "compare", false, "also render the input through blackfriday for comparison")
	flag.BoolVar(&verbose, "v", false, "include link metadata (%+v) in the dump")
	flag.Parse()

	log.SetOutput(socutil.PrefixWriter(logPrefix, os.Stderr))
	log.SetFlags(0)

	in := io.Reader(os.Stdin)
	if arg := flag.Arg(0); arg != "" {
		f, err := os.Open(arg)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	src, err := ioutil.ReadAll(in)
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	if err := run(string(src), outPath, compare, verbose); err != nil {
		log.Fatal(err)
	}
}

func run(src, outPath string, compare, verbose bool) (rerr error) {
	out := io.Writer(os.Stdout)
	ew := &socutil.ErrWriter{Writer: out}
	out = ew

	if outPath != "" {
		pf, err := renameio.TempFile("", outPath)
		if err != nil {
			return fmt.Errorf("creating temp file for %q: %w", outPath, err)
		}
		defer pf.Cleanup()
		ew.Writer = pf
		defer func() {
			if rerr == nil {
				rerr = pf.CloseAtomicallyReplace()
			}
			if rerr == nil {
				rerr = ew.Err
			}
		}()
	}

	events, _ := mdcore.Parse(src)
	dumpEvents(out, events, verbose)

	if compare {
		fmt.Fprintln(out, "--- blackfriday render ---")
		html := blackfriday.Run([]byte(src), blackfriday.WithExtensions(
			blackfriday.NoIntraEmphasis|blackfriday.FencedCode|blackfriday.Autolink,
		))
		out.Write(html)
	}

	return ew.Err
}

func dumpEvents(w io.Writer, events []mdcore.Event, verbose bool) {
	depth := 0
	for _, ev := range events {
		if ev.Type == mdcore.Exit {
			depth--
		}
		for i := 0; i < depth; i++ {
			fmt.Fprint(w, "  ")
		}
		if verbose {
			fmt.Fprintf(w, "%+v\n", ev)
		} else {
			fmt.Fprintf(w, "%v\n", ev)
		}
		if ev.Type == mdcore.Enter {
			depth++
		}
	}
}
