// Command rure searches text with rure patterns.
//
// Usage:
//
//	rure [-f FLAG]... [-v] PATTERN [FILE...]
//	rure -i [-f FLAG]...
//	rure -gen -pkg NAME [-o FILE] [-f FLAG]... NAME=PATTERN...
//
// In search mode every match in each line of the input is printed as
// "name:line:start-end:text". With -i an interactive session reads
// haystacks and commands from the terminal. With -gen each pattern is
// validated and a Go file declaring it as a package variable is written.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/coregx/rure"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	for _, tok := range strings.Split(value, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			*a = append(*a, tok)
		}
	}
	return nil
}

func main() {
	var (
		tokens      arrayFlags
		verbose     = flag.Bool("v", false, "log compile decisions to stderr")
		interactive = flag.Bool("i", false, "start an interactive session")
		generate    = flag.Bool("gen", false, "generate Go declarations for NAME=PATTERN arguments")
		pkg         = flag.String("pkg", "main", "package name for -gen")
		output      = flag.String("o", "", "output file for -gen (default stdout)")
	)
	flag.Var(&tokens, "f", "flag token (CASEI, MULTI, DOTNL, SWAP_GREED, SPACE, UNICODE); repeatable")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rure [-f FLAG]... [-v] PATTERN [FILE...]\n")
		fmt.Fprintf(os.Stderr, "       rure -i [-f FLAG]...\n")
		fmt.Fprintf(os.Stderr, "       rure -gen -pkg NAME [-o FILE] [-f FLAG]... NAME=PATTERN...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	config := rure.DefaultConfig()
	if *verbose {
		config.Logger = log.New(os.Stderr, "", log.Ltime)
	}

	var err error
	switch {
	case *interactive:
		err = runREPL(tokens, config)
	case *generate:
		err = runGenerate(*pkg, *output, tokens, flag.Args())
	default:
		if flag.NArg() < 1 {
			flag.Usage()
			os.Exit(2)
		}
		err = runSearch(flag.Arg(0), tokens, config, flag.Args()[1:], os.Stdout)
	}
	if err != nil {
		fatal("rure: %v", err)
	}
}

func fatal(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// compile builds a Regex from flag tokens and a configuration.
func compile(pattern string, tokens []string, config rure.Config) (*rure.Regex, error) {
	f, err := rure.ParseFlags(tokens...)
	if err != nil {
		return nil, err
	}
	return rure.CompileWithConfig(pattern, f, config)
}

// runSearch prints every match of pattern in the named files, or in stdin
// when there are none.
func runSearch(pattern string, tokens []string, config rure.Config, files []string, w io.Writer) error {
	re, err := compile(pattern, tokens, config)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		_, err = searchReader(re, "<stdin>", os.Stdin, w)
		return err
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = searchReader(re, path, f, w)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// searchReader reports the matches of re in each line of r and returns
// how many were found.
func searchReader(re *rure.Regex, name string, r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	count := 0
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Bytes()
		it := re.Iter(text)
		for m, ok := it.Next(); ok; m, ok = it.Next() {
			fmt.Fprintf(w, "%s:%d:%d-%d:%s\n", name, line, m.Start, m.End, m.Bytes(text))
			count++
		}
	}
	return count, scanner.Err()
}
