package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/rure"
)

const rurePath = "github.com/coregx/rure"

// declaration is one NAME=PATTERN argument.
type declaration struct {
	name    string
	pattern string
}

func parseDeclarations(args []string) ([]declaration, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no NAME=PATTERN arguments")
	}
	decls := make([]declaration, 0, len(args))
	for _, arg := range args {
		name, pattern, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not NAME=PATTERN", arg)
		}
		decls = append(decls, declaration{name: name, pattern: pattern})
	}
	return decls, nil
}

func runGenerate(pkg, output string, tokens []string, args []string) error {
	decls, err := parseDeclarations(args)
	if err != nil {
		return err
	}
	if output == "" {
		return render(os.Stdout, pkg, tokens, decls)
	}
	file, err := generate(pkg, tokens, decls)
	if err != nil {
		return err
	}
	return file.Save(output)
}

// generate compiles every pattern, so a broken one fails here rather than
// in the generated package's init.
func generate(pkg string, tokens []string, decls []declaration) (*jen.File, error) {
	f, err := rure.ParseFlags(tokens...)
	if err != nil {
		return nil, err
	}

	file := jen.NewFile(pkg)
	file.HeaderComment("Code generated by rure -gen. DO NOT EDIT.")

	args := make([]jen.Code, 0, len(tokens))
	for _, tok := range tokens {
		args = append(args, jen.Lit(strings.ToUpper(tok)))
	}

	for _, d := range decls {
		re, err := rure.CompileFlags(d.pattern, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		call := append([]jen.Code{jen.Lit(d.pattern)}, args...)
		file.Commentf("%s matches /%s/ (flags %s, %d groups).", d.name, d.pattern, re.Flags(), re.NumCaptures())
		file.Var().Id(d.name).Op("=").Qual(rurePath, "MustCompile").Call(call...)
	}
	return file, nil
}

// render writes the generated source to w.
func render(w io.Writer, pkg string, tokens []string, decls []declaration) error {
	file, err := generate(pkg, tokens, decls)
	if err != nil {
		return err
	}
	return file.Render(w)
}
