package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/declaration"
	"github.com/goliatone/go-typeinput/pkg/declfile"
	"github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/render/html"
	"github.com/goliatone/go-typeinput/pkg/render/prompt"
)

func main() {
	source := flag.String("source", "", "declaration file (.yaml/.json) or OpenAPI document")
	format := flag.String("format", "decl", "source format: decl or openapi")
	operation := flag.String("operation", "", "operationId to use for OpenAPI sources")
	mode := flag.String("mode", "html", "output mode: html or prompt")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *source == "" {
		log.Fatal("missing -source")
	}

	ctx := context.Background()

	fields, err := loadFields(ctx, *source, *format, *operation)
	if err != nil {
		log.Fatalf("load %s: %v", *source, err)
	}

	records, err := typeinput.AnalyzeAll(ctx, fields)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	switch *mode {
	case "html":
		renderer, err := html.New()
		if err != nil {
			log.Fatalf("renderer: %v", err)
		}
		form, err := renderer.Form(records)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
		emit(*output, form)
	case "prompt":
		values, err := prompt.New().AskAll(ctx, records)
		if err != nil {
			log.Fatalf("prompt: %v", err)
		}
		encoded, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			log.Fatalf("encode values: %v", err)
		}
		emit(*output, string(encoded))
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadFields(ctx context.Context, source, format, operation string) ([]declaration.NamedDeclaration, error) {
	switch format {
	case "decl":
		dir, name := filepath.Split(source)
		if dir == "" {
			dir = "."
		}
		return declfile.NewLoader().LoadFS(os.DirFS(dir), name)
	case "openapi":
		if operation == "" {
			return nil, fmt.Errorf("openapi sources require -operation")
		}
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		doc, err := openapi.LoadDocument(ctx, data)
		if err != nil {
			return nil, err
		}
		op, err := openapi.FindOperation(doc, operation)
		if err != nil {
			return nil, err
		}
		return openapi.New().RequestBody(op)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func emit(output, content string) {
	if output == "" {
		fmt.Println(content)
		return
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		log.Fatalf("write %s: %v", output, err)
	}
	fmt.Printf("written to %s\n", output)
}
