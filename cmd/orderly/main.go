// Command orderly validates a JSON or YAML document against an Orderly
// schema file.
//
// Usage:
//
//	orderly -schema schema.orderly [-doc document.json] [-verbose] [-lang en]
//
// Flags:
//
//	-schema string   Path to the Orderly schema file (required)
//	-doc string      Path to the document to validate (default: stdin)
//	-verbose         Include the offending JSON Pointer path in error output
//	-lang string     Locale for localized error messages (default "en")
//	-materialize     Decode JSON documents whole into memory before validating,
//	                  instead of streaming them token-by-token
//
// Exit codes:
//
//	0  document is valid
//	1  document failed validation
//	2  schema failed to compile
//	3  usage, I/O, or document parse error
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/go-i18n"

	"github.com/go-orderly/orderly"
	"github.com/go-orderly/orderly/schema"
	"github.com/go-orderly/orderly/verr"
)

var (
	schemaPath  = flag.String("schema", "", "Path to the Orderly schema file (required)")
	docPath     = flag.String("doc", "", "Path to the document to validate (default: stdin)")
	verbose     = flag.Bool("verbose", false, "Include the offending JSON Pointer path in error output")
	lang        = flag.String("lang", "en", "Locale for localized error messages")
	materialize = flag.Bool("materialize", false, "Decode JSON documents whole into memory before validating, instead of streaming")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if *schemaPath == "" {
		log.Println("❌ -schema is required")
		flag.Usage()
		return 3
	}

	schemaSrc, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Printf("❌ reading schema: %v", err)
		return 3
	}

	compiled, err := schema.NewCompiler().CompileSource(string(schemaSrc))
	if err != nil {
		log.Printf("❌ compiling schema: %v", err)
		return 2
	}

	docBytes, docName, err := readDocument()
	if err != nil {
		log.Printf("❌ reading document: %v", err)
		return 3
	}

	v := orderly.New(compiled)

	switch {
	case isYAML(docName):
		var value any
		if err := yaml.Unmarshal(docBytes, &value); err != nil {
			log.Printf("❌ parsing YAML document: %v", err)
			return 3
		}
		err = v.Validate(value)
	case *materialize:
		var value any
		if err := gojson.Unmarshal(docBytes, &value); err != nil {
			log.Printf("❌ parsing JSON document: %v", err)
			return 3
		}
		err = v.Validate(value)
	default:
		err = v.ParseAndValidate(bytes.NewReader(docBytes))
		if err == nil {
			err = v.ParseComplete()
		}
	}

	if err == nil {
		log.Println("✅ valid")
		return 0
	}

	localizer := newLocalizer(*lang)
	if ve, ok := err.(*verr.Error); ok {
		if localizer != nil {
			msg := ve.Localize(localizer)
			if p := ve.Pointer(); *verbose && p != "" {
				msg += " at " + p
			}
			log.Printf("❌ %s", msg)
		} else {
			log.Printf("❌ %s", ve.Render(*verbose))
		}
		return 1
	}
	log.Printf("❌ %v", err)
	return 3
}

func readDocument() (data []byte, name string, err error) {
	if *docPath == "" {
		data, err = io.ReadAll(os.Stdin)
		return data, "stdin.json", err
	}
	data, err = os.ReadFile(*docPath)
	return data, *docPath, err
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func newLocalizer(locale string) *i18n.Localizer {
	bundle, err := verr.Bundle()
	if err != nil {
		log.Printf("⚠️  localization unavailable: %v", err)
		return nil
	}
	return bundle.NewLocalizer(locale)
}
