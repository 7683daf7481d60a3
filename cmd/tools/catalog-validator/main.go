// cmd/tools/catalog-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"automata-onboarding/pkg/catalog"
)

func main() {
	path := flag.String("path", "configs/templates.json", "Path to the template catalog document")
	flag.Parse()

	cat, err := catalog.Load(*path)
	if err != nil {
		fmt.Printf("Catalog validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog validation passed: %d template(s)\n", len(cat))
	for _, t := range cat {
		fmt.Printf("  %-25s %-10s %v\n", t.ID, t.Type, t.Industries)
	}
}
