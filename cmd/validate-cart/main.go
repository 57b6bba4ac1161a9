package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// CLI-приложение для проверки сохранённых корзин и событий корзины.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	kind := flag.String("kind", "cart", "what to validate: cart|events")
	flag.Parse()

	report, err := validate.ValidateFile(context.Background(), validate.NewCartValidator(),
		validate.Kind(*kind), *inputPath, validate.InputFormat(*formatStr), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, report)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", report)
}
