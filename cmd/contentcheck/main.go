// cmd/contentcheck/main.go
//
// Operator tool that cross-checks the content API against the lesson
// schemas. Not part of the runtime service.
//
// Usage:
//
//	contentcheck --moduleRef a0.basics [--baseUrl URL] [--lang ru] [--userId 42] [--limit N]
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"lingvo-service/internal/service/content"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	defaultBase := os.Getenv("CONTENT_API_BASE")
	if defaultBase == "" {
		defaultBase = "http://localhost:3000"
	}

	fs := flag.NewFlagSet("contentcheck", flag.ContinueOnError)
	baseURL := fs.String("baseUrl", defaultBase, "content API base URL")
	moduleRef := fs.String("moduleRef", "", "module reference to check (required)")
	lang := fs.String("lang", "", "language override")
	userID := fs.String("userId", "", "user id forwarded to the API")
	limit := fs.Int("limit", 0, "max lesson details to check (0 = all)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return content.ExitUsage
	}
	if *moduleRef == "" {
		fmt.Fprintln(os.Stderr, "usage: contentcheck --moduleRef <ref> [--baseUrl URL] [--lang code] [--userId id] [--limit n]")
		return content.ExitUsage
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		return content.ExitUnexpected
	}
	defer logger.Sync()

	cfg := content.CheckConfig{
		BaseURL:   *baseURL,
		ModuleRef: *moduleRef,
		Lang:      *lang,
		UserID:    *userID,
		Limit:     *limit,
	}

	client := content.NewClient(cfg.BaseURL, &http.Client{Timeout: 30 * time.Second}, nil, logger)
	checker := content.NewChecker(cfg, client, os.Stdout, logger)
	return checker.Run(context.Background())
}
