// internal/service/content/checker.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Exit codes of the content check. Operators key alerting off these, so the
// taxonomy is part of the tool's contract.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitListSchema   = 2
	ExitDetailSchema = 3
	ExitUnexpected   = 10
)

type CheckConfig struct {
	BaseURL   string
	ModuleRef string
	Lang      string
	UserID    string
	// Limit caps how many lesson details are checked; 0 checks all.
	Limit int
}

// Checker verifies the content API's payload shapes: the module lesson list
// first, then each lesson's detail. List-schema failure aborts the run;
// detail failures accumulate and are reported together.
type Checker struct {
	cfg       CheckConfig
	client    *Client
	validator *Validator
	out       io.Writer
	logger    *zap.Logger
}

func NewChecker(cfg CheckConfig, client *Client, out io.Writer, logger *zap.Logger) *Checker {
	return &Checker{
		cfg:       cfg,
		client:    client,
		validator: NewValidator(),
		out:       out,
		logger:    logger,
	}
}

// Run executes the check and returns the process exit code.
func (c *Checker) Run(ctx context.Context) int {
	opts := FetchOptions{Lang: c.cfg.Lang, UserID: c.cfg.UserID}

	rawList, listSource, err := c.client.FetchLessonList(ctx, c.cfg.ModuleRef, opts)
	if err != nil {
		fmt.Fprintf(c.out, "FATAL: lesson list fetch failed: %v\n", err)
		return ExitUnexpected
	}

	summaries, listErrs := c.validator.ValidateList(rawList)
	if len(listErrs) > 0 {
		fmt.Fprintf(c.out, "FAIL: lesson list for module %s (%s endpoint) does not match the list schema:\n",
			c.cfg.ModuleRef, listSource)
		c.printErrors(listErrs)
		return ExitListSchema
	}
	fmt.Fprintf(c.out, "OK: lesson list for module %s (%d lessons, %s endpoint)\n",
		c.cfg.ModuleRef, len(summaries), listSource)

	limit := len(summaries)
	if c.cfg.Limit > 0 && c.cfg.Limit < limit {
		limit = c.cfg.Limit
	}

	failed := 0
	for _, summary := range summaries[:limit] {
		rawDetail, detailSource, err := c.client.FetchLessonDetail(ctx, summary.LessonRef, opts)
		if err != nil {
			fmt.Fprintf(c.out, "FATAL: lesson %s detail fetch failed: %v\n", summary.LessonRef, err)
			return ExitUnexpected
		}

		_, detailErrs := c.validator.ValidateDetail(rawDetail)
		if len(detailErrs) == 0 {
			c.logger.Debug("lesson detail ok",
				zap.String("lesson_ref", summary.LessonRef),
				zap.String("source", string(detailSource)),
			)
			continue
		}

		failed++
		fmt.Fprintf(c.out, "FAIL: lesson %s (%s endpoint) does not match the detail schema:\n",
			summary.LessonRef, detailSource)
		c.printErrors(detailErrs)
	}

	if failed > 0 {
		fmt.Fprintf(c.out, "%d of %d lesson details failed validation\n", failed, limit)
		return ExitDetailSchema
	}

	fmt.Fprintf(c.out, "OK: %d lesson details validated\n", limit)
	return ExitOK
}

func (c *Checker) printErrors(errs []FieldError) {
	for _, fe := range errs {
		fmt.Fprintf(c.out, "  - %s\n", fe.String())
	}
	if diff, err := json.MarshalIndent(errs, "  ", "  "); err == nil {
		fmt.Fprintf(c.out, "  %s\n", diff)
	}
}
