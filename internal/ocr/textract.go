// Package ocr recognizes text in scanned lab reports through AWS
// Textract. Results come back as a Document carrying both raw lines and
// reconstructed table rows, so downstream extraction can use whichever
// representation a given report layout favors.
package ocr

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/sii-blood-analyzer/internal/domain"
)

// Client recognizes text in an image document.
type Client interface {
	AnalyzeImage(ctx context.Context, data []byte) (*domain.Document, error)
	Enabled() bool
}

// TextractClient calls AWS Textract AnalyzeDocument with TABLES and
// FORMS analysis. Calls go through a rate limiter and a circuit
// breaker; when the breaker is open the client fails fast instead of
// queueing on a degraded upstream.
type TextractClient struct {
	svc        textractiface.TextractAPI
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger
	retryCount int
	timeout    time.Duration
	enabled    bool
}

// NewTextractClient builds a Textract client from configuration. A
// disabled configuration yields a client whose Enabled reports false;
// callers skip the image path entirely in that case.
func NewTextractClient(cfg domain.TextractConfig, logger *logrus.Logger) (*TextractClient, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if !cfg.Enabled {
		return &TextractClient{logger: logger}, nil
	}

	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(
			credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 1
	}
	retries := cfg.RetryCount
	if retries < 1 {
		retries = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Textract",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &TextractClient{
		svc:        textract.New(sess),
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
		retryCount: retries,
		timeout:    timeout,
		enabled:    true,
	}, nil
}

// Enabled reports whether the client is configured to make calls.
func (c *TextractClient) Enabled() bool {
	return c.enabled
}

// AnalyzeImage runs Textract document analysis over image bytes and
// converts the block list into a Document.
func (c *TextractClient) AnalyzeImage(ctx context.Context, data []byte) (*domain.Document, error) {
	if !c.enabled {
		return nil, domain.NewExtractionError("textract", "OCR is disabled", nil)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewExtractionError("textract", "rate limiter wait aborted", err)
	}

	input := &textract.AnalyzeDocumentInput{
		Document: &textract.Document{Bytes: data},
		FeatureTypes: []*string{
			aws.String(textract.FeatureTypeTables),
			aws.String(textract.FeatureTypeForms),
		},
	}

	var output *textract.AnalyzeDocumentOutput
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.analyzeWithRetry(ctx, input)
	})
	if err != nil {
		return nil, domain.NewExtractionError("textract", "document analysis failed", err)
	}
	output = result.(*textract.AnalyzeDocumentOutput)

	doc := documentFromBlocks(output.Blocks)
	c.logger.WithFields(logrus.Fields{
		"blocks": len(output.Blocks),
		"lines":  len(doc.Lines),
		"tables": len(doc.Tables),
	}).Debug("Textract analysis finished")

	if doc.Empty() {
		return nil, domain.NewExtractionError("textract", "no text recognized in image", nil)
	}
	return doc, nil
}

func (c *TextractClient) analyzeWithRetry(ctx context.Context, input *textract.AnalyzeDocumentInput) (*textract.AnalyzeDocumentOutput, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		output, err := c.svc.AnalyzeDocumentWithContext(ctx, input)
		if err == nil {
			return output, nil
		}
		lastErr = err
		c.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Textract call failed")

		if attempt < c.retryCount {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
	}
	return nil, lastErr
}
