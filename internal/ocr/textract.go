package ocr

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/datareveal/docverse/pkg/logger"
)

// TextractOptions configures the Textract engine.
type TextractOptions struct {
	Region        string
	AccessKey     string
	SecretKey     string
	MinConfidence float32
}

// TextractEngine recognizes text through AWS Textract.
type TextractEngine struct {
	client *textract.Client
	opts   TextractOptions
	logger logger.Logger
}

// NewTextractEngine creates the Textract engine. It fails when credentials
// are missing; callers run on the fallback engine alone in that case.
func NewTextractEngine(ctx context.Context, opts TextractOptions, log logger.Logger) (*TextractEngine, error) {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, fmt.Errorf("textract credentials not configured")
	}

	creds := credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &TextractEngine{
		client: textract.NewFromConfig(awsCfg),
		opts:   opts,
		logger: log,
	}, nil
}

func (e *TextractEngine) Name() string {
	return "textract"
}

// RecognizeImage sends the image bytes to DetectDocumentText and returns
// the LINE blocks above the confidence floor, in reading order.
func (e *TextractEngine) RecognizeImage(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	result, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			Bytes: data,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect document text: %w", err)
	}

	var lines []string
	for _, block := range result.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if block.Confidence != nil && *block.Confidence < e.opts.MinConfidence {
			continue
		}
		lines = append(lines, *block.Text)
	}

	return lines, nil
}
