package ocr

import "context"

// Engine turns a receipt image into raw text, one receipt line per text line.
type Engine interface {
	Recognize(ctx context.Context, img *Image) (string, error)
	Close() error
}

const recognizePrompt = `Transcribe the purchased line items printed on this grocery receipt.
Return plain text only: one item per line, in the order printed, exactly as written.
Do not add numbering, markdown, explanations or any other text.`
