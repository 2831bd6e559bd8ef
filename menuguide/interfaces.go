package menuguide

import (
	"context"
	"io"

	"github.com/pandamasta/menuguide/models"
)

// MenuIdentifier matches a Korean menu name against the knowledge base.
type MenuIdentifier interface {
	Identify(ctx context.Context, nameKo string) (*models.IdentifyResult, error)
}

// MenuFetcher loads the enriched canonical menu by id.
type MenuFetcher interface {
	MenuDetail(ctx context.Context, id string) (*models.Menu, error)
}

// ReviewQueue is the admin side of the knowledge engine.
type ReviewQueue interface {
	Queue(ctx context.Context, filter models.QueueFilter) (*models.QueuePage, error)
	QueueAction(ctx context.Context, id string, action models.QueueAction) error
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// MenuRecognizer reads menu lines from an uploaded photo.
type MenuRecognizer interface {
	Recognize(ctx context.Context, filename string, image io.Reader) (*models.OCRResult, error)
}

// MenuAPI is everything the web app needs from the menu knowledge backend.
// *backend.Client is the default implementation.
type MenuAPI interface {
	MenuIdentifier
	MenuFetcher
	ReviewQueue
	MenuRecognizer
	Health(ctx context.Context) error
}
