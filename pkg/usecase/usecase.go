package usecase

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
	"github.com/josoor-lab/sectorlens/pkg/engine"
)

type UseCases struct {
	repo           interfaces.Repository
	classifier     *engine.Classifier
	maxMatrixCells int

	Analytics *AnalyticsUseCase
	Dataset   *DatasetUseCase
}

type Option func(*UseCases)

// WithClassifier replaces the default policy classifier, used to apply
// operator-provided category overrides.
func WithClassifier(c *engine.Classifier) Option {
	return func(uc *UseCases) {
		uc.classifier = c
	}
}

// WithMaxMatrixCells bounds the integration matrix cross-join size
func WithMaxMatrixCells(n int) Option {
	return func(uc *UseCases) {
		uc.maxMatrixCells = n
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		classifier: engine.NewClassifier(nil),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Analytics = NewAnalyticsUseCase(repo, uc.classifier, uc.maxMatrixCells)
	uc.Dataset = NewDatasetUseCase(repo)

	return uc
}
