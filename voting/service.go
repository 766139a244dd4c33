// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/tally"
)

type Dependencies struct {
	Catalog          *catalog.Catalog
	Contract         contract.Client
	FetchConcurrency int
	Logger           *slog.Logger
}

// Service bundles the synchronizer with the three user operations.
type Service struct {
	Catalog  *catalog.Catalog
	Sync     *tally.Synchronizer
	Registry Registry
	Pipeline Pipeline
	Resets   ResetWorkflow
}

func NewService(deps Dependencies) *Service {
	logger := ResolveLogger(deps.Logger)
	sync := tally.New(deps.Catalog.Names(), deps.Contract, tally.Options{
		Concurrency: deps.FetchConcurrency,
		Logger:      logger.With("component", "tally"),
	})

	return &Service{
		Catalog: deps.Catalog,
		Sync:    sync,
		Registry: Registry{
			Catalog:   deps.Catalog,
			Contract:  deps.Contract,
			Refresher: sync,
			Logger:    logger.With("component", "registry"),
		},
		Pipeline: Pipeline{
			Resolver:  deps.Catalog,
			Contract:  deps.Contract,
			Refresher: sync,
			Logger:    logger.With("component", "pipeline"),
		},
		Resets: ResetWorkflow{
			Contract:  deps.Contract,
			Refresher: sync,
			Logger:    logger.With("component", "reset"),
		},
	}
}

func (s *Service) Register(ctx context.Context) error {
	return s.Registry.Register(ctx)
}

func (s *Service) Submit(ctx context.Context, candidate, voter string) (Receipt, error) {
	return s.Pipeline.Submit(ctx, candidate, voter)
}

func (s *Service) Reset(ctx context.Context) error {
	return s.Resets.Reset(ctx)
}

func (s *Service) Refresh(ctx context.Context) tally.RefreshResult {
	return s.Sync.Refresh(ctx)
}
