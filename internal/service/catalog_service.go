package service

import (
	"context"
	"fmt"

	"github.com/byndl-mvp/PoC-sub002/internal/apperrors"
	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/docevents"
)

type ICatalogService interface {
	Get(ctx context.Context, gewerk string) (*dto.CatalogResponse, error)
	Rebuild(ctx context.Context) (*dto.CatalogRebuildResponse, error)
}

type catalogService struct {
	holder       *catalog.Holder
	builder      *catalog.Builder
	snapshotPath string
	publisher    docevents.Publisher
	logger       logger.ILogger
}

func NewCatalogService(
	holder *catalog.Holder,
	builder *catalog.Builder,
	snapshotPath string,
	publisher docevents.Publisher,
	log logger.ILogger,
) ICatalogService {
	return &catalogService{
		holder:       holder,
		builder:      builder,
		snapshotPath: snapshotPath,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *catalogService) Get(ctx context.Context, gewerk string) (*dto.CatalogResponse, error) {
	positions := s.holder.Get(gewerk)
	if positions == nil {
		return nil, fmt.Errorf("%w: unknown gewerk %q", apperrors.ErrCatalogLoad, gewerk)
	}
	return &dto.CatalogResponse{
		Gewerk:    gewerk,
		Positions: positions,
	}, nil
}

// Rebuild parses the raw resources, persists the snapshot and swaps the
// in-memory catalog only after both succeeded.
func (s *catalogService) Rebuild(ctx context.Context) (*dto.CatalogRebuildResponse, error) {
	built, err := s.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogLoad, err)
	}
	if err := catalog.Save(built, s.snapshotPath); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogLoad, err)
	}
	s.holder.Replace(built)

	total := 0
	gewerke := make([]string, 0, len(built))
	for g, positions := range built {
		gewerke = append(gewerke, g)
		total += len(positions)
	}

	s.logger.Info("CATALOG", "catalog rebuilt", map[string]interface{}{
		"gewerke":   gewerke,
		"positions": total,
	})
	s.publisher.PublishCatalogRebuilt(ctx, gewerke, total)

	return &dto.CatalogRebuildResponse{
		Gewerke:   gewerke,
		Positions: total,
	}, nil
}
