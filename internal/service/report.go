package service

import (
	"context"

	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

// Summary is the dashboard aggregate for one user's inventory.
type Summary struct {
	TotalItems    int                    `json:"total_items"`
	TotalQuantity int                    `json:"total_quantity"`
	LowStockCount int                    `json:"low_stock_count"`
	Categories    []models.CategoryCount `json:"categories"`
}

type ReportService struct {
	items     repository.ItemRepository
	threshold int
}

func NewReportService(items repository.ItemRepository, threshold int) *ReportService {
	return &ReportService{items: items, threshold: threshold}
}

func (s *ReportService) Summary(ctx context.Context, userID int64) (*Summary, error) {
	totalItems, totalQuantity, err := s.items.SummaryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.items.CategoryCountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.items.ListLowStockByUser(ctx, userID, s.threshold)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalItems:    totalItems,
		TotalQuantity: totalQuantity,
		LowStockCount: len(lowStock),
		Categories:    counts,
	}, nil
}

// LowStock lists the user's items at or below the configured threshold.
func (s *ReportService) LowStock(ctx context.Context, userID int64) ([]models.InventoryItem, error) {
	return s.items.ListLowStockByUser(ctx, userID, s.threshold)
}

func (s *ReportService) Threshold() int {
	return s.threshold
}
