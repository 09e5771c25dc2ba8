package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts  int               `json:"totalProducts"`
	TotalMovements int               `json:"totalMovements"`
	LowStockCount  int               `json:"lowStockCount"`
	LowStock       []LowStockItemDTO `json:"lowStock"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// LowStockItemDTO producto en o por debajo de su stock mínimo.
type LowStockItemDTO struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}
