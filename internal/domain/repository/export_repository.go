package repository

import (
	"github.com/diillson/aws-cost-by-group-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.CostReport, filename string, outputDir string) (string, error)
}
