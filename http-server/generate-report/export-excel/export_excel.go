package export_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type DeliveryExcelHandler interface {
	DeliveryHistoryExcel(ctx context.Context) ([]byte, error)
}

// ExportDeliveriesExcel streams the delivery history as an xlsx download for
// the sales and admin screens.
func ExportDeliveriesExcel(log *slog.Logger, gen DeliveryExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.ExportDeliveriesExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.DeliveryHistoryExcel(ctx)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Teslimat_Gecmisi_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
