package propstore

import (
	"fmt"

	"github.com/taxdeedflow/deedscore/schema"
)

// PrintStoreStatus prints property store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Properties: %d\n", status.TotalProperties)
	fmt.Printf("Total Predictions: %d\n", status.TotalPredictions)
	if status.TotalPredictions > 0 {
		fmt.Printf("Last Prediction: %s\n", status.LastRecordedAt.Format("2006-01-02 15:04:05"))
	}
}

// PrintCalibrationStats prints calibration accuracy statistics.
func PrintCalibrationStats(stats *schema.CalibrationStats) {
	if stats == nil {
		fmt.Println("Not enough prediction history for calibration statistics.")
		return
	}
	fmt.Printf("Sample Size: %d\n", stats.SampleSize)
	fmt.Printf("Pearson Correlation (score vs ROI): %.3f\n", stats.PearsonCorrelation)
	fmt.Printf("RMSE: %.2f\n", stats.RMSE)
	fmt.Printf("MAE: %.2f\n", stats.MAE)
	fmt.Printf("Accuracy Within Tolerance: %.1f%%\n", stats.AccuracyWithinTol)
	fmt.Printf("Profitable Call Accuracy: %.1f%%\n", stats.ProfitableAccuracy)
}
