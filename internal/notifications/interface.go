package notifications

import "github.com/ytinsight/insight-client/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(report *models.WatchReport) error
	SendAlert(alert *models.Alert) error
}
