package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/activity"
)

// ActivityLogRepository appends audit entries.
type ActivityLogRepository interface {
	Add(ctx context.Context, entry activity.Entry) error
}
