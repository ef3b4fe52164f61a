package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metric names emitted by the API and worker.
const (
	MetricOrdersCreated     = "OrdersCreated"
	MetricPaymentsVerified  = "PaymentsVerified"
	MetricPaymentsRejected  = "PaymentsRejected"
	MetricRateLimited       = "RateLimited"
	MetricOrdersNotified    = "OrdersNotified"
	MetricDuplicateDelivery = "DuplicateDeliveries"
)

// Metrics emits CloudWatch counters. A nil *Metrics is a valid no-op, so
// handlers never have to guard the call sites.
type Metrics struct {
	client    CloudWatchAPI
	namespace string
	logger    *zap.Logger
	nowFunc   func() time.Time
}

// NewMetrics returns a recorder publishing into namespace.
func NewMetrics(client CloudWatchAPI, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// Count increments a counter by one, tagged with the payment method when
// non-empty. Best effort only: a CloudWatch failure is logged and dropped.
func (m *Metrics) Count(ctx context.Context, name, method string) {
	if m == nil {
		return
	}

	datum := cwtypes.MetricDatum{
		MetricName: &name,
		Value:      awsFloat(1),
		Unit:       cwtypes.StandardUnitCount,
		Timestamp:  awsTime(m.nowFunc()),
	}
	if method != "" {
		dimName := "PaymentMethod"
		datum.Dimensions = []cwtypes.Dimension{
			{Name: &dimName, Value: &method},
		}
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("metric put failed", zap.String("metric", name), zap.Error(err))
	}
}

func awsFloat(f float64) *float64    { return &f }
func awsTime(t time.Time) *time.Time { return &t }
