package app

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/manthrakodi/bridalstore/internal/domain"
	"github.com/manthrakodi/bridalstore/internal/images"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// InitJob starts the background scheduler. The image service is passed in
// because temp file cleanup runs against its upload directory.
func (a *Application) InitJob(imagesSvc *images.Service) {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		go a.SchedPurgeTempUploads(imagesSvc)
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		go a.SchedDailySalesSummary()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPurgeTempUploads removes upload temp files older than one hour.
func (a *Application) SchedPurgeTempUploads(imagesSvc *images.Service) {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	imagesSvc.PurgeTemp(time.Hour)
}

// SchedDailySalesSummary logs an order summary for the last 24 hours.
func (a *Application) SchedDailySalesSummary() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	since := time.Now().Add(-24 * time.Hour)
	var totals []float64
	if err := a.gormDB.Model(&domain.Order{}).
		Where("created_at >= ?", since).
		Pluck("total_amount", &totals).Error; err != nil {
		zap.L().Error("daily sales summary query failed", zap.Error(err))
		return
	}

	if len(totals) == 0 {
		zap.L().Info("daily sales summary", zap.Int("orders", 0))
		return
	}

	sum, _ := stats.Sum(totals)
	mean, _ := stats.Mean(totals)
	median, _ := stats.Median(totals)
	zap.L().Info("daily sales summary",
		zap.Int("orders", len(totals)),
		zap.Float64("revenue", sum),
		zap.Float64("mean_order_value", mean),
		zap.Float64("median_order_value", median))
}
