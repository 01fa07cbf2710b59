package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 10m", func() {
		go a.SchedCartSweepTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// contact messages older than a year are dropped
	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("created_at < ? ", time.Now().
				Add(-time.Hour*24*365)).Delete(domain.SysContactMsg{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // percentage * 100
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil && _meminfo != nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.UsedPercent*100))
	}
}

// SchedCartSweepTask drops idle carts and their checkout workflows, then
// refreshes the storefront gauges.
func (a *Application) SchedCartSweepTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	for _, sid := range a.carts.Sweep() {
		a.orders.Drop(sid)
	}
	metrics.SetGauge("storefront_active_carts", int64(a.carts.Len()))
	metrics.SetGauge("storefront_checkout_sessions", int64(a.orders.Len()))
}
