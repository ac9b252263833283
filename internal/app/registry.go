package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/overtime"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/cache"
	"go-payroll/internal/shift"
	"go-payroll/internal/timeclass"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Registry is the dependency root, built once at process start. Handlers and
// background jobs receive typed handles from here instead of constructing
// their own.
type Registry struct {
	Cache cache.Cache

	OutboxRepo kafka.OutboxRepository

	SettingsResolver settings.Resolver
	ShiftResolver    shift.Resolver
	Classifier       timeclass.Classifier

	PayrollEngine  payroll.Engine
	PayrollService payroll.Service

	ProgressBroker *payrollrun.ProgressBroker
	RunService     payrollrun.Service
}

func NewRegistry(db *sql.DB, gormDB *gorm.DB, rdb *redis.Client) *Registry {
	var c cache.Cache
	if rdb != nil {
		c = cache.NewRedisCache(rdb)
	} else {
		c = cache.NewMemoryCache()
	}

	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	overtimeRepo := overtime.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	runRepo := payrollrun.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	settingsResolver := settings.NewResolver(settingsRepo, c)
	shiftResolver := shift.NewResolver(shiftRepo, c)
	classifier := timeclass.NewClassifier(shiftResolver)

	engine := payroll.NewEngine(classifier, settingsResolver, holidayRepo, overtimeRepo)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, attendanceRepo, leaveRepo, engine)

	broker := payrollrun.NewProgressBroker()
	runService := payrollrun.NewService(db, runRepo, employeeRepo, payrollService, settingsResolver, outboxRepo, broker)

	return &Registry{
		Cache:            c,
		OutboxRepo:       outboxRepo,
		SettingsResolver: settingsResolver,
		ShiftResolver:    shiftResolver,
		Classifier:       classifier,
		PayrollEngine:    engine,
		PayrollService:   payrollService,
		ProgressBroker:   broker,
		RunService:       runService,
	}
}
