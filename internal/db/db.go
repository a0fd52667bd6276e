package db

import (
	"log"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/config"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Collaborator{},
		&models.Client{},
		&models.Service{},
		&models.WorkingWindow{},
		&models.ScheduleException{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.CommissionRule{},
		&models.CashLedgerEntry{},
		&models.Product{},
		&models.ProductSaleLine{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE companies
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Última linha de defesa contra double booking, por baixo do
	// SELECT FOR UPDATE: dois intervalos não cancelados do mesmo
	// colaborador não podem se sobrepor. Violações chegam como SQLSTATE 23P01.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            collaborator_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (status <> 'cancelled')
    `)

	return db
}
