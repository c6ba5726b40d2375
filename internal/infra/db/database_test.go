package db

import (
	"testing"
	"time"

	"github.com/kpi-tracker/backend/config"
)

func TestNewConnection_SQLiteMemory(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver:          DriverSQLite,
		URL:             ":memory:",
		MaxOpenConns:    10,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	if !database.HealthCheck() {
		t.Error("HealthCheck() = false, want true")
	}
	for _, table := range []string{"monthly_data", "month_status"} {
		if !database.DB().Migrator().HasTable(table) {
			t.Errorf("table %s was not created", table)
		}
	}
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle", URL: "x"})
	if err == nil {
		t.Fatal("NewConnection() error = nil, want error")
	}
}
