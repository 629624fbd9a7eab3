package config

import "github.com/m04kA/HMS-AppointmentService/pkg/dbmetrics"

// DBExecutor реализуется *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
