package database

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/jmoiron/sqlx"
)

var (
	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "seq", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "assigned", Type: field.TypeString},
		{Name: "due_date", Type: field.TypeString, Size: 10, Default: ""},
		{Name: "priority", Type: field.TypeString, Size: 16},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "done", Type: field.TypeBool, Default: false},
	}
	// TasksTable holds the schema information for the "tasks" table.
	TasksTable = &schema.Table{
		Name:       "tasks",
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "task_seq",
				Unique:  false,
				Columns: []*schema.Column{TasksColumns[1]},
			},
		},
	}
	// PointsColumns holds the columns for the "points" table.
	PointsColumns = []*schema.Column{
		{Name: "participant", Type: field.TypeString},
		{Name: "seq", Type: field.TypeInt},
		{Name: "points", Type: field.TypeInt, Default: 0},
	}
	// PointsTable holds the schema information for the "points" table.
	PointsTable = &schema.Table{
		Name:       "points",
		Columns:    PointsColumns,
		PrimaryKey: []*schema.Column{PointsColumns[0]},
	}
	// AccountsColumns holds the columns for the "accounts" table.
	AccountsColumns = []*schema.Column{
		{Name: "email", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString},
		{Name: "password", Type: field.TypeString},
	}
	// AccountsTable holds the schema information for the "accounts" table.
	AccountsTable = &schema.Table{
		Name:       "accounts",
		Columns:    AccountsColumns,
		PrimaryKey: []*schema.Column{AccountsColumns[0]},
	}
	// SessionsColumns holds the columns for the "sessions" table.
	SessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "email", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString},
	}
	// SessionsTable holds the schema information for the "sessions" table.
	// It has at most one row, id 1.
	SessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    SessionsColumns,
		PrimaryKey: []*schema.Column{SessionsColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		TasksTable,
		PointsTable,
		AccountsTable,
		SessionsTable,
	}
)

// Migrate creates or updates the board tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	drv := entsql.OpenDB(db.DriverName(), db.DB)

	migrate, err := schema.NewMigrate(
		drv,
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
		schema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrate.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run auto migration: %w", err)
	}
	return nil
}
