// Package appfs embeds the files the binaries need at runtime.
package appfs

import "embed"

// FS holds the database migrations and the email templates.
//go:embed migrations templates/email/*
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	EmailTemplatesDir = "templates/email"
)
