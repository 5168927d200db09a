package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/repository/postgres"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/pkg/logger"
)

// Bootstraps the public tenant with its owner identity and domain. Meant to
// run exactly once against a fresh database; a second run fails cleanly.
func main() {
	var (
		domainURL  = flag.String("domain_url", "", "domain the public tenant answers on (required)")
		ownerEmail = flag.String("owner_email", "", "email of the public tenant owner (required)")
		tenantName = flag.String("tenant_name", "", "display name for the public tenant")
		superuser  = flag.Bool("superuser", false, "grant the owner the superuser flag")
		staff      = flag.Bool("staff", false, "grant the owner the staff flag")
	)
	flag.Parse()

	if *domainURL == "" || *ownerEmail == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fail("load config: %v", err)
	}

	db, err := config.NewDatabase()
	if err != nil {
		fail("connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	engine, err := schema.NewPostgresEngine(db, cfg.PublicSchemaName)
	if err != nil {
		fail("initialize schema engine: %v", err)
	}
	defer engine.Close()
	schemaCtx := schema.NewContext(engine)

	repo := postgres.NewRepository(engine.DB())
	tenants := service.NewTenantService(repo, schemaCtx, nil, cfg, appLogger)
	provisioning := service.NewProvisioningService(repo, schemaCtx, tenants, cfg, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, _, owner, err := provisioning.CreatePublicTenant(ctx, service.CreatePublicTenantInput{
		DomainURL:     *domainURL,
		OwnerEmail:    *ownerEmail,
		OwnerPassword: os.Getenv("PUBLIC_OWNER_PASSWORD"),
		IsSuperuser:   *superuser,
		IsStaff:       *staff,
		TenantName:    *tenantName,
	})
	if err != nil {
		fail("create public tenant: %v", err)
	}

	fmt.Printf("Created public tenant on %s owned by %s\n", *domainURL, owner.Email)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "create_public_tenant: "+format+"\n", args...)
	os.Exit(1)
}
