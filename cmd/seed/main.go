// Command seed fills the local forms database and uploads directory with demo submissions
// so the upload page has something to show during development.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"remodelsite/internal/config"
	"remodelsite/internal/database"
	"remodelsite/internal/domain/forms"
	"remodelsite/internal/domain/storage"
	"remodelsite/internal/pkg/logger"
	"remodelsite/internal/pkg/phone"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type demoLead struct {
	lead    forms.Lead
	details forms.Details
	notes   string
	files   []string
}

var demoLeads = []demoLead{
	{
		lead:    forms.Lead{Name: "Maria Lopez", Email: "maria@example.com", Phone: "7145550101", Source: "Hero - Get Free Quote", AdSource: "google"},
		details: forms.Details{Project: forms.ProjectKitchen, Budget: forms.Budget50to100k, Financing: forms.FinancingNo},
		notes:   "Shaker cabinets, quartz counters, keep the window over the sink.",
		files:   []string{"kitchen-before-1.png", "kitchen-before-2.png"},
	},
	{
		lead:    forms.Lead{Name: "Dan Whitaker", Email: "dan@example.com", Phone: "9495550144", Source: "CTA - Request Quote", AdSource: "facebook"},
		details: forms.Details{Project: forms.ProjectBathroom, Budget: forms.Budget25to50k, Financing: forms.FinancingYes},
		notes:   "Walk-in shower instead of the tub.",
		files:   []string{"master-bath.png"},
	},
	{
		lead: forms.Lead{Name: "Priya Shah", Email: "priya@example.com", Phone: "6575550199", Source: "Hero - Get Free Quote"},
	},
}

func main() {
	clean := flag.Bool("clean", false, "delete existing submissions first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)
	if cfg.FormsBackend != config.BackendLocal || cfg.StorageBackend != config.BackendLocal {
		log.Fatal("seed only writes to the local forms and storage backends")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	leads, err := forms.NewLocalStore(db)
	if err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	store, err := storage.NewLocalStorage(cfg.UploadsDir)
	if err != nil {
		log.WithError(err).Fatal("uploads dir unavailable")
	}

	if *clean {
		log.Info("cleaning old submissions")
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&forms.Submission{}).Error; err != nil {
			log.WithError(err).Fatal("cleanup failed")
		}
	}

	ctx := context.Background()
	for _, d := range demoLeads {
		id, err := seedLead(ctx, leads, store, d)
		if err != nil {
			log.WithError(err).WithField("name", d.lead.Name).Fatal("seed failed")
		}
		log.WithFields(logrus.Fields{
			"name":        d.lead.Name,
			"files":       len(d.files),
			"upload_page": fmt.Sprintf("%s/upload/%s", cfg.PublicSiteURL, id),
		}).Info("submission created")
	}
	log.Info("seed completed")
}

func seedLead(ctx context.Context, leads *forms.LocalStore, store storage.Storage, d demoLead) (string, error) {
	l := d.lead
	l.Phone = phone.Format(l.Phone)
	id, err := leads.Create(ctx, &l)
	if err != nil {
		return "", err
	}
	if d.details.Project != "" {
		if err := leads.UpdateDetails(ctx, id, d.details); err != nil {
			return "", err
		}
	}
	if d.notes != "" {
		if err := leads.SaveNotes(ctx, id, d.notes); err != nil {
			return "", err
		}
	}
	for _, name := range d.files {
		if err := store.Put(ctx, id, name, bytes.NewReader(pngHeader)); err != nil {
			return "", fmt.Errorf("put %s: %w", name, err)
		}
	}
	return id, nil
}
