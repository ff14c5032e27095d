package handlers

import (
	"github.com/jmoiron/sqlx"

	"storekeeper/internal/config"
	"storekeeper/internal/images"
	"storekeeper/internal/repos"
	"storekeeper/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	PhotoHandler   *PhotoHandler
	PageHandler    *PageHandler
	MediaHandler   *MediaHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, opts ...repos.ProductRepoOption) *Deps {
	prodRepo := repos.NewProductRepo(db, opts...)
	prodSvc := services.NewProductService(prodRepo)

	// Uploading a file is the user's answer to the permission prompt.
	perms := images.NewStaticPermissions(images.Undetermined, images.Undetermined, images.Granted)
	importer := images.NewImporter(cfg.MediaDir, cfg.MaxUploadBytes)

	return &Deps{
		ProductHandler: &ProductHandler{Products: prodSvc},
		PhotoHandler:   &PhotoHandler{Products: prodSvc, Perms: perms, Importer: importer},
		PageHandler:    &PageHandler{Products: prodSvc},
		MediaHandler:   NewMediaHandler(cfg.MediaDir),
	}
}
