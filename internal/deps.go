package internal

import (
	"bitwise74/catalog-api/aws"
	"bitwise74/catalog-api/internal/search"
	"bitwise74/catalog-api/internal/service"

	"gorm.io/gorm"
)

type Deps struct {
	DB      *gorm.DB
	Index   *search.Index
	S3      *aws.S3Client // nil when no media store is configured
	Catalog *service.Catalog
}
